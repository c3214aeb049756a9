package canvashost

import (
	"errors"
	"strings"
	"testing"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"

	"github.com/vedantbodhe/DataVisualizer/src/render"
	"github.com/vedantbodhe/DataVisualizer/src/tabular"
)

func figure(t *testing.T, kind render.Kind) *render.Figure {
	t.Helper()
	tbl, err := tabular.ReadCSV(strings.NewReader("x,y\n1,2\n2,4\n3,6\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	fig, err := render.Render(tbl, kind, render.DefaultColumns)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return fig
}

func TestDisplay_EmptyContainer(t *testing.T) {
	test.NewTempApp(t)
	box := container.NewStack()
	view, err := Display(box, figure(t, render.Line), fyne.NewSize(400, 300))
	if err != nil {
		t.Fatalf("Display: %v", err)
	}
	if len(box.Objects) != 1 || box.Objects[0] != view {
		t.Fatalf("container holds %d objects", len(box.Objects))
	}
	if view.img.Image == nil {
		t.Fatalf("view not drawn")
	}
	if b := view.img.Image.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("drawn size = %v", b)
	}
}

func TestDisplay_TwiceLeavesOneWidget(t *testing.T) {
	test.NewTempApp(t)
	box := container.NewStack()
	first, err := Display(box, figure(t, render.Line), fyne.Size{})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := Display(box, figure(t, render.Bar), fyne.Size{})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if len(box.Objects) != 1 || box.Objects[0] != second {
		t.Fatalf("expected only the second view attached, got %d objects", len(box.Objects))
	}
	if !first.Released() || first.Figure() != nil || first.img.Image != nil {
		t.Fatalf("first view not released")
	}
	if second.Released() {
		t.Fatalf("second view released")
	}
}

func TestDisplay_NilFigureKeepsCurrent(t *testing.T) {
	test.NewTempApp(t)
	box := container.NewStack()
	view, _ := Display(box, figure(t, render.Scatter), fyne.Size{})
	if _, err := Display(box, nil, fyne.Size{}); !errors.Is(err, ErrNilFigure) {
		t.Fatalf("expected ErrNilFigure, got %v", err)
	}
	if len(box.Objects) != 1 || box.Objects[0] != view || view.Released() {
		t.Fatalf("failed display changed the container")
	}
}

func TestHost_SwitchKindsAndClear(t *testing.T) {
	test.NewTempApp(t)
	box := container.NewStack()
	h := New(box, func() fyne.Size { return fyne.NewSize(640, 400) })
	if len(box.Objects) != 1 || h.View() != nil {
		t.Fatalf("new host should show only the placeholder")
	}
	if _, ok := box.Objects[0].(*canvas.Image); !ok {
		t.Fatalf("placeholder should be an image, got %T", box.Objects[0])
	}

	var views []*ChartView
	for _, k := range []render.Kind{render.Line, render.Bar, render.Scatter, render.Histogram} {
		if err := h.Display(figure(t, k)); err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if len(box.Objects) != 1 {
			t.Fatalf("%s: %d objects attached", k, len(box.Objects))
		}
		views = append(views, h.View())
	}
	for _, v := range views[:len(views)-1] {
		if !v.Released() {
			t.Fatalf("replaced view not released")
		}
	}
	if err := h.Redraw(); err != nil {
		t.Fatalf("Redraw: %v", err)
	}

	h.Clear()
	if len(box.Objects) != 1 || h.View() != nil || !views[len(views)-1].Released() {
		t.Fatalf("clear should release the chart and show the placeholder")
	}
	if err := h.Redraw(); err != nil {
		t.Fatalf("Redraw with placeholder: %v", err)
	}
}
