// Package canvashost keeps exactly one chart widget in the chart area of the window.
package canvashost

import (
	"errors"
	"sync"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/vedantbodhe/DataVisualizer/src/render"
)

// ErrNilFigure is returned by Display when there is nothing to show.
var ErrNilFigure = errors.New("nil figure")

// EmptyText is the caption of the placeholder shown when no chart is displayed.
const EmptyText = "Open a CSV or Excel file, then choose a chart type"

// releaser is implemented by objects holding chart resources.
type releaser interface {
	Release()
}

// ChartView is the widget wrapping one figure.
type ChartView struct {
	widget.BaseWidget

	mu       sync.Mutex
	fig      *render.Figure
	img      *canvas.Image
	released bool
}

func newChartView(fig *render.Figure) *ChartView {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(320, 240))
	v := &ChartView{fig: fig, img: img}
	v.ExtendBaseWidget(v)
	return v
}

func (v *ChartView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

// Figure returns the displayed figure, nil once released.
func (v *ChartView) Figure() *render.Figure {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fig
}

// Released reports whether the view has been detached and released.
func (v *ChartView) Released() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.released
}

// Release drops the figure and the drawn image. A released view cannot be drawn again.
func (v *ChartView) Release() {
	v.mu.Lock()
	v.released = true
	v.fig = nil
	v.img.Image = nil
	v.mu.Unlock()
	v.Hide()
}

// draw renders the figure at size and refreshes the image.
func (v *ChartView) draw(size fyne.Size) error {
	v.mu.Lock()
	fig := v.fig
	v.mu.Unlock()
	if fig == nil {
		return ErrNilFigure
	}
	w, h := pixelSize(size)
	img, err := fig.Draw(w, h)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.img.Image = img
	v.mu.Unlock()
	v.img.Refresh()
	return nil
}

func pixelSize(size fyne.Size) (int, int) {
	w, h := int(size.Width), int(size.Height)
	if w < 50 || h < 50 {
		return render.DefaultWidth, render.DefaultHeight
	}
	return w, h
}

// Display replaces whatever box holds with a single view of fig. The new view is drawn
// first; if drawing fails box is left as it was. Every replaced object that holds chart
// resources is released.
func Display(box *fyne.Container, fig *render.Figure, size fyne.Size) (*ChartView, error) {
	if fig == nil {
		return nil, ErrNilFigure
	}
	if size.IsZero() {
		size = box.Size()
	}
	view := newChartView(fig)
	if err := view.draw(size); err != nil {
		return nil, err
	}
	detach(box)
	box.Add(view)
	view.Refresh()
	return view, nil
}

// detach releases and removes every object in box.
func detach(box *fyne.Container) {
	for _, o := range box.Objects {
		if r, ok := o.(releaser); ok {
			r.Release()
		}
	}
	box.RemoveAll()
}

// Host binds Display to one container and serializes access to it.
type Host struct {
	mu   sync.Mutex
	box  *fyne.Container
	size func() fyne.Size
	view *ChartView
}

// New returns a host for box showing the placeholder. size reports the drawing area;
// nil uses the container size.
func New(box *fyne.Container, size func() fyne.Size) *Host {
	h := &Host{box: box, size: size}
	h.Clear()
	return h
}

func (h *Host) area() fyne.Size {
	if h.size != nil {
		return h.size()
	}
	return h.box.Size()
}

// Display shows fig, replacing the current chart.
func (h *Host) Display(fig *render.Figure) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	view, err := Display(h.box, fig, h.area())
	if err != nil {
		return err
	}
	h.view = view
	return nil
}

// Clear releases the current chart and shows the placeholder.
func (h *Host) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	detach(h.box)
	h.view = nil
	w, ht := pixelSize(h.area())
	ph := canvas.NewImageFromImage(render.Placeholder(w, ht, EmptyText))
	ph.FillMode = canvas.ImageFillContain
	h.box.Add(ph)
	h.box.Refresh()
}

// Redraw re-renders the current chart at the present area size, e.g. after a resize.
func (h *Host) Redraw() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.view == nil {
		return nil
	}
	return h.view.draw(h.area())
}

// View returns the attached chart view, or nil when the placeholder is shown.
func (h *Host) View() *ChartView {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.view
}
