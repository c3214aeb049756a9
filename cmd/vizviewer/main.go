package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/vedantbodhe/DataVisualizer/cmd/vizviewer/canvashost"
	"github.com/vedantbodhe/DataVisualizer/cmd/vizviewer/uihelpers"
	"github.com/vedantbodhe/DataVisualizer/src/logging"
	"github.com/vedantbodhe/DataVisualizer/src/render"
	"github.com/vedantbodhe/DataVisualizer/src/session"
)

var logger = logging.Named("viewer")

type uiState struct {
	app    fyne.App
	window fyne.Window
	sess   *session.Session
	host   *canvashost.Host

	// widgets
	fileLabel *widget.Label
	xSelect   *widget.Select
	ySelect   *widget.Select
	table     *widget.Table
	chartBox  *fyne.Container
	status    *statusBar

	// suppresses select callbacks while options are rebuilt after a load
	syncing bool
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

// statusBar is the non-blocking status indicator at the bottom of the window.
type statusBar struct {
	label *widget.Label
}

func newStatusBar() *statusBar {
	l := widget.NewLabel("Ready")
	l.Truncation = fyne.TextTruncateEllipsis
	return &statusBar{label: l}
}

func (s *statusBar) Notify(st session.Status) {
	fyne.Do(func() {
		switch {
		case st.Failed():
			s.label.Importance = widget.DangerImportance
		case st.Condition == session.Cancelled:
			s.label.Importance = widget.LowImportance
		default:
			s.label.Importance = widget.MediumImportance
		}
		s.label.SetText(st.String())
	})
}

func main() {
	var fileFlag, kindFlag, logLevel string
	var dark bool
	flag.StringVar(&fileFlag, "file", "", "CSV or XLSX file to open at startup")
	flag.StringVar(&kindFlag, "kind", "line", "Initial chart type (line|bar|scatter|histogram)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	flag.BoolVar(&dark, "dark", false, "Use the dark theme")
	flag.Parse()

	logging.SetLevel(logLevel)
	kind, err := render.ParseKind(kindFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	a := app.NewWithID("com.datavisualizer.viewer")
	if dark {
		a.Settings().SetTheme(&darkTheme{})
	}
	w := a.NewWindow("Data Visualization Tool")
	w.Resize(fyne.NewSize(1000, 720))

	state := &uiState{app: a, window: w, status: newStatusBar()}
	state.chartBox = container.NewStack()
	state.host = canvashost.New(state.chartBox, func() fyne.Size {
		sz := state.chartBox.Size()
		cw, ch := uihelpers.ComputeChartDimensions(int(sz.Width), int(sz.Height))
		return fyne.NewSize(float32(cw), float32(ch))
	})
	state.sess = session.New(state.host, state.status, session.Options{PlotOnOpen: true, Kind: kind})

	state.fileLabel = widget.NewLabel("No file")
	// column selects are filled after the first load
	state.xSelect = widget.NewSelect(nil, func(string) { replotOnColumnChange(state) })
	state.xSelect.PlaceHolder = "X column"
	state.ySelect = widget.NewSelect(nil, func(string) { replotOnColumnChange(state) })
	state.ySelect.PlaceHolder = "Y column"

	state.table = widget.NewTable(
		func() (int, int) {
			t := state.sess.Data()
			if t == nil {
				return 1, 1
			}
			return uihelpers.PreviewRowCount(t.NumRows()) + 1, t.NumColumns() + 1
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			lbl := o.(*widget.Label)
			t := state.sess.Data()
			if t == nil {
				lbl.SetText("")
				return
			}
			switch {
			case id.Row == 0 && id.Col == 0:
				lbl.SetText("#")
			case id.Row == 0:
				lbl.SetText(t.Column(id.Col - 1).Name())
			case id.Col == 0:
				lbl.SetText(fmt.Sprintf("%d", id.Row))
			default:
				lbl.SetText(t.Cell(id.Row-1, id.Col-1))
			}
		},
	)

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state) }),
		widget.NewSeparator(),
		widget.NewButton("Line", func() { plot(state, render.Line) }),
		widget.NewButton("Bar", func() { plot(state, render.Bar) }),
		widget.NewButton("Scatter", func() { plot(state, render.Scatter) }),
		widget.NewButton("Histogram", func() { plot(state, render.Histogram) }),
		widget.NewSeparator(),
		widget.NewLabel("X:"), state.xSelect,
		widget.NewLabel("Y:"), state.ySelect,
		widget.NewSeparator(),
		widget.NewButton("Export…", func() { exportChart(state) }),
		widget.NewLabel("File:"), state.fileLabel,
	)
	tabs := container.NewAppTabs(
		container.NewTabItem("Chart", state.chartBox),
		container.NewTabItem("Data", state.table),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	w.SetContent(container.NewBorder(top, state.status.label, nil, nil, tabs))

	// Redraw the chart when the window width or height changes so it fills the area.
	done := make(chan struct{})
	w.SetOnClosed(func() {
		state.sess.Close()
		close(done)
	})
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		var prev fyne.Size
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fyne.Do(func() {
					sz := state.chartBox.Size()
					if sz == prev {
						return
					}
					prev = sz
					if err := state.host.Redraw(); err != nil {
						logger.Warnf("redraw: %v", err)
					}
				})
			}
		}
	}()

	buildMenus(state)
	if fileFlag != "" {
		openPath(state, fileFlag)
	}
	w.ShowAndRun()
}

// menus and shortcuts
func buildMenus(state *uiState) {
	if state == nil || state.window == nil {
		return
	}
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Export Chart…", func() { exportChart(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Close Data", func() { closeData(state) }),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	var kindItems []*fyne.MenuItem
	for _, k := range render.Kinds {
		k := k
		kindItems = append(kindItems, fyne.NewMenuItem(k.Title(), func() { plot(state, k) }))
	}
	chartMenu := fyne.NewMenu("Chart", kindItems...)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, chartMenu))

	canv := state.window.Canvas()
	if canv == nil {
		return
	}
	for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: mod}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyE, Modifier: mod}, func(fyne.Shortcut) { exportChart(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { state.window.Close() })
	}
}

// file open dialog
func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			state.status.Notify(session.Status{Condition: session.LoadError, Message: err.Error(), Err: err})
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		openPath(state, path)
	}, state.window)
	d.SetFilter(storage.NewExtensionFileFilter(uihelpers.OpenExtensions))
	d.Show()
}

// openPath loads path and refreshes the widgets that depend on the loaded table.
func openPath(state *uiState, path string) {
	st := state.sess.Open(path)
	if st.Condition == session.UnsupportedFormat || st.Condition == session.LoadError || st.Condition == session.Cancelled {
		return
	}
	state.fileLabel.SetText(uihelpers.TruncatePath(state.sess.DataPath(), 60))
	syncColumnSelects(state)
	t := state.sess.Data()
	for i, wd := range uihelpers.ComputeTableColumnWidths(state.window.Canvas().Size().Width, t.NumColumns()) {
		state.table.SetColumnWidth(i, wd)
	}
	state.table.Refresh()
}

// syncColumnSelects rebuilds the X/Y options from the loaded column names.
func syncColumnSelects(state *uiState) {
	t := state.sess.Data()
	if t == nil {
		return
	}
	state.syncing = true
	defer func() { state.syncing = false }()
	names := t.Names()
	cols := state.sess.Columns()
	state.xSelect.Options = names
	state.ySelect.Options = names
	state.xSelect.Selected = ""
	state.ySelect.Selected = ""
	if cols.X < len(names) {
		state.xSelect.Selected = names[cols.X]
	}
	if cols.Y < len(names) {
		state.ySelect.Selected = names[cols.Y]
	}
	state.xSelect.Refresh()
	state.ySelect.Refresh()
}

func selectedColumns(state *uiState) render.Columns {
	cols := state.sess.Columns()
	if i := state.xSelect.SelectedIndex(); i >= 0 {
		cols.X = i
	}
	if i := state.ySelect.SelectedIndex(); i >= 0 {
		cols.Y = i
	}
	return cols
}

func plot(state *uiState, kind render.Kind) {
	state.sess.PlotColumns(kind, selectedColumns(state))
}

func replotOnColumnChange(state *uiState) {
	if state.syncing || state.sess.State() == session.Empty || state.sess.Figure() == nil {
		return
	}
	plot(state, state.sess.Kind())
}

func closeData(state *uiState) {
	state.sess.Close()
	state.fileLabel.SetText("No file")
	state.syncing = true
	state.xSelect.Options, state.ySelect.Options = nil, nil
	state.xSelect.ClearSelected()
	state.ySelect.ClearSelected()
	state.syncing = false
	state.table.Refresh()
}

// export chart through a save dialog
func exportChart(state *uiState) {
	if state.sess.Figure() == nil {
		// the session reports NoFigure without touching the file
		state.sess.Export(uihelpers.DefaultExportName(state.sess.DataPath(), ""))
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			state.status.Notify(session.Status{Condition: session.ExportError, Message: err.Error(), Err: err})
			return
		}
		if wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()
		if st := state.sess.Export(path); st.Failed() {
			// the dialog already created an empty file
			if fi, err := os.Stat(path); err == nil && fi.Size() == 0 {
				_ = os.Remove(path)
			}
		}
	}, state.window)
	fs.SetFileName(uihelpers.DefaultExportName(state.sess.DataPath(), state.sess.Kind().String()))
	fs.SetFilter(storage.NewExtensionFileFilter(uihelpers.SaveExtensions))
	fs.Show()
}
