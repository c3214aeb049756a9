// Package session holds the per-window state of the visualizer (current table, current
// figure) and routes user actions to the loader, renderer, display and exporter.
//
// A Session is toolkit-agnostic: the window supplies a Display for the chart area and a
// Notifier for the status indicator. Every action returns a Status; errors never change
// the session state.
package session

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/vedantbodhe/DataVisualizer/src/export"
	"github.com/vedantbodhe/DataVisualizer/src/logging"
	"github.com/vedantbodhe/DataVisualizer/src/render"
	"github.com/vedantbodhe/DataVisualizer/src/tabular"
)

// Action identifies a user command.
type Action string

const (
	ActionOpen   Action = "open"
	ActionPlot   Action = "plot"
	ActionExport Action = "export"
	ActionClose  Action = "close"
)

// Request carries the arguments of one action. Columns nil keeps the current selection.
type Request struct {
	Action  Action
	Path    string
	Kind    render.Kind
	Columns *render.Columns
}

// Display shows figures in the chart area.
type Display interface {
	Display(fig *render.Figure) error
	Clear()
}

// Notifier presents a status to the user without blocking.
type Notifier interface {
	Notify(Status)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Status)

func (f NotifierFunc) Notify(s Status) { f(s) }

// Options tunes a session.
type Options struct {
	// PlotOnOpen renders the current kind right after a successful open.
	PlotOnOpen bool
	// Kind is the kind used before the first explicit plot.
	Kind render.Kind
	// Export sets the pixel size of exported images.
	Export export.Options
}

var logger = logging.Named("session")

type handler func(*Session, Request) Status

var handlers = map[Action]handler{
	ActionOpen:   (*Session).open,
	ActionPlot:   (*Session).plot,
	ActionExport: (*Session).export,
	ActionClose:  (*Session).close,
}

// Session is the state of one visualizer window.
type Session struct {
	mu       sync.Mutex
	display  Display
	notifier Notifier
	opts     Options

	data     *tabular.Table
	dataPath string
	figure   *render.Figure
	state    State
	kind     render.Kind
	cols     render.Columns
}

// New returns an empty session. display and notifier may be nil.
func New(display Display, notifier Notifier, opts Options) *Session {
	return &Session{
		display:  display,
		notifier: notifier,
		opts:     opts,
		kind:     opts.Kind,
		cols:     render.DefaultColumns,
	}
}

// Dispatch runs one action to completion. Actions are serialized: a second Dispatch waits
// for the first to finish.
func (s *Session) Dispatch(req Request) Status {
	start := time.Now()
	s.mu.Lock()
	h, ok := handlers[req.Action]
	var st Status
	if ok {
		st = h(s, req)
	} else {
		st = s.fail(UnknownAction, fmt.Errorf("unknown action %q", req.Action))
	}
	st.Action = req.Action
	st.State = s.state
	notifier := s.notifier
	s.mu.Unlock()

	logger.TimeTrack(start, string(req.Action))
	if st.Failed() {
		logger.Outcome(string(req.Action), st.Condition.String(), st.Err)
	} else {
		logger.Outcome(string(req.Action), fmt.Sprintf("%s (state=%s)", st.Message, st.State), nil)
	}
	if notifier != nil {
		notifier.Notify(st)
	}
	return st
}

// Open loads path. An empty path is a cancelled dialog.
func (s *Session) Open(path string) Status {
	return s.Dispatch(Request{Action: ActionOpen, Path: path})
}

// Plot renders kind with the current column selection.
func (s *Session) Plot(kind render.Kind) Status {
	return s.Dispatch(Request{Action: ActionPlot, Kind: kind})
}

// PlotColumns renders kind with an explicit column selection.
func (s *Session) PlotColumns(kind render.Kind, cols render.Columns) Status {
	return s.Dispatch(Request{Action: ActionPlot, Kind: kind, Columns: &cols})
}

// Export writes the current figure to path.
func (s *Session) Export(path string) Status {
	return s.Dispatch(Request{Action: ActionExport, Path: path})
}

// Close clears the session, as on window close.
func (s *Session) Close() Status {
	return s.Dispatch(Request{Action: ActionClose})
}

func (s *Session) open(req Request) Status {
	if req.Path == "" {
		return Status{Condition: Cancelled, Message: "open cancelled"}
	}
	t, err := tabular.Load(req.Path)
	if err != nil {
		return s.fail(classify(err), err)
	}
	s.data = t
	s.dataPath = req.Path
	s.state = Loaded
	s.cols = render.DefaultColumns
	msg := fmt.Sprintf("loaded %s (%d rows, %d columns)", filepath.Base(req.Path), t.NumRows(), t.NumColumns())
	if !s.opts.PlotOnOpen {
		return Status{Condition: OK, Message: msg}
	}
	// a failed auto-plot keeps the table loaded and reports the plot condition
	st := s.plot(Request{Kind: s.kind})
	st.Message = msg + "; " + st.Message
	return st
}

func (s *Session) plot(req Request) Status {
	if s.data == nil {
		return s.fail(NoDataLoaded, render.ErrNoData)
	}
	cols := s.cols
	if req.Columns != nil {
		cols = *req.Columns
	}
	fig, err := render.Render(s.data, req.Kind, cols)
	if err != nil {
		return s.fail(classify(err), err)
	}
	if s.display != nil {
		if err := s.display.Display(fig); err != nil {
			return s.fail(RenderError, fmt.Errorf("display %s: %w", req.Kind, err))
		}
	}
	s.figure = fig
	s.kind = req.Kind
	s.cols = cols
	s.state = Plotted
	return Status{Condition: OK, Message: fmt.Sprintf("%s of %s", fig.Title(), s.axisNames(req.Kind, cols))}
}

func (s *Session) export(req Request) Status {
	if req.Path == "" {
		return Status{Condition: Cancelled, Message: "export cancelled"}
	}
	if s.figure == nil {
		return s.fail(NoFigure, export.ErrNoFigure)
	}
	written, err := export.ExportWithOptions(s.figure, req.Path, s.opts.Export)
	if err != nil {
		return s.fail(classify(err), err)
	}
	s.state = Exported
	return Status{Condition: OK, Message: "exported " + written}
}

func (s *Session) close(Request) Status {
	s.data = nil
	s.dataPath = ""
	s.figure = nil
	s.state = Empty
	s.kind = s.opts.Kind
	s.cols = render.DefaultColumns
	if s.display != nil {
		s.display.Clear()
	}
	return Status{Condition: OK, Message: "closed"}
}

// fail builds a failure status. State is left untouched.
func (s *Session) fail(c Condition, err error) Status {
	return Status{Condition: c, Message: err.Error(), Err: err}
}

func (s *Session) axisNames(kind render.Kind, cols render.Columns) string {
	names := s.data.Names()
	if kind == render.Histogram {
		return fmt.Sprintf("%q", names[cols.X])
	}
	return fmt.Sprintf("%q vs %q", names[cols.Y], names[cols.X])
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Data returns the current table, or nil.
func (s *Session) Data() *tabular.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// DataPath returns the path of the current table.
func (s *Session) DataPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataPath
}

// Figure returns the current figure, or nil.
func (s *Session) Figure() *render.Figure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.figure
}

// Kind returns the last plotted kind, or Options.Kind before the first plot.
func (s *Session) Kind() render.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// Columns returns the current column selection.
func (s *Session) Columns() render.Columns {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cols
}
