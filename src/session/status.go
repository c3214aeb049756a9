package session

import (
	"errors"
	"fmt"

	"github.com/vedantbodhe/DataVisualizer/src/export"
	"github.com/vedantbodhe/DataVisualizer/src/render"
	"github.com/vedantbodhe/DataVisualizer/src/tabular"
)

// State is the position of a session in its lifecycle.
type State int

const (
	Empty State = iota
	Loaded
	Plotted
	Exported
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Plotted:
		return "plotted"
	case Exported:
		return "exported"
	default:
		return "empty"
	}
}

// Condition classifies the outcome of a dispatched action.
type Condition int

const (
	OK Condition = iota
	Cancelled
	UnsupportedFormat
	LoadError
	NoDataLoaded
	InsufficientColumns
	NonNumeric
	RenderError
	NoFigure
	ExportError
	UnknownAction
)

var conditionNames = map[Condition]string{
	OK:                  "ok",
	Cancelled:           "cancelled",
	UnsupportedFormat:   "unsupported format",
	LoadError:           "load error",
	NoDataLoaded:        "no data loaded",
	InsufficientColumns: "insufficient columns",
	NonNumeric:          "non-numeric column",
	RenderError:         "render error",
	NoFigure:            "no figure",
	ExportError:         "export error",
	UnknownAction:       "unknown action",
}

func (c Condition) String() string {
	if n, ok := conditionNames[c]; ok {
		return n
	}
	return fmt.Sprintf("condition(%d)", int(c))
}

// Status is the result of one dispatched action, for presentation by the caller.
type Status struct {
	Action    Action
	Condition Condition
	Message   string
	Err       error
	State     State
}

// Failed reports whether the action did not complete. Cancelled is not a failure.
func (s Status) Failed() bool { return s.Condition != OK && s.Condition != Cancelled }

func (s Status) String() string {
	if s.Failed() {
		return fmt.Sprintf("%s: %s", s.Condition, s.Message)
	}
	return s.Message
}

// classify maps a component error onto a condition.
func classify(err error) Condition {
	var le *tabular.LoadError
	var ee *export.Error
	switch {
	case err == nil:
		return OK
	case errors.Is(err, tabular.ErrUnsupportedFormat):
		return UnsupportedFormat
	case errors.As(err, &le):
		return LoadError
	case errors.Is(err, render.ErrNoData):
		return NoDataLoaded
	case errors.Is(err, render.ErrInsufficientColumns):
		return InsufficientColumns
	case errors.Is(err, render.ErrNonNumeric):
		return NonNumeric
	case errors.Is(err, export.ErrNoFigure):
		return NoFigure
	case errors.As(err, &ee):
		return ExportError
	default:
		return RenderError
	}
}
