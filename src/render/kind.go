// Package render turns a loaded table into a chart figure for one of the four plot kinds.
package render

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the chart type.
type Kind int

const (
	Line Kind = iota
	Bar
	Scatter
	Histogram
)

// Kinds lists every plot kind in toolbar order.
var Kinds = []Kind{Line, Bar, Scatter, Histogram}

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Bar:
		return "bar"
	case Scatter:
		return "scatter"
	case Histogram:
		return "histogram"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Title is the chart title used for a kind.
func (k Kind) Title() string {
	switch k {
	case Line:
		return "Line Plot"
	case Bar:
		return "Bar Chart"
	case Scatter:
		return "Scatter Plot"
	case Histogram:
		return "Histogram"
	default:
		return "Data Plot"
	}
}

// needsY reports whether the kind plots a dependent column.
func (k Kind) needsY() bool { return k != Histogram }

// ParseKind accepts the lower-case kind names, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line":
		return Line, nil
	case "bar":
		return Bar, nil
	case "scatter":
		return Scatter, nil
	case "histogram", "hist":
		return Histogram, nil
	}
	return Line, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Columns picks the independent (X) and dependent (Y) columns by index.
// Histogram uses X only.
type Columns struct {
	X int
	Y int
}

// DefaultColumns plots column 0 against column 1.
var DefaultColumns = Columns{X: 0, Y: 1}

var (
	ErrNoData              = errors.New("no data loaded")
	ErrInsufficientColumns = errors.New("insufficient columns")
	ErrNonNumeric          = errors.New("column is not numeric")
	ErrEmptyColumn         = errors.New("no values to plot")
	ErrUnknownKind         = errors.New("unknown plot kind")
	ErrUnknownFormat       = errors.New("unknown image format")
)
