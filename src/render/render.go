package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/plotter"

	"github.com/vedantbodhe/DataVisualizer/src/tabular"
)

// HistogramBins is the number of equal-width bins used for histograms.
const HistogramBins = 10

// Axis labels shared by every kind.
const (
	XAxisLabel = "X-axis"
	YAxisLabel = "Y-axis"
)

// Render builds a figure for kind from the selected columns of t. t is never modified.
func Render(t *tabular.Table, kind Kind, cols Columns) (*Figure, error) {
	if t == nil {
		return nil, ErrNoData
	}
	if err := checkColumns(t, kind, cols); err != nil {
		return nil, err
	}
	if t.NumRows() == 0 {
		return nil, fmt.Errorf("%w: table has no rows", ErrEmptyColumn)
	}
	f := &Figure{
		kind:   kind,
		title:  kind.Title(),
		xLabel: XAxisLabel,
		yLabel: YAxisLabel,
	}
	var err error
	switch kind {
	case Line, Bar, Scatter:
		f.series, err = xySeries(t, cols)
	case Histogram:
		f.bins, err = histogramBins(t.Column(cols.X))
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if err != nil {
		return nil, err
	}
	// Draw once so chart library failures surface here rather than at display time.
	img, err := f.Draw(DefaultWidth, DefaultHeight)
	if err != nil {
		return nil, fmt.Errorf("draw %s: %w", kind, err)
	}
	f.preview = img
	return f, nil
}

func checkColumns(t *tabular.Table, kind Kind, cols Columns) error {
	n := t.NumColumns()
	if kind.needsY() {
		if n < 2 {
			return fmt.Errorf("%w: %s needs 2 columns, table has %d", ErrInsufficientColumns, kind, n)
		}
		if cols.X < 0 || cols.X >= n || cols.Y < 0 || cols.Y >= n {
			return fmt.Errorf("%w: columns x=%d y=%d out of range (table has %d)", ErrInsufficientColumns, cols.X, cols.Y, n)
		}
		return nil
	}
	if n < 1 {
		return fmt.Errorf("%w: %s needs 1 column, table has 0", ErrInsufficientColumns, kind)
	}
	if cols.X < 0 || cols.X >= n {
		return fmt.Errorf("%w: column x=%d out of range (table has %d)", ErrInsufficientColumns, cols.X, n)
	}
	return nil
}

// xySeries pairs the X and Y columns row by row. Text X columns become categorical
// positions 1..n labelled with the cell text. Rows with a missing value are skipped.
func xySeries(t *tabular.Table, cols Columns) (Series, error) {
	xc, yc := t.Column(cols.X), t.Column(cols.Y)
	ys, err := yc.Floats()
	if err != nil {
		return Series{}, fmt.Errorf("%w: y column %q", ErrNonNumeric, yc.Name())
	}
	s := Series{Name: yc.Name()}
	categorical := xc.Kind() != tabular.Numeric
	var xs []float64
	if !categorical {
		xs, _ = xc.Floats()
	}
	cells := xc.Strings()
	for i := range ys {
		if !finite(ys[i]) {
			continue
		}
		if categorical {
			s.XLabels = append(s.XLabels, cells[i])
			s.X = append(s.X, float64(len(s.X)+1))
		} else {
			if !finite(xs[i]) {
				continue
			}
			s.X = append(s.X, xs[i])
		}
		s.Y = append(s.Y, ys[i])
	}
	if len(s.Y) == 0 {
		return Series{}, fmt.Errorf("%w: columns %q/%q", ErrEmptyColumn, xc.Name(), yc.Name())
	}
	return s, nil
}

// histogramBins counts the numeric values of c into HistogramBins equal-width bins.
func histogramBins(c *tabular.Column) ([]Bin, error) {
	vals, err := c.Floats()
	if err != nil {
		return nil, fmt.Errorf("%w: column %q", ErrNonNumeric, c.Name())
	}
	present := make(plotter.Values, 0, len(vals))
	for _, v := range vals {
		if finite(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("%w: column %q", ErrEmptyColumn, c.Name())
	}
	h, err := plotter.NewHist(present, HistogramBins)
	if err != nil {
		return nil, fmt.Errorf("bin column %q: %w", c.Name(), err)
	}
	bins := make([]Bin, len(h.Bins))
	for i, b := range h.Bins {
		bins[i] = Bin{Min: b.Min, Max: b.Max, Count: b.Weight}
	}
	return bins, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
