// Package tabular loads CSV and Excel workbooks into an in-memory table of named,
// row-aligned columns.
package tabular

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColumnKind tells whether a column holds numbers or free text.
type ColumnKind int

const (
	Numeric ColumnKind = iota
	Text
)

func (k ColumnKind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "text"
}

// ErrNonNumeric is returned by Column.Floats for text columns.
var ErrNonNumeric = errors.New("column is not numeric")

// Column is one named column. Numeric columns keep their parsed values; empty cells are NaN.
type Column struct {
	name   string
	kind   ColumnKind
	cells  []string
	floats []float64
}

// Name returns the header of the column.
func (c *Column) Name() string { return c.name }

// Kind returns Numeric or Text.
func (c *Column) Kind() ColumnKind { return c.kind }

// Len returns the number of rows.
func (c *Column) Len() int { return len(c.cells) }

// Strings returns a copy of the raw cell text.
func (c *Column) Strings() []string {
	out := make([]string, len(c.cells))
	copy(out, c.cells)
	return out
}

// Floats returns a copy of the parsed values of a numeric column.
func (c *Column) Floats() ([]float64, error) {
	if c.kind != Numeric {
		return nil, fmt.Errorf("%w: %q", ErrNonNumeric, c.name)
	}
	out := make([]float64, len(c.floats))
	copy(out, c.floats)
	return out, nil
}

// Table is an immutable set of row-aligned columns.
type Table struct {
	columns []*Column
	rows    int
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	if t == nil {
		return 0
	}
	return len(t.columns)
}

// NumRows returns the row count (header excluded).
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// Column returns column i or nil when i is out of range.
func (t *Table) Column(i int) *Column {
	if t == nil || i < 0 || i >= len(t.columns) {
		return nil
	}
	return t.columns[i]
}

// Names returns the column headers in order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.name
	}
	return out
}

// Cell returns the raw text at (row, col), or "" when out of range.
func (t *Table) Cell(row, col int) string {
	c := t.Column(col)
	if c == nil || row < 0 || row >= len(c.cells) {
		return ""
	}
	return c.cells[row]
}

// fromRecords builds a table from a header row and data rows. Short rows are padded with
// empty cells; rows wider than the header are rejected.
func fromRecords(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, errors.New("missing header row")
	}
	names := normalizeHeader(header)
	cols := make([]*Column, len(names))
	for i, n := range names {
		cols[i] = &Column{name: n, cells: make([]string, 0, len(rows))}
	}
	for r, rec := range rows {
		if len(rec) > len(names) {
			return nil, fmt.Errorf("row %d: expected at most %d fields, got %d", r+2, len(names), len(rec))
		}
		for i := range cols {
			v := ""
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			cols[i].cells = append(cols[i].cells, v)
		}
	}
	for _, c := range cols {
		c.infer()
	}
	return &Table{columns: cols, rows: len(rows)}, nil
}

// infer marks a column numeric when every non-empty cell parses as a float.
// An all-empty column stays text. Non-finite values ("inf", "NaN") count as missing.
func (c *Column) infer() {
	vals := make([]float64, len(c.cells))
	seen := 0
	for i, s := range c.cells {
		if s == "" {
			vals[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.kind = Text
			return
		}
		seen++
		if math.IsInf(f, 0) {
			f = math.NaN()
		}
		vals[i] = f
	}
	if seen == 0 {
		c.kind = Text
		return
	}
	c.kind = Numeric
	c.floats = vals
}

// normalizeHeader names blank headers "Unnamed: i" and suffixes duplicates with .1, .2, ...
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := map[string]bool{}
	dups := map[string]int{}
	for i, h := range header {
		base := strings.TrimSpace(h)
		if base == "" {
			base = fmt.Sprintf("Unnamed: %d", i)
		}
		name := base
		for seen[name] {
			dups[base]++
			name = fmt.Sprintf("%s.%d", base, dups[base])
		}
		seen[name] = true
		out[i] = name
	}
	return out
}
