package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupportedFormat is returned for file extensions other than .csv and .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extensions lists the file extensions Load understands.
var Extensions = []string{".csv", ".xlsx"}

// LoadError wraps an I/O or parse failure for a given file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads path into a Table, choosing the parser from the file extension.
func Load(path string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		defer f.Close()
		t, err := ReadCSV(f)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		return t, nil
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		defer f.Close()
		t, err := ReadXLSX(f)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		return t, nil
	default:
		if ext == "" {
			ext = "(none)"
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ReadCSV parses comma separated text with a header row. A leading UTF-8 BOM is dropped.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1 // widths are checked against the header in fromRecords
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if isBlankRecord(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return fromRecords(header, rows)
}

// ReadXLSX parses the first worksheet of an Excel workbook; its first row is the header.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	// GetRows drops trailing empty rows but keeps interior ones.
	var rows [][]string
	for len(all) > 0 && isBlankRecord(all[0]) {
		all = all[1:]
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("sheet %q: missing header row", sheets[0])
	}
	for _, rec := range all[1:] {
		if isBlankRecord(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return fromRecords(all[0], rows)
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
