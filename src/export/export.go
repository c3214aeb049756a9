// Package export writes the current chart figure to an image file.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vedantbodhe/DataVisualizer/src/render"
)

// ErrNoFigure is returned when there is nothing to export yet.
var ErrNoFigure = errors.New("no chart to export")

// Error wraps an encode or write failure for a destination path.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("export %s: %v", e.Path, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Options sets the pixel size of the written image. Zero values fall back to the figure defaults.
type Options struct {
	Width  int
	Height int
}

// Export writes fig to path at the default size. See ExportWithOptions.
func Export(fig *render.Figure, path string) (string, error) {
	return ExportWithOptions(fig, path, Options{})
}

// ExportWithOptions encodes fig in the format implied by the extension of path (.png, .svg,
// .jpg, .jpeg) and writes it. A path without an extension gets ".png". It returns the path
// actually written. Nothing is written when fig is nil or encoding fails.
func ExportWithOptions(fig *render.Figure, path string, opts Options) (string, error) {
	if fig == nil {
		return "", ErrNoFigure
	}
	if filepath.Ext(path) == "" {
		path += ".png"
	}
	format, err := render.FormatFromPath(path)
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = render.DefaultWidth
	}
	if h <= 0 {
		h = render.DefaultHeight
	}
	var buf bytes.Buffer
	if err := fig.Encode(&buf, format, w, h); err != nil {
		return "", &Error{Path: path, Err: fmt.Errorf("%s encode: %w", format, err)}
	}
	if err := writeFile(path, buf.Bytes()); err != nil {
		return "", &Error{Path: path, Err: err}
	}
	return path, nil
}

// writeFile writes data to a temporary file next to path and renames it into place, so a
// failure never truncates or removes an existing entry at path.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(name, 0o644)
	}
	if err == nil {
		err = os.Rename(name, path)
	}
	if err != nil {
		_ = os.Remove(name)
	}
	return err
}
