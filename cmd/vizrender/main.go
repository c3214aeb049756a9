// Command vizrender runs the load → render → export pipeline without a window.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vedantbodhe/DataVisualizer/src/export"
	"github.com/vedantbodhe/DataVisualizer/src/logging"
	"github.com/vedantbodhe/DataVisualizer/src/render"
	"github.com/vedantbodhe/DataVisualizer/src/session"
)

type config struct {
	file          string
	kind          string
	x, y          int
	out           string
	width, height int
	all           bool
}

func main() {
	var cfg config
	var logLevel string
	flag.StringVar(&cfg.file, "file", "", "CSV or XLSX file to plot (required)")
	flag.StringVar(&cfg.kind, "kind", "line", "Chart type (line|bar|scatter|histogram)")
	flag.IntVar(&cfg.x, "x", 0, "X column index (histogram column)")
	flag.IntVar(&cfg.y, "y", 1, "Y column index")
	flag.StringVar(&cfg.out, "out", "chart.png", "Output image (.png|.svg|.jpg); with -all, an output directory")
	flag.IntVar(&cfg.width, "width", render.DefaultWidth, "Image width in pixels")
	flag.IntVar(&cfg.height, "height", render.DefaultHeight, "Image height in pixels")
	flag.BoolVar(&cfg.all, "all", false, "Render every chart kind as PNG into the -out directory")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	flag.Parse()
	logging.SetLevel(logLevel)

	var err error
	if cfg.all {
		err = RunAllMode(cfg, os.Stderr)
	} else {
		err = run(cfg, os.Stderr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newSession(cfg config, w io.Writer) *session.Session {
	return session.New(nil, session.NotifierFunc(func(st session.Status) {
		fmt.Fprintln(w, st.String())
	}), session.Options{Export: export.Options{Width: cfg.width, Height: cfg.height}})
}

// run loads cfg.file, renders one chart and writes it to cfg.out.
func run(cfg config, w io.Writer) error {
	if cfg.file == "" {
		return fmt.Errorf("-file is required")
	}
	kind, err := render.ParseKind(cfg.kind)
	if err != nil {
		return err
	}
	sess := newSession(cfg, w)
	for _, st := range []func() session.Status{
		func() session.Status { return sess.Open(cfg.file) },
		func() session.Status { return sess.PlotColumns(kind, render.Columns{X: cfg.x, Y: cfg.y}) },
		func() session.Status { return sess.Export(cfg.out) },
	} {
		if s := st(); s.Failed() {
			return s.Err
		}
	}
	return nil
}

// RunAllMode renders every chart kind for cfg.file and writes them as PNGs under cfg.out.
// Kinds the data cannot support are reported and skipped.
func RunAllMode(cfg config, w io.Writer) error {
	if cfg.file == "" {
		return fmt.Errorf("-file is required")
	}
	if err := os.MkdirAll(cfg.out, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	sess := newSession(cfg, w)
	if st := sess.Open(cfg.file); st.Failed() {
		return st.Err
	}
	written := 0
	for _, k := range render.Kinds {
		if st := sess.PlotColumns(k, render.Columns{X: cfg.x, Y: cfg.y}); st.Failed() {
			continue
		}
		if st := sess.Export(filepath.Join(cfg.out, k.String()+".png")); st.Failed() {
			return st.Err
		}
		written++
	}
	if written == 0 {
		return fmt.Errorf("no chart kind could be rendered from %s", cfg.file)
	}
	return nil
}
