package session

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vedantbodhe/DataVisualizer/src/logging"
	"github.com/vedantbodhe/DataVisualizer/src/render"
)

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// fakeDisplay keeps the attached figures the way a chart container would.
type fakeDisplay struct {
	attached []*render.Figure
	shown    int
	failNext error
}

func (d *fakeDisplay) Display(fig *render.Figure) error {
	if d.failNext != nil {
		err := d.failNext
		d.failNext = nil
		return err
	}
	d.attached = d.attached[:0]
	d.attached = append(d.attached, fig)
	d.shown++
	return nil
}

func (d *fakeDisplay) Clear() { d.attached = nil }

type recorder struct {
	mu  sync.Mutex
	got []Status
}

func (r *recorder) Notify(s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, s)
}

func writeCSV(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestSession_StateMachine(t *testing.T) {
	disp := &fakeDisplay{}
	rec := &recorder{}
	s := New(disp, rec, Options{})
	if s.State() != Empty {
		t.Fatalf("new session state = %s", s.State())
	}

	st := s.Open(writeCSV(t, "d.csv", "x,y\n1,2\n2,4\n3,6\n"))
	if st.Condition != OK || st.State != Loaded {
		t.Fatalf("open: %+v", st)
	}
	if s.Figure() != nil || disp.shown != 0 {
		t.Fatalf("open without PlotOnOpen must not plot")
	}

	st = s.Plot(render.Line)
	if st.Condition != OK || st.State != Plotted {
		t.Fatalf("plot: %+v", st)
	}
	fig := s.Figure()
	series := fig.Series()
	if series.X[2] != 3 || series.Y[2] != 6 {
		t.Fatalf("series = %+v", series)
	}

	st = s.Plot(render.Bar)
	if st.Condition != OK || st.State != Plotted || s.Figure() == fig {
		t.Fatalf("re-plot should replace figure: %+v", st)
	}

	out := filepath.Join(t.TempDir(), "chart.png")
	st = s.Export(out)
	if st.Condition != OK || st.State != Exported {
		t.Fatalf("export: %+v", st)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("exported file: %v", err)
	}
	if s.Figure() == nil {
		t.Fatalf("figure must stay current after export")
	}

	st = s.Close()
	if st.State != Empty || s.Data() != nil || s.Figure() != nil || len(disp.attached) != 0 {
		t.Fatalf("close should clear session: %+v", st)
	}
	if len(rec.got) != 5 {
		t.Fatalf("notifier got %d statuses, want 5", len(rec.got))
	}
}

func TestSession_KindSwitchKeepsOneWidget(t *testing.T) {
	disp := &fakeDisplay{}
	s := New(disp, nil, Options{})
	s.Open(writeCSV(t, "d.csv", "x,y\n1,2\n2,4\n3,6\n"))
	for _, k := range []render.Kind{render.Line, render.Bar, render.Scatter, render.Histogram} {
		st := s.Plot(k)
		if st.Failed() {
			t.Fatalf("%s: %+v", k, st)
		}
		if len(disp.attached) != 1 || disp.attached[0] != s.Figure() {
			t.Fatalf("%s: attached = %d", k, len(disp.attached))
		}
		if s.Kind() != k {
			t.Fatalf("kind = %s want %s", s.Kind(), k)
		}
	}
}

func TestSession_ErrorsKeepState(t *testing.T) {
	disp := &fakeDisplay{}
	s := New(disp, nil, Options{})

	if st := s.Plot(render.Line); st.Condition != NoDataLoaded || st.State != Empty {
		t.Fatalf("plot before open: %+v", st)
	}
	if st := s.Export(filepath.Join(t.TempDir(), "c.png")); st.Condition != NoFigure || st.State != Empty {
		t.Fatalf("export before plot: %+v", st)
	}

	good := writeCSV(t, "good.csv", "x,y\n1,2\n2,4\n")
	s.Open(good)
	s.Plot(render.Scatter)
	data, fig := s.Data(), s.Figure()

	missing := filepath.Join(t.TempDir(), "missing.csv")
	st := s.Open(missing)
	if st.Condition != LoadError || st.State != Plotted {
		t.Fatalf("missing file: %+v", st)
	}
	if s.Data() != data || s.Figure() != fig || s.DataPath() != good {
		t.Fatalf("failed open replaced session slots")
	}

	if st := s.Open(writeCSV(t, "notes.txt", "x")); st.Condition != UnsupportedFormat {
		t.Fatalf("txt: %+v", st)
	}
	if st := s.PlotColumns(render.Line, render.Columns{X: 0, Y: 5}); st.Condition != InsufficientColumns || s.Figure() != fig {
		t.Fatalf("bad column: %+v", st)
	}

	disp.failNext = errors.New("canvas gone")
	if st := s.Plot(render.Bar); st.Condition != RenderError || s.Figure() != fig || s.Kind() != render.Scatter {
		t.Fatalf("display failure: %+v", st)
	}

	if st := s.Export(filepath.Join(t.TempDir(), "chart.bmp")); st.Condition != ExportError || st.State != Plotted {
		t.Fatalf("bad export ext: %+v", st)
	}
}

func TestSession_SingleColumn(t *testing.T) {
	s := New(&fakeDisplay{}, nil, Options{})
	s.Open(writeCSV(t, "one.csv", "v\n1\n2\n3\n"))
	for _, k := range []render.Kind{render.Line, render.Bar, render.Scatter} {
		if st := s.Plot(k); st.Condition != InsufficientColumns || st.State != Loaded {
			t.Fatalf("%s: %+v", k, st)
		}
	}
	if st := s.Plot(render.Histogram); st.Condition != OK {
		t.Fatalf("histogram: %+v", st)
	}
}

func TestSession_TextY(t *testing.T) {
	s := New(nil, nil, Options{})
	s.Open(writeCSV(t, "t.csv", "a,b\n1,x\n2,y\n"))
	if st := s.Plot(render.Line); st.Condition != NonNumeric {
		t.Fatalf("text y: %+v", st)
	}
}

func TestSession_PlotOnOpen(t *testing.T) {
	disp := &fakeDisplay{}
	s := New(disp, nil, Options{PlotOnOpen: true, Kind: render.Scatter})
	st := s.Open(writeCSV(t, "d.csv", "x,y\n1,2\n2,4\n"))
	if st.Condition != OK || st.State != Plotted || s.Figure().Kind() != render.Scatter {
		t.Fatalf("plot on open: %+v", st)
	}

	// auto-plot failure keeps the freshly loaded table
	st = s.Open(writeCSV(t, "one.csv", "v\n1\n"))
	if st.Condition != InsufficientColumns {
		t.Fatalf("auto-plot on one column: %+v", st)
	}
	if s.Data().NumColumns() != 1 {
		t.Fatalf("table should be loaded even when auto-plot fails")
	}
}

func TestSession_CancelledAndUnknown(t *testing.T) {
	s := New(nil, nil, Options{})
	if st := s.Open(""); st.Condition != Cancelled || st.Failed() {
		t.Fatalf("cancel open: %+v", st)
	}
	if st := s.Export(""); st.Condition != Cancelled {
		t.Fatalf("cancel export: %+v", st)
	}
	if st := s.Dispatch(Request{Action: "undo"}); st.Condition != UnknownAction || !st.Failed() {
		t.Fatalf("unknown action: %+v", st)
	}
}

func TestSession_IndependentWindows(t *testing.T) {
	a := New(nil, nil, Options{})
	b := New(nil, nil, Options{})
	a.Open(writeCSV(t, "a.csv", "x,y\n1,2\n"))
	if b.Data() != nil || b.State() != Empty {
		t.Fatalf("sessions share state")
	}
}

func TestSession_ConcurrentDispatchSerialized(t *testing.T) {
	disp := &fakeDisplay{}
	s := New(disp, nil, Options{})
	s.Open(writeCSV(t, "d.csv", "x,y\n1,2\n2,4\n3,6\n"))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(k render.Kind) {
			defer wg.Done()
			s.Plot(k)
		}(render.Kinds[i%len(render.Kinds)])
	}
	wg.Wait()
	if len(disp.attached) != 1 || disp.shown != 8 {
		t.Fatalf("attached=%d shown=%d", len(disp.attached), disp.shown)
	}
}
