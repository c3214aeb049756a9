package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Default figure size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Series is the plotted X/Y data of a line, bar or scatter figure. XLabels is set when the
// X column held text; X then holds the positions 1..n.
type Series struct {
	Name    string
	X       []float64
	Y       []float64
	XLabels []string
}

// Bin is one histogram bucket covering [Min, Max).
type Bin struct {
	Min, Max float64
	Count    float64
}

// Label is the bar caption of the bin, e.g. "-1..0.5". ASCII only: the chart font has no
// typographic dashes.
func (b Bin) Label() string { return formatTick(b.Min) + ".." + formatTick(b.Max) }

// Figure is a rendered chart definition. It can be drawn at any size and encoded to file formats.
type Figure struct {
	kind    Kind
	title   string
	xLabel  string
	yLabel  string
	series  Series
	bins    []Bin
	preview image.Image
}

func (f *Figure) Kind() Kind     { return f.kind }
func (f *Figure) Title() string  { return f.title }
func (f *Figure) XLabel() string { return f.xLabel }
func (f *Figure) YLabel() string { return f.yLabel }

// Preview is the image drawn at the default size when the figure was rendered.
func (f *Figure) Preview() image.Image { return f.preview }

// Series returns a copy of the plotted data. Empty for histograms.
func (f *Figure) Series() Series {
	s := Series{Name: f.series.Name}
	s.X = append([]float64(nil), f.series.X...)
	s.Y = append([]float64(nil), f.series.Y...)
	if f.series.XLabels != nil {
		s.XLabels = append([]string(nil), f.series.XLabels...)
	}
	return s
}

// Bins returns a copy of the histogram buckets. Empty for other kinds.
func (f *Figure) Bins() []Bin { return append([]Bin(nil), f.bins...) }

// Format is an image encoding supported by Encode.
type Format int

const (
	PNG Format = iota
	SVG
	JPEG
)

func (ft Format) String() string {
	switch ft {
	case SVG:
		return "svg"
	case JPEG:
		return "jpeg"
	default:
		return "png"
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG, nil
	case ".svg":
		return SVG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	default:
		return PNG, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// chartRenderer is implemented by both chart.Chart and chart.BarChart.
type chartRenderer interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Draw renders the figure to an image of w x h pixels.
func (f *Figure) Draw(w, h int) (image.Image, error) {
	var buf bytes.Buffer
	if err := f.chart(w, h).Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// Encode writes the figure in the given format at w x h pixels.
func (f *Figure) Encode(out io.Writer, format Format, w, h int) error {
	switch format {
	case PNG:
		return f.chart(w, h).Render(chart.PNG, out)
	case SVG:
		return f.chart(w, h).Render(chart.SVG, out)
	case JPEG:
		img, err := f.Draw(w, h)
		if err != nil {
			return err
		}
		return jpeg.Encode(out, img, &jpeg.Options{Quality: 90})
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}
}

func (f *Figure) chart(w, h int) chartRenderer {
	switch f.kind {
	case Bar:
		labels := f.series.XLabels
		if labels == nil {
			labels = make([]string, len(f.series.X))
			for i, x := range f.series.X {
				labels[i] = formatTick(x)
			}
		}
		return f.barChart(w, h, labels, f.series.Y)
	case Histogram:
		labels := make([]string, len(f.bins))
		counts := make([]float64, len(f.bins))
		for i, b := range f.bins {
			labels[i] = b.Label()
			counts[i] = b.Count
		}
		return f.barChart(w, h, labels, counts)
	default:
		return f.xyChart(w, h)
	}
}

var seriesColor = chart.ColorBlue

func (f *Figure) xyChart(w, h int) chart.Chart {
	xs, ys := f.series.X, f.series.Y
	st := chart.Style{StrokeColor: seriesColor, StrokeWidth: 2}
	if f.kind == Scatter {
		st = chart.Style{StrokeWidth: chart.Disabled, DotWidth: 4, DotColor: seriesColor}
	}
	if len(xs) == 1 {
		// a lone point still needs two values for the series to draw
		xs = []float64{xs[0], xs[0]}
		ys = []float64{ys[0], ys[0]}
		st.DotWidth = 6
		st.DotColor = seriesColor
	}

	padBottom := 20
	var xAxis chart.XAxis
	if f.series.XLabels != nil {
		n := len(f.series.XLabels)
		ticks := make([]chart.Tick, 0, n)
		for i, l := range f.series.XLabels {
			ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: l})
		}
		xAxis = chart.XAxis{Name: f.xLabel, Ticks: ticks, Range: &chart.ContinuousRange{Min: 0.5, Max: float64(n) + 0.5}}
		padBottom = 40
	} else {
		lo, hi, _ := minMax(f.series.X)
		lo, hi = niceAxisBounds(lo, hi)
		xAxis = chart.XAxis{Name: f.xLabel, Ticks: niceTicks(lo, hi, 8), Range: &chart.ContinuousRange{Min: lo, Max: hi}}
	}
	lo, hi, _ := minMax(f.series.Y)
	lo, hi = niceAxisBounds(lo, hi)

	return chart.Chart{
		Title:      f.title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: padBottom}},
		XAxis:      xAxis,
		YAxis:      chart.YAxis{Name: f.yLabel, Ticks: niceTicks(lo, hi, 6), Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: f.series.Name, XValues: xs, YValues: ys, Style: st},
		},
	}
}

func (f *Figure) barChart(w, h int, labels []string, vals []float64) chart.BarChart {
	bars := make([]chart.Value, 0, len(vals))
	for i, v := range vals {
		bars = append(bars, chart.Value{Label: labels[i], Value: v})
	}
	lo, hi, _ := minMax(vals)
	lo, hi = niceAxisBounds(math.Min(lo, 0), math.Max(hi, 0))
	if lo > 0 {
		lo = 0
	}

	// fit every bar in the plot area: 70% bar, 30% gap
	slot := (w - 96) / max(len(bars), 1)
	barWidth := max(slot*7/10, 1)
	spacing := max(slot-barWidth, 1)
	if f.kind == Histogram {
		barWidth, spacing = max(slot-1, 1), 1
	}

	return chart.BarChart{
		Title:        f.title,
		Width:        w,
		Height:       h,
		Background:   chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 36}},
		BarWidth:     barWidth,
		BarSpacing:   spacing,
		Bars:         bars,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis:        chart.YAxis{Name: f.yLabel, Ticks: niceTicks(lo, hi, 6), Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Elements:     []chart.Renderable{axisCaption(f.xLabel, h)},
	}
}

// axisCaption draws the X axis name centred under the bar labels; BarChart has no X axis name.
func axisCaption(text string, h int) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		if text == "" {
			return
		}
		st := chart.Style{FontSize: 10, FontColor: chart.ColorBlack}.InheritFrom(defaults)
		st.WriteTextOptionsToRenderer(r)
		tb := r.MeasureText(text)
		x := box.Left + (box.Width()-tb.Width())/2
		y := h - 8
		r.Text(text, x, y)
	}
}
