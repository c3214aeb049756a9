package render

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice" numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		// constant data: open a unit window around the value
		return min - 1, max + 1
	}
	span := max - min
	pad := span * 0.05
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks generates about n ticks inside [min, max] on a 1, 2, 2.5, 5 step pattern.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) || max <= min {
		return nil
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	eps := bestStep * 1e-6
	var ticks []chart.Tick
	for v := math.Ceil(min/bestStep) * bestStep; v <= max+eps; v += bestStep {
		v = round6(v)
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	if len(ticks) < 2 {
		return nil
	}
	return ticks
}

// formatTick gives a compact label; precision shrinks as magnitude grows.
func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// round6 rounds to 6 decimal places to keep tick values stable.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// minMax ignores NaN; ok is false when no finite value exists.
func minMax(vals []float64) (lo, hi float64, ok bool) {
	lo, hi = math.MaxFloat64, -math.MaxFloat64
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		ok = true
	}
	return lo, hi, ok
}
