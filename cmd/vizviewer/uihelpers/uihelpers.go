package uihelpers

import (
	"path/filepath"
	"strings"

	"github.com/vedantbodhe/DataVisualizer/src/tabular"
)

// ComputeChartDimensions applies the width/height clamp rules used for the chart area.
// Input: the raw area of the chart container in pixels. Zero height derives a 3:2 aspect.
func ComputeChartDimensions(rawW, rawH int) (int, int) {
	w := rawW
	if w < 480 {
		w = 480
	}
	h := rawH
	if h <= 0 {
		h = w * 2 / 3
	}
	if h < 320 {
		h = 320
	}
	if h > 1200 {
		h = 1200
	}
	return w, h
}

// ComputeTableColumnWidths splits the window width over n data columns for the Data tab.
// Each column gets an equal share clamped to [80, 240]; a leading row-number column is 56.
func ComputeTableColumnWidths(winW float32, n int) []float32 {
	if n <= 0 {
		return []float32{56}
	}
	out := make([]float32, n+1)
	out[0] = 56
	share := (winW - 56 - 24) / float32(n)
	if share < 80 {
		share = 80
	}
	if share > 240 {
		share = 240
	}
	for i := 1; i <= n; i++ {
		out[i] = share
	}
	return out
}

// PreviewRows caps how many rows the Data tab shows.
const PreviewRows = 500

// PreviewRowCount returns how many data rows to show, header excluded.
func PreviewRowCount(rows int) int {
	if rows < 0 {
		return 0
	}
	if rows > PreviewRows {
		return PreviewRows
	}
	return rows
}

// OpenExtensions and SaveExtensions are the file dialog filters.
var (
	OpenExtensions = tabular.Extensions
	SaveExtensions = []string{".png", ".svg", ".jpg", ".jpeg"}
)

// DefaultExportName suggests "<data file base>_<kind>.png", or "chart.png" without data.
func DefaultExportName(dataPath, kind string) string {
	base := strings.TrimSuffix(filepath.Base(dataPath), filepath.Ext(dataPath))
	if dataPath == "" || base == "" || base == "." {
		return "chart.png"
	}
	if kind == "" {
		return base + ".png"
	}
	return base + "_" + kind + ".png"
}

// TruncatePath shortens p to about n characters, keeping the file name.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
