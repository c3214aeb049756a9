package uihelpers

import (
	"strings"
	"testing"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct {
		w, h         int
		wantW, wantH int
	}{
		{100, 100, 480, 320},
		{800, 0, 800, 533},
		{1000, 700, 1000, 700},
		{1600, 5000, 1600, 1200},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.w, c.h)
		if w != c.wantW || h != c.wantH {
			t.Fatalf("input %dx%d => %dx%d want %dx%d", c.w, c.h, w, h, c.wantW, c.wantH)
		}
	}
}

func TestComputeTableColumnWidths(t *testing.T) {
	if got := ComputeTableColumnWidths(800, 0); len(got) != 1 || got[0] != 56 {
		t.Fatalf("no columns: %v", got)
	}
	narrow := ComputeTableColumnWidths(400, 10)
	if len(narrow) != 11 || narrow[1] != 80 {
		t.Fatalf("narrow clamp: %v", narrow)
	}
	wide := ComputeTableColumnWidths(3000, 2)
	if wide[1] != 240 || wide[2] != 240 {
		t.Fatalf("wide clamp: %v", wide)
	}
	mid := ComputeTableColumnWidths(880, 4)
	if mid[1] != 200 {
		t.Fatalf("mid share: %v", mid)
	}
}

func TestPreviewRowCount(t *testing.T) {
	for in, want := range map[int]int{-1: 0, 0: 0, 10: 10, PreviewRows + 1: PreviewRows} {
		if got := PreviewRowCount(in); got != want {
			t.Fatalf("PreviewRowCount(%d) = %d want %d", in, got, want)
		}
	}
}

func TestDefaultExportName(t *testing.T) {
	cases := []struct{ path, kind, want string }{
		{"", "line", "chart.png"},
		{"/data/sales.csv", "bar", "sales_bar.png"},
		{"/data/sales.xlsx", "", "sales.png"},
	}
	for _, c := range cases {
		if got := DefaultExportName(c.path, c.kind); got != c.want {
			t.Fatalf("DefaultExportName(%q,%q) = %q want %q", c.path, c.kind, got, c.want)
		}
	}
}

func TestTruncatePath(t *testing.T) {
	short := "/tmp/a.csv"
	if got := TruncatePath(short, 60); got != short {
		t.Fatalf("short path changed: %q", got)
	}
	long := "/home/user/projects/analysis/quarterly/2024/regions/north/sales_by_month.csv"
	got := TruncatePath(long, 40)
	if !strings.HasSuffix(got, "sales_by_month.csv") || !strings.Contains(got, "...") {
		t.Fatalf("truncated path = %q", got)
	}
	if got := TruncatePath(long, 10); got != "...sales_by_month.csv" {
		t.Fatalf("tiny budget = %q", got)
	}
}
