package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeclock/internal/model"
	"github.com/theirongolddev/lifeclock/internal/tui/theme"
)

func TestPieChart_Geometry(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := PieChart([]float64{7, 8, 3, 1, 5}, theme.DefaultPalette.Colors(), 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("rows = %d, want 9", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 17 {
			t.Errorf("row %d width %d, want 17", i, w)
		}
	}
}

func TestPieChart_EmptyTotal(t *testing.T) {
	if out := PieChart([]float64{0, 0}, nil, 4); out != "" {
		t.Errorf("zero total should render nothing, got %q", out)
	}
}

func TestSliceAt(t *testing.T) {
	bounds := []float64{0.25, 0.5, 1}
	cases := map[float64]int{0: 0, 0.24: 0, 0.25: 1, 0.49: 1, 0.75: 2, 0.9999: 2}
	for f, want := range cases {
		if got := sliceAt(bounds, f); got != want {
			t.Errorf("sliceAt(%v) = %d, want %d", f, got, want)
		}
	}
}

func TestTurnFraction_Clockwise(t *testing.T) {
	// right of center is a quarter turn, below is half
	if f := turnFraction(1, 0); f < 0.249 || f > 0.251 {
		t.Errorf("right = %v, want 0.25", f)
	}
	if f := turnFraction(0, 1); f < 0.499 || f > 0.501 {
		t.Errorf("below = %v, want 0.5", f)
	}
}

func TestGroupedBarChart_Labels(t *testing.T) {
	theme.SetActive("flexoki-dark")

	lived := []float64{2661, 3041, 1140, 380, 1901}
	left := []float64{5855, 6692, 2509, 836, 4182}
	out := GroupedBarChart([][]float64{lived, left},
		[]string{"Sleep", "Work", "Phone", "Exer", "Other"}, nil, 80, 8)

	lines := strings.Split(out, "\n")
	last := lines[len(lines)-1]
	for _, lbl := range []string{"Sleep", "Work", "Phone"} {
		if !strings.Contains(last, lbl) {
			t.Errorf("x-axis missing %q: %q", lbl, last)
		}
	}
}

func TestBarChart_NarrowFallsBackToSparkline(t *testing.T) {
	out := BarChart([]float64{1, 2, 3}, nil, nil, 10, 5)
	if strings.Contains(out, "\n") {
		t.Errorf("narrow chart should be a single sparkline line, got %q", out)
	}
}

func TestLifeGauge_Lines(t *testing.T) {
	theme.SetActive("flexoki-dark")

	bands := [4]model.Band{
		{Low: 0, High: 20, Severity: model.SeverityLow},
		{Low: 20, High: 40, Severity: model.SeverityModerate},
		{Low: 40, High: 60, Severity: model.SeverityElevated},
		{Low: 60, High: 80, HighInclusive: true, Severity: model.SeverityHigh},
	}
	out := LifeGauge(25, bands, 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("gauge lines = %d, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "25") {
		t.Errorf("bar line missing age: %q", lines[0])
	}
	for _, tick := range []string{"0", "20", "40", "60", "80"} {
		if !strings.Contains(lines[2], tick) {
			t.Errorf("tick line missing %s: %q", tick, lines[2])
		}
	}
}

func TestTabVisualWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	for _, tab := range Tabs {
		want := len(tab.Name) + 2
		if got := TabVisualWidth(tab, true); got != want {
			t.Errorf("%s active width = %d, want %d", tab.Name, got, want)
		}
	}
	if got := TabVisualWidth(Tabs[2], false); got != len("Settings")+5 {
		t.Errorf("inactive Settings width = %d, want %d", got, len("Settings")+5)
	}
}

func TestRenderStatusBar_ErrorTruncatedToWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	long := "config: parsing config: toml: line 3 (last key \"general\"): expected a top-level item to end with a newline"
	bar := RenderStatusBar(100, Status{Phase: "editing", Total: "24 hours", Error: long})
	if w := lipgloss.Width(bar); w != 100 {
		t.Errorf("status bar width %d, want 100", w)
	}
	if !strings.Contains(bar, "⚠ config: parsing") {
		t.Error("status bar does not show the config error")
	}
}

func TestRenderStatusBar_Width(t *testing.T) {
	theme.SetActive("flexoki-dark")
	bar := RenderStatusBar(100, Status{Phase: "computed", Stale: true, Total: "24 hours"})
	if w := lipgloss.Width(bar); w != 100 {
		t.Errorf("status bar width %d, want 100", w)
	}
}
