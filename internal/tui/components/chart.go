package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeclock/internal/tui/theme"
)

var eighthBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := eighthBlocks[1:]

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// chartAxis is the shared Y scale for BarChart and GroupedBarChart.
type chartAxis struct {
	ceiling    float64
	height     int
	labelWidth int
	tickLabels map[int]string
}

func newChartAxis(maxVal float64, height int) chartAxis {
	if maxVal <= 0 {
		maxVal = 1
	}

	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)

	rowsPerTick := max(height/numIntervals, 2)

	ax := chartAxis{
		ceiling:    ceiling,
		height:     rowsPerTick * numIntervals,
		labelWidth: max(len(formatChartLabel(ceiling))+1, 4),
		tickLabels: make(map[int]string, numIntervals),
	}
	for i := 1; i <= numIntervals; i++ {
		ax.tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}
	return ax
}

// cell returns the block glyph for value v in the given row (1 = bottom).
func (ax chartAxis) cell(v float64, row int) string {
	rowTop := ax.ceiling * float64(row) / float64(ax.height)
	rowBottom := ax.ceiling * float64(row-1) / float64(ax.height)
	switch {
	case v >= rowTop:
		return "█"
	case v > rowBottom:
		frac := (v - rowBottom) / (rowTop - rowBottom)
		idx := min(max(int(frac*8), 1), 8)
		return string(eighthBlocks[idx])
	default:
		return " "
	}
}

// BarChart renders a single-series bar chart. colors may hold one color for
// all bars or one color per bar.
func BarChart(values []float64, labels []string, colors []lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if len(colors) == 0 {
		colors = []lipgloss.Color{theme.Active.Accent}
	}
	if width < 15 || height < 3 {
		return Sparkline(values, colors[0])
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	ax := newChartAxis(maxVal, height)

	chartW := max(width-ax.labelWidth-1, 5)
	n := len(values)

	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	if barW < 2 && n > 1 {
		maxN := max((chartW+1)/3, 2)
		sampled := make([]float64, maxN)
		var sampledLabels []string
		if len(labels) == n {
			sampledLabels = make([]string, maxN)
		}
		for i := range sampled {
			srcIdx := i * (n - 1) / (maxN - 1)
			sampled[i] = values[srcIdx]
			if sampledLabels != nil {
				sampledLabels[i] = labels[srcIdx]
			}
		}
		values = sampled
		labels = sampledLabels
		n = maxN
		barW = 2
	}
	barW = min(barW, 6)
	axisLen := n*barW + max(0, n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := ax.height; row >= 1; row-- {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", ax.labelWidth, ax.tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blankStyle.Render(strings.Repeat(" ", gap)))
			}
			barStyle := lipgloss.NewStyle().Foreground(colors[i%len(colors)]).Background(t.Surface)
			b.WriteString(barStyle.Render(strings.Repeat(ax.cell(v, row), barW)))
		}
		b.WriteString("\n")
	}

	positions := make([]int, n)
	for i := range positions {
		positions[i] = i * (barW + gap)
	}
	writeXAxis(&b, ax.labelWidth, axisLen, labels, positions)

	return b.String()
}

// GroupedBarChart renders several series side by side for each label.
// series[s][i] is the value of series s in group i; colors[s][i] colors it.
// A nil colors[s] falls back to the theme accent.
func GroupedBarChart(series [][]float64, labels []string, colors [][]lipgloss.Color, width, height int) string {
	if len(series) == 0 || len(series[0]) == 0 {
		return ""
	}
	t := theme.Active

	groups := len(series[0])
	k := len(series)

	maxVal := 0.0
	for _, s := range series {
		for _, v := range s {
			maxVal = max(maxVal, v)
		}
	}
	ax := newChartAxis(maxVal, max(height, 3))

	chartW := max(width-ax.labelWidth-1, 5)
	groupGap := 2
	barW := (chartW - (groups-1)*groupGap) / (groups * k)
	barW = min(max(barW, 1), 4)
	groupW := barW * k
	axisLen := groups*groupW + (groups-1)*groupGap

	colorAt := func(s, i int) lipgloss.Color {
		if s < len(colors) && i < len(colors[s]) && colors[s][i] != "" {
			return colors[s][i]
		}
		return t.Accent
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := ax.height; row >= 1; row-- {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", ax.labelWidth, ax.tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i := 0; i < groups; i++ {
			if i > 0 {
				b.WriteString(blankStyle.Render(strings.Repeat(" ", groupGap)))
			}
			for s := 0; s < k; s++ {
				v := 0.0
				if i < len(series[s]) {
					v = series[s][i]
				}
				style := lipgloss.NewStyle().Foreground(colorAt(s, i)).Background(t.Surface)
				b.WriteString(style.Render(strings.Repeat(ax.cell(v, row), barW)))
			}
		}
		b.WriteString("\n")
	}

	positions := make([]int, groups)
	for i := range positions {
		positions[i] = i * (groupW + groupGap)
	}
	writeXAxis(&b, ax.labelWidth, axisLen, labels, positions)

	return b.String()
}

// writeXAxis draws the baseline and, when labels line up with positions,
// places each label at its bar's column, skipping labels that would overlap.
func writeXAxis(b *strings.Builder, labelW, axisLen int, labels []string, positions []int) {
	t := theme.Active
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) != len(positions) || len(labels) == 0 {
		return
	}

	buf := []rune(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, pos := range positions {
		if pos <= lastEnd || pos >= axisLen {
			continue
		}
		lbl := []rune(labels[i])
		end := pos + len(lbl)
		if end > axisLen {
			end = axisLen
			if end-pos < 3 {
				continue
			}
			lbl = lbl[:end-pos]
		}
		copy(buf[pos:end], lbl)
		lastEnd = end
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", labelW+1)))
	b.WriteString(axisStyle.Render(strings.TrimRight(string(buf), " ")))
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
