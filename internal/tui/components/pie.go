package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeclock/internal/tui/theme"
)

// PieChart renders values as a filled disc of colored wedges, clockwise from
// twelve o'clock in input order. Terminal cells are roughly twice as tall as
// wide, so the grid is 2*radius+1 rows by 4*radius+1 columns.
func PieChart(values []float64, colors []lipgloss.Color, radius int) string {
	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total <= 0 || len(values) == 0 {
		return ""
	}
	radius = max(radius, 2)
	t := theme.Active

	// cumulative boundaries as fractions of a turn
	bounds := make([]float64, len(values))
	acc := 0.0
	for i, v := range values {
		if v > 0 {
			acc += v
		}
		bounds[i] = acc / total
	}

	blank := lipgloss.NewStyle().Background(t.Surface)
	styles := make([]lipgloss.Style, len(values))
	for i := range values {
		c := t.Accent
		if i < len(colors) {
			c = colors[i]
		}
		styles[i] = lipgloss.NewStyle().Foreground(c).Background(t.Surface)
	}

	r := float64(radius) + 0.5
	rows := 2*radius + 1
	cols := 4*radius + 1

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteString("\n")
		}
		for col := 0; col < cols; col++ {
			dx := float64(col-2*radius) / 2
			dy := float64(row - radius)
			if dx*dx+dy*dy > r*r {
				b.WriteString(blank.Render(" "))
				continue
			}
			b.WriteString(styles[sliceAt(bounds, turnFraction(dx, dy))].Render("█"))
		}
	}
	return b.String()
}

// turnFraction returns the clockwise angle from twelve o'clock as a fraction
// of a full turn in [0, 1).
func turnFraction(dx, dy float64) float64 {
	a := math.Atan2(dx, -dy)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a / (2 * math.Pi)
}

func sliceAt(bounds []float64, f float64) int {
	for i, hi := range bounds {
		if f < hi {
			return i
		}
	}
	return len(bounds) - 1
}

// LegendEntry is one row of a chart legend.
type LegendEntry struct {
	Label string
	Value string
	Share float64 // 0-1
	Color lipgloss.Color
}

// Legend renders aligned legend rows: swatch, label, value and share.
func Legend(entries []LegendEntry) string {
	t := theme.Active

	labelW := 0
	valueW := 0
	for _, e := range entries {
		labelW = max(labelW, lipgloss.Width(e.Label))
		valueW = max(valueW, lipgloss.Width(e.Value))
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	shareStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		swatch := lipgloss.NewStyle().Foreground(e.Color).Background(t.Surface).Render("■")
		lines = append(lines, swatch+
			space.Render(" ")+
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, e.Label))+
			space.Render("  ")+
			valueStyle.Render(fmt.Sprintf("%*s", valueW, e.Value))+
			space.Render("  ")+
			shareStyle.Render(fmt.Sprintf("%5.1f%%", e.Share*100)))
	}
	return strings.Join(lines, "\n")
}
