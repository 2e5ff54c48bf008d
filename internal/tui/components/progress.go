package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeclock/internal/model"
	"github.com/theirongolddev/lifeclock/internal/tui/theme"
)

// ProgressBar renders a plain block progress bar with percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := min(max(int(pct*float64(width)), 0), width)

	var barColor lipgloss.Color
	switch {
	case pct > 1:
		barColor = t.Red
	case pct >= 0.8:
		barColor = t.AccentBright
	default:
		barColor = t.Accent
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForSeverity returns the theme color for a gauge band severity.
func ColorForSeverity(s model.Severity) string {
	return string(theme.Active.SeverityColor(s))
}

// ShareBar renders a labeled bar showing part of a whole, e.g. one
// activity's hours out of 24.
func ShareBar(label string, pct float64, color lipgloss.Color, value string, labelW, barWidth int) string {
	t := theme.Active
	pct = min(max(pct, 0), 1)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		valueStyle.Render(value)
}

// LifeGauge renders the age gauge: a banded scale line, a fill bar colored by
// the band the age falls in, and tick labels at each band edge.
func LifeGauge(age int, bands [4]model.Band, width int) string {
	t := theme.Active
	width = max(width, 20)

	span := bands[len(bands)-1].High
	if span <= 0 {
		return ""
	}
	pct := min(max(float64(age)/span, 0), 1)

	sev := bands[len(bands)-1].Severity
	for _, band := range bands {
		if band.Contains(float64(age)) {
			sev = band.Severity
			break
		}
	}

	// banded scale
	space := lipgloss.NewStyle().Background(t.Surface)
	var scale strings.Builder
	for i := 0; i < width; i++ {
		mid := (float64(i) + 0.5) / float64(width) * span
		s := bands[len(bands)-1].Severity
		for _, band := range bands {
			if band.Contains(mid) {
				s = band.Severity
				break
			}
		}
		scale.WriteString(lipgloss.NewStyle().Foreground(t.SeverityColor(s)).Background(t.Surface).Render("▔"))
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForSeverity(sev)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	// tick labels at band edges
	ticks := []rune(strings.Repeat(" ", width+4))
	place := func(v float64) {
		lbl := []rune(fmt.Sprintf("%.0f", v))
		pos := int(v / span * float64(width))
		pos = min(max(pos-len(lbl)/2, 0), len(ticks)-len(lbl))
		copy(ticks[pos:], lbl)
	}
	place(bands[0].Low)
	for _, band := range bands {
		place(band.High)
	}

	tickStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	ageStyle := lipgloss.NewStyle().Foreground(t.SeverityColor(sev)).Background(t.Surface).Bold(true)

	return bar.ViewAs(pct) + space.Render(" ") + ageStyle.Render(fmt.Sprintf("%d", age)) + "\n" +
		scale.String() + "\n" +
		tickStyle.Render(strings.TrimRight(string(ticks), " "))
}
