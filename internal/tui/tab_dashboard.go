package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeclock/internal/cli"
	"github.com/theirongolddev/lifeclock/internal/model"
	"github.com/theirongolddev/lifeclock/internal/tui/components"
	"github.com/theirongolddev/lifeclock/internal/tui/theme"
)

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	if a.stale {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Orange).Background(t.Background).
			Render("  ● Inputs changed since this result. Press u to update."))
		b.WriteString("\n")
	}

	switch {
	case a.rejection != nil:
		b.WriteString(a.renderRejection(cw))
	case a.dashboard != nil:
		b.WriteString(a.renderDashboard(a.dashboard, cw))
	default:
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		b.WriteString(components.ContentCard("Dashboard",
			muted.Render("Nothing computed yet. Fill in your day on the Inputs tab and press Enter."), cw))
	}
	return b.String()
}

func (a App) renderRejection(cw int) string {
	t := theme.Active
	r := a.rejection

	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := errStyle.Render(fmt.Sprintf("Total hours exceed 24! (%s)", cli.FormatTotal(r.TotalHours))) +
		"\n" + muted.Render("Please adjust your inputs.")
	return components.AccentCard(r.Error, body, t.Red, cw)
}

func (a App) renderDashboard(d *model.Dashboard, cw int) string {
	t := theme.Active
	s := d.Summary
	var b strings.Builder

	unallocColor := t.Green
	if s.UnallocatedHours == 0 {
		unallocColor = t.TextPrimary
	}
	sev := d.GaugeBands[len(d.GaugeBands)-1].Severity
	for _, band := range d.GaugeBands {
		if band.Contains(float64(s.Age)) {
			sev = band.Severity
			break
		}
	}

	cards := []components.Metric{
		{Label: "Age", Value: fmt.Sprintf("%d", s.Age),
			Delta: cli.FormatDelta(s.AgeDelta) + " vs midlife", Accent: t.SeverityColor(sev)},
		{Label: "Years Left", Value: fmt.Sprintf("%d", s.YearsLeft),
			Delta: cli.FormatNumber(int64(s.DaysLeft)) + " days"},
		{Label: "Unallocated", Value: cli.FormatHours(s.UnallocatedHours),
			Delta: "of 24h per day", Accent: unallocColor},
		{Label: "Life Progress", Value: cli.FormatPercent(s.LifeProgress),
			Delta: fmt.Sprintf("of %d years", d.Projection.LifespanYears)},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Life Gauge",
		components.LifeGauge(s.Age, d.GaugeBands, components.CardInnerWidth(cw)-6), cw))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(a.renderShareCard(d, cw))
		b.WriteString("\n")
		b.WriteString(a.renderDaysCard(d, cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			a.renderShareCard(d, halves[0]),
			a.renderDaysCard(d, halves[1]),
		}))
	}
	b.WriteString("\n")
	b.WriteString(a.renderDaysTable(d, cw))

	return b.String()
}

// renderShareCard shows how one day divides between activities. Hours left
// over appear as a dim "Unallocated" wedge.
func (a App) renderShareCard(d *model.Dashboard, w int) string {
	t := theme.Active

	values := make([]float64, 0, model.ActivityCount+1)
	colors := make([]lipgloss.Color, 0, model.ActivityCount+1)
	var legend []components.LegendEntry
	for _, act := range model.Activities {
		h := d.Projection.For(act).HoursPerDay
		values = append(values, h)
		colors = append(colors, a.palette.Color(act))
		legend = append(legend, components.LegendEntry{
			Label: act.String(), Value: cli.FormatHours(h), Share: h / model.HoursPerDay, Color: a.palette.Color(act),
		})
	}
	if u := d.Summary.UnallocatedHours; u > 0 {
		values = append(values, u)
		colors = append(colors, t.SurfaceBright)
		legend = append(legend, components.LegendEntry{
			Label: "Unallocated", Value: cli.FormatHours(u), Share: u / model.HoursPerDay, Color: t.TextDim,
		})
	}

	body := components.PieChart(values, colors, 5)
	if body == "" {
		body = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No hours allocated.")
	}
	body = lipgloss.JoinHorizontal(lipgloss.Center,
		body, lipgloss.NewStyle().Background(t.Surface).Render("   "), components.Legend(legend))

	return components.ContentCard("Share of a Day", body, w)
}

// renderDaysCard compares days already spent with days still ahead, per
// activity. The remaining series uses faded activity colors.
func (a App) renderDaysCard(d *model.Dashboard, w int) string {
	t := theme.Active

	lived := d.Projection.Series(func(x model.ActivityDays) float64 { return x.DaysLived })
	remaining := d.Projection.Series(func(x model.ActivityDays) float64 { return x.DaysRemaining })

	faded := a.palette.Faded(t.Surface)
	labels := make([]string, model.ActivityCount)
	for i, act := range model.Activities {
		labels[i] = act.String()
	}

	key := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
		Render("left bar: lived  right bar: remaining")

	chart := components.GroupedBarChart(
		[][]float64{lived, remaining},
		labels,
		[][]lipgloss.Color{a.palette.Colors(), faded.Colors()},
		components.CardInnerWidth(w), 12)

	return components.ContentCard("Days Spent vs Remaining", key+"\n"+chart, w)
}

func (a App) renderDaysTable(d *model.Dashboard, w int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-10s %8s %12s %8s %14s %8s",
		"Activity", "Per day", "Days lived", "Years", "Days remaining", "Years")))
	for _, act := range model.Activities {
		x := d.Projection.For(act)
		b.WriteString("\n")
		swatch := lipgloss.NewStyle().Foreground(a.palette.Color(act)).Background(t.Surface).Render("■ ")
		b.WriteString(swatch)
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-8s", act.String())))
		b.WriteString(valueStyle.Render(fmt.Sprintf(" %8s %12s %8s %14s %8s",
			cli.FormatHours(x.HoursPerDay),
			cli.FormatDays(x.DaysLived), cli.FormatYears(x.DaysLived),
			cli.FormatDays(x.DaysRemaining), cli.FormatYears(x.DaysRemaining))))
	}
	return components.ContentCard("Breakdown", b.String(), w)
}
