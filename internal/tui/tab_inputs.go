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

func (a App) renderInputsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	focusLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	unitStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	halves := components.LayoutRow(cw, 2)
	formW := cw
	if !a.isCompactLayout() {
		formW = halves[0]
	}
	innerW := components.CardInnerWidth(formW)

	const labelW = 10
	barW := max(innerW-labelW-2-a.inputs[0].Width-3-10, 8)

	al := a.allocation()

	row := func(i int, label, unit string) string {
		marker := space.Render("  ")
		ls := labelStyle
		if i == a.focus {
			marker = markerStyle.Render("▸ ")
			ls = focusLabelStyle
		}
		return marker + ls.Render(fmt.Sprintf("%-*s", labelW, label)) +
			a.inputs[i].View() + unitStyle.Render(" "+unit)
	}

	var form strings.Builder
	form.WriteString(row(fieldAge, "Age", "years"))
	form.WriteString("\n\n")

	for _, act := range model.Activities {
		form.WriteString(row(fieldFor(act), act.String(), "h"))
		form.WriteString("\n")
		h := al.Hours(act)
		form.WriteString(space.Render(strings.Repeat(" ", 2+labelW)))
		form.WriteString(components.ShareBar("", h/model.HoursPerDay, a.palette.Color(act),
			cli.FormatPercent(h/model.HoursPerDay), 0, barW))
		form.WriteString("\n")
	}

	form.WriteString("\n")
	form.WriteString(a.renderTotalBanner())
	if a.inputErr != nil {
		form.WriteString("\n")
		form.WriteString(lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).
			Render("✗ " + a.inputErr.Error()))
	}
	form.WriteString("\n\n")
	form.WriteString(unitStyle.Render("[Tab/↑↓] field  [Enter/u] update  [Esc] clear"))

	formCard := components.ContentCard("Your Day", form.String(), formW)

	values := make([]float64, model.ActivityCount)
	labels := make([]string, model.ActivityCount)
	for i, act := range model.Activities {
		values[i] = al.Hours(act)
		labels[i] = act.String()
	}

	if a.isCompactLayout() {
		return formCard
	}

	chartCard := components.ContentCard("Hours per Day",
		components.BarChart(values, labels, a.palette.Colors(), components.CardInnerWidth(halves[1]), 12),
		halves[1])

	return components.CardRow([]string{formCard, chartCard})
}

// renderTotalBanner is the live total line; it turns red above 24 hours.
func (a App) renderTotalBanner() string {
	t := theme.Active

	if a.live.Exceeds() {
		return lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).
			Render("⚠ Total: "+cli.FormatTotal(a.live.Total)) +
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render(" (exceeds 24 hours)")
	}

	rest := ""
	if u := a.live.Unallocated(); u > 0 {
		rest = fmt.Sprintf(" (%s unallocated)", cli.FormatHours(u))
	}
	return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("Total: ") +
		lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true).Render(cli.FormatTotal(a.live.Total)) +
		lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(rest)
}
