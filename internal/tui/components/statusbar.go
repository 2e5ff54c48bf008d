package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeclock/internal/tui/theme"
)

// Status is what the status bar reports about the dashboard.
type Status struct {
	Phase      string // "editing", "computed" or "rejected"
	Stale      bool   // inputs changed since the last update
	Total      string
	OverBudget bool
	Error      string // shown in red after the key hints, truncated to fit
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, st Status) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	key := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	left := base.Render(" ") + key.Render("[u]") + base.Render("pdate  ") +
		key.Render("[?]") + base.Render("help  ") +
		key.Render("[q]") + base.Render("uit")

	phaseColor := t.TextMuted
	switch st.Phase {
	case "computed":
		phaseColor = t.Green
	case "rejected":
		phaseColor = t.Red
	}
	phase := lipgloss.NewStyle().Foreground(phaseColor).Background(t.Surface).Bold(true)

	right := ""
	if st.Total != "" {
		totalStyle := base
		if st.OverBudget {
			totalStyle = lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
		}
		right += totalStyle.Render(st.Total) + base.Render("  ")
	}
	if st.Stale {
		right += lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render("● stale") + base.Render("  ")
	}
	if st.Phase != "" {
		right += phase.Render(st.Phase) + base.Render(" ")
	}

	if st.Error != "" {
		room := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
		if room > 1 {
			errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).MaxWidth(room)
			left += base.Render("  ") + errStyle.Render("⚠ "+st.Error)
		}
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + base.Render(strings.Repeat(" ", padding)) + right
}
