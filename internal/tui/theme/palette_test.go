package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeclock/internal/model"
)

func TestNewPalette_Overrides(t *testing.T) {
	p := NewPalette(map[string]string{
		"Sleep":   "#00ff00",
		"work":    "not-a-color",
		"hobbies": "#123456",
	})

	if got := p.Color(model.Sleep); got != lipgloss.Color("#00FF00") {
		t.Errorf("sleep = %q, want #00FF00", got)
	}
	if got := p.Color(model.Work); got != DefaultPalette[model.Work] {
		t.Errorf("malformed override applied: work = %q", got)
	}
	if got := p.Color(model.Phone); got != DefaultPalette[model.Phone] {
		t.Errorf("phone = %q, want default", got)
	}
}

func TestPalette_Faded(t *testing.T) {
	p := Palette{model.Sleep: "#FFFFFF", model.Work: "#000000", model.Phone: "3"}
	f := p.Faded("#000000")

	if f[model.Sleep] != "#7F7F7F" {
		t.Errorf("faded white = %q, want #7F7F7F", f[model.Sleep])
	}
	if f[model.Work] != "#000000" {
		t.Errorf("faded black = %q, want #000000", f[model.Work])
	}
	if f[model.Phone] != "3" {
		t.Errorf("ANSI color should pass through, got %q", f[model.Phone])
	}
}

func TestSeverityColor(t *testing.T) {
	th := FlexokiDark
	if th.SeverityColor(model.SeverityLow) != th.Green {
		t.Error("low severity should be green")
	}
	if th.SeverityColor(model.SeverityHigh) != th.Red {
		t.Error("high severity should be red")
	}
}

func TestByName_FallsBack(t *testing.T) {
	if ByName("nope").Name != FlexokiDark.Name {
		t.Error("unknown theme should fall back to flexoki-dark")
	}
	if !Known("tokyo-night") || Known("nope") {
		t.Error("Known() mismatch")
	}
}
