package theme

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeclock/internal/model"
)

// Palette assigns a color to each activity. It is passed explicitly to the
// renderers that need it; the computation core never sees it.
type Palette [model.ActivityCount]lipgloss.Color

// DefaultPalette matches the original dashboard's activity colors.
var DefaultPalette = Palette{
	model.Sleep:    lipgloss.Color("#8E44AD"),
	model.Work:     lipgloss.Color("#3498DB"),
	model.Phone:    lipgloss.Color("#E74C3C"),
	model.Exercise: lipgloss.Color("#2ECC71"),
	model.Others:   lipgloss.Color("#F39C12"),
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// NewPalette starts from DefaultPalette and applies overrides keyed by
// activity key. Unknown keys and malformed colors are ignored.
func NewPalette(overrides map[string]string) Palette {
	p := DefaultPalette
	for key, value := range overrides {
		a, ok := model.ParseActivity(strings.ToLower(strings.TrimSpace(key)))
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if !hexColor.MatchString(value) {
			continue
		}
		p[a] = lipgloss.Color(strings.ToUpper(value))
	}
	return p
}

// Color returns the color for an activity.
func (p Palette) Color(a model.Activity) lipgloss.Color {
	return p[a]
}

// Colors returns the palette as a slice in display order.
func (p Palette) Colors() []lipgloss.Color {
	out := make([]lipgloss.Color, len(p))
	copy(out, p[:])
	return out
}

// Faded returns a dimmed variant of each activity color, used for the
// "days remaining" series. Blends each channel halfway toward bg.
func (p Palette) Faded(bg lipgloss.Color) Palette {
	var out Palette
	for i, c := range p {
		out[i] = blend(c, bg)
	}
	return out
}

func blend(fg, bg lipgloss.Color) lipgloss.Color {
	f, okF := parseHex(string(fg))
	b, okB := parseHex(string(bg))
	if !okF || !okB {
		return fg
	}
	var mixed [3]uint8
	for i := range mixed {
		mixed[i] = uint8((int(f[i]) + int(b[i])) / 2)
	}
	return lipgloss.Color(formatHex(mixed))
}

func parseHex(s string) ([3]uint8, bool) {
	var rgb [3]uint8
	if !hexColor.MatchString(s) {
		return rgb, false
	}
	for i := range rgb {
		rgb[i] = hexByte(s[1+2*i])<<4 | hexByte(s[2+2*i])
	}
	return rgb, true
}

func hexByte(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func formatHex(rgb [3]uint8) string {
	const digits = "0123456789ABCDEF"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range rgb {
		buf[1+2*i] = digits[v>>4]
		buf[2+2*i] = digits[v&0x0F]
	}
	return string(buf)
}
