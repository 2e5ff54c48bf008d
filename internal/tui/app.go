// Package tui provides the interactive Bubble Tea dashboard for lifeclock.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeclock/internal/cli"
	"github.com/theirongolddev/lifeclock/internal/config"
	"github.com/theirongolddev/lifeclock/internal/model"
	"github.com/theirongolddev/lifeclock/internal/pipeline"
	"github.com/theirongolddev/lifeclock/internal/tui/components"
	"github.com/theirongolddev/lifeclock/internal/tui/theme"
)

// ConfigLoadedMsg is sent when the startup config read finishes.
type ConfigLoadedMsg struct {
	Config   config.Config
	FirstRun bool
	Err      error
}

// phase is the interaction state of the session.
type phase int

const (
	phaseEditing phase = iota
	phaseComputed
	phaseRejected
)

func (p phase) String() string {
	switch p {
	case phaseComputed:
		return "computed"
	case phaseRejected:
		return "rejected"
	default:
		return "editing"
	}
}

const (
	tabInputs = iota
	tabDashboard
	tabSettings
)

// Input field order: age first, then one per activity in display order.
const (
	fieldAge   = 0
	fieldCount = 1 + model.ActivityCount
)

func fieldFor(a model.Activity) int { return 1 + int(a) }

// Seed holds values given on the command line. Nil fields start from the
// configured defaults.
type Seed struct {
	Age        *int
	Allocation model.Allocation
}

// App is the root Bubble Tea model.
type App struct {
	cfg     config.Config
	cfgErr  error // startup load failure, shown until the config is saved
	loaded  bool
	seed    Seed
	palette theme.Palette

	// Input form
	inputs [fieldCount]textinput.Model
	focus  int

	// live is recomputed on every edit; dashboard and rejection only on trigger.
	live      pipeline.Validation
	phase     phase
	dashboard *model.Dashboard
	rejection *model.Rejection
	inputErr  error
	stale     bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160

	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(seed Seed) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		seed:    seed,
		palette: theme.DefaultPalette,
		spinner: sp,
	}
	for i := range a.inputs {
		a.inputs[i] = newNumberInput()
	}
	a.inputs[fieldAge].CharLimit = 3
	a.inputs[fieldAge].Placeholder = "25"
	for _, act := range model.Activities {
		a.inputs[fieldFor(act)].Placeholder = "0"
	}
	return a
}

func newNumberInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 6
	ti.Width = 7
	return ti
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadConfigCmd(),
		a.spinner.Tick,
	)
}

func loadConfigCmd() tea.Cmd {
	return func() tea.Msg {
		firstRun := !config.Exists()
		cfg, err := config.LoadOrDefault()
		return ConfigLoadedMsg{Config: cfg, FirstRun: firstRun, Err: err}
	}
}

// applyConfig seeds the form from config defaults and command-line values.
func (a *App) applyConfig(cfg config.Config) {
	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	a.palette = theme.NewPalette(cfg.Appearance.Palette)

	age := cfg.Age()
	if a.seed.Age != nil {
		age = *a.seed.Age
	}
	a.inputs[fieldAge].SetValue(strconv.Itoa(age))

	for _, act := range model.Activities {
		v := a.seed.Allocation.Field(act)
		if v == nil {
			v = cfg.General.Defaults.Field(act)
		}
		a.inputs[fieldFor(act)].SetValue(formatInput(v))
	}

	a.styleInputs()
	a.setFocus(fieldAge)
	a.live = pipeline.Validate(a.allocation())
}

func formatInput(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// styleInputs applies the active theme to the text inputs.
func (a *App) styleInputs() {
	t := theme.Active
	for i := range a.inputs {
		a.inputs[i].TextStyle = lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright)
		a.inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.SurfaceBright)
		a.inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(t.AccentBright)
	}
	a.spinner.Style = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
}

func (a *App) setFocus(i int) {
	a.focus = (i + fieldCount) % fieldCount
	for j := range a.inputs {
		if j == a.focus {
			a.inputs[j].Focus()
		} else {
			a.inputs[j].Blur()
		}
	}
}

// allocation reads the activity fields. Blank or unparseable text is absent.
func (a App) allocation() model.Allocation {
	var al model.Allocation
	for _, act := range model.Activities {
		al.Set(act, pipeline.ParseHours(a.inputs[fieldFor(act)].Value()))
	}
	return al
}

// edited runs after any change to a field: refresh the live total and drop
// back to Editing. The last result stays on screen until the next trigger.
func (a *App) edited() {
	a.live = pipeline.Validate(a.allocation())
	a.phase = phaseEditing
	a.inputErr = nil
	if a.dashboard != nil || a.rejection != nil {
		a.stale = true
	}
}

// trigger validates and projects the current inputs, replacing whatever
// result was shown before.
func (a *App) trigger() {
	al := a.allocation()
	a.live = pipeline.Validate(al)

	age, err := pipeline.ParseAge(a.inputs[fieldAge].Value())
	if err == nil {
		var d *model.Dashboard
		d, err = pipeline.Compute(al, age)
		if err == nil {
			a.dashboard = d
			a.rejection = nil
			a.inputErr = nil
			a.stale = false
			a.phase = phaseComputed
			a.activeTab = tabDashboard
			return
		}
	}

	if rej, ok := pipeline.AsRejection(err); ok {
		a.dashboard = nil
		a.rejection = &rej
		a.inputErr = nil
		a.stale = false
		a.phase = phaseRejected
		a.activeTab = tabDashboard
		return
	}

	// Bad input: nothing is computed and the previous result is untouched.
	a.inputErr = err
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case ConfigLoadedMsg:
		a.applyConfig(msg.Config)
		a.cfgErr = msg.Err
		a.loaded = true

		if msg.FirstRun {
			a.needSetup = true
			a.setupForm = newSetupForm(msg.Config, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, textinput.Blink

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// cursor blink and friends
	if a.loaded && a.activeTab == tabInputs {
		var cmd tea.Cmd
		a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
		return a, cmd
	}
	if a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Settings text input intercepts all keys while editing
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "enter", "u":
		if a.activeTab == tabSettings && key == "enter" {
			return a.settingsActivate()
		}
		a.trigger()
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	switch a.activeTab {
	case tabInputs:
		return a.updateInputs(msg)
	case tabSettings:
		switch key {
		case "j", "down":
			a.settings.cursor = min(a.settings.cursor+1, settingsFieldCount-1)
			return a, nil
		case "k", "up":
			a.settings.cursor = max(a.settings.cursor-1, 0)
			return a, nil
		}
	}

	switch key {
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	}
	return a, nil
}

// updateInputs handles keys on the Inputs tab. Letters are shortcuts, so only
// digits, the decimal point and editing keys reach the focused field.
func (a App) updateInputs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down", "j":
		a.setFocus(a.focus + 1)
		return a, nil
	case "shift+tab", "up", "k":
		a.setFocus(a.focus - 1)
		return a, nil
	case "esc":
		if a.inputs[a.focus].Value() != "" {
			a.inputs[a.focus].SetValue("")
			a.edited()
		}
		return a, nil
	}

	if !numericKey(msg) {
		return a, nil
	}

	before := a.inputs[a.focus].Value()
	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	if a.inputs[a.focus].Value() != before {
		a.edited()
	}
	return a, cmd
}

func numericKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlA, tea.KeyCtrlE, tea.KeyCtrlK, tea.KeyCtrlU, tea.KeyCtrlW:
		return true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != '.' {
				return false
			}
		}
		return true
	}
	return false
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		_ = a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, textinput.Blink
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, textinput.Blink
	}

	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  lifeclock needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◷ lifeclock"))
	b.WriteString(subtitleStyle.Render(" · where the hours go"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading preferences..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◷ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"i d x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"Tab ↑ ↓", "Move between fields"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"0-9 .", "Edit hours"},
			{"Esc", "Clear field"},
			{"Enter u", "Update dashboard"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	statusBar := components.RenderStatusBar(w, components.Status{
		Phase:      a.phase.String(),
		Stale:      a.stale,
		Total:      "Total " + cli.FormatTotal(a.live.Total),
		OverBudget: a.live.Exceeds(),
		Error:      a.configNotice(),
	})

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabInputs:
		content = a.renderInputsTab(cw)
	case tabDashboard:
		content = a.renderDashboardTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) configNotice() string {
	if a.cfgErr == nil {
		return ""
	}
	return "config: " + strings.ReplaceAll(a.cfgErr.Error(), "\n", " ") + " (using defaults)"
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
