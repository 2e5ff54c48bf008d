package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/lifeclock/internal/config"
	"github.com/theirongolddev/lifeclock/internal/model"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var m tea.Model = NewApp(Seed{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 140, Height: 60})
	m, _ = m.Update(ConfigLoadedMsg{Config: config.DefaultConfig()})
	return m.(App)
}

func send(t *testing.T, a App, msgs ...tea.Msg) App {
	t.Helper()
	var m tea.Model = a
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m.(App)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab       = tea.KeyMsg{Type: tea.KeyTab}
	keyEnd       = tea.KeyMsg{Type: tea.KeyEnd}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

func TestApp_SeedsFromConfig(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, "25", a.inputs[fieldAge].Value())
	assert.Equal(t, "7", a.inputs[fieldFor(model.Sleep)].Value())
	assert.Equal(t, phaseEditing, a.phase)
	assert.InDelta(t, 24.0, a.live.Total, 1e-9)
	assert.Nil(t, a.dashboard)
}

func TestApp_SeedOverridesConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	age := 40

	var m tea.Model = NewApp(Seed{Age: &age, Allocation: model.Allocation{Work: model.Hours(10)}})
	m, _ = m.Update(ConfigLoadedMsg{Config: config.DefaultConfig()})
	a := m.(App)

	assert.Equal(t, "40", a.inputs[fieldAge].Value())
	assert.Equal(t, "10", a.inputs[fieldFor(model.Work)].Value())
	assert.Equal(t, "7", a.inputs[fieldFor(model.Sleep)].Value())
}

func TestApp_TriggerComputes(t *testing.T) {
	a := send(t, newTestApp(t), keyEnter)

	require.NotNil(t, a.dashboard)
	assert.Equal(t, phaseComputed, a.phase)
	assert.Equal(t, tabDashboard, a.activeTab)
	assert.False(t, a.stale)

	sleep := a.dashboard.Projection.For(model.Sleep)
	assert.InDelta(t, 2661.458333, sleep.DaysLived, 1e-6)
	assert.InDelta(t, 5855.208333, sleep.DaysRemaining, 1e-6)
}

func TestApp_EditAfterComputeKeepsResult(t *testing.T) {
	a := send(t, newTestApp(t), keyEnter)
	require.NotNil(t, a.dashboard)
	shown := a.dashboard
	sleepBefore := shown.Projection.For(model.Sleep)

	// back to Inputs, move to sleep, replace 7 with 9
	a = send(t, a, runes("i"), keyTab, keyEnd, keyBackspace, runes("9"))

	assert.Equal(t, "9", a.inputs[fieldFor(model.Sleep)].Value())
	assert.Equal(t, phaseEditing, a.phase)
	assert.True(t, a.stale)
	assert.InDelta(t, 26.0, a.live.Total, 1e-9)
	assert.True(t, a.live.Exceeds())

	assert.Same(t, shown, a.dashboard)
	assert.Equal(t, sleepBefore, a.dashboard.Projection.For(model.Sleep))
}

func TestApp_InfeasibleTriggerRejects(t *testing.T) {
	a := send(t, newTestApp(t), keyEnter)
	a = send(t, a, runes("i"), keyTab, keyEnd, keyBackspace, runes("9"), runes("u"))

	assert.Equal(t, phaseRejected, a.phase)
	assert.Nil(t, a.dashboard)
	require.NotNil(t, a.rejection)
	assert.InDelta(t, 26.0, a.rejection.TotalHours, 1e-9)
	assert.Equal(t, model.ErrorCodeExceeds24H, a.rejection.Error)
	assert.False(t, a.stale)

	view := a.View()
	assert.Contains(t, view, "Total hours exceed 24!")
}

func TestApp_RecoversAfterRejection(t *testing.T) {
	a := send(t, newTestApp(t), runes("i"), keyTab, keyEnd, keyBackspace, runes("9"), keyEnter)
	require.Equal(t, phaseRejected, a.phase)

	a = send(t, a, runes("i"), keyEnd, keyBackspace, runes("5"), keyEnter)

	assert.Equal(t, phaseComputed, a.phase)
	assert.Nil(t, a.rejection)
	require.NotNil(t, a.dashboard)
	assert.InDelta(t, 22.0, a.dashboard.TotalHours, 1e-9)
	assert.InDelta(t, 2.0, a.dashboard.Summary.UnallocatedHours, 1e-9)
}

func TestApp_LettersDoNotReachInputs(t *testing.T) {
	a := send(t, newTestApp(t), keyTab, keyEnd, runes("a"), runes("-"))
	assert.Equal(t, "7", a.inputs[fieldFor(model.Sleep)].Value())
}

func TestApp_BadAgeKeepsPreviousResult(t *testing.T) {
	a := send(t, newTestApp(t), keyEnter)
	shown := a.dashboard

	// clear age with esc, then trigger
	a = send(t, a, runes("i"), tea.KeyMsg{Type: tea.KeyEsc}, keyEnter)

	require.Error(t, a.inputErr)
	assert.Contains(t, a.inputErr.Error(), "age")
	assert.Same(t, shown, a.dashboard)
	assert.Equal(t, phaseEditing, a.phase)
}

func TestApp_ViewRendersEveryTab(t *testing.T) {
	a := send(t, newTestApp(t), keyEnter)

	for _, key := range []string{"i", "d", "x"} {
		a = send(t, a, runes(key))
		view := a.View()
		lines := strings.Split(view, "\n")
		assert.Len(t, lines, 60, "tab %s", key)
	}
}

func TestApp_NarrowTerminal(t *testing.T) {
	a := send(t, newTestApp(t), tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Contains(t, a.View(), "too narrow")
}

func TestLoadConfigCmd_ReadsSavedConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"LIFECLOCK_AGE", "LIFECLOCK_THEME"} {
		t.Setenv(key, "") // restored on cleanup
		_ = os.Unsetenv(key)
	}

	cfg := config.DefaultConfig()
	cfg.General.DefaultAge = 41
	cfg.General.Defaults = model.Allocation{Sleep: model.Hours(9)}
	cfg.Appearance.Theme = "tokyo-night"
	require.NoError(t, config.Save(cfg))

	msg, ok := loadConfigCmd()().(ConfigLoadedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.False(t, msg.FirstRun)

	var m tea.Model = NewApp(Seed{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 140, Height: 60})
	m, _ = m.Update(msg)
	a := m.(App)

	assert.Equal(t, "41", a.inputs[fieldAge].Value())
	assert.Equal(t, "9", a.inputs[fieldFor(model.Sleep)].Value())
	assert.Equal(t, "", a.inputs[fieldFor(model.Work)].Value())
	assert.Equal(t, "tokyo-night", a.cfg.Appearance.Theme)
	assert.NoError(t, a.cfgErr)
}

func TestLoadConfigCmd_ErrorShownInStatusBar(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lifeclock"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lifeclock", "config.toml"),
		[]byte("[general]\ndefault_age = 61\n[appearance\n"), 0o600))

	msg := loadConfigCmd()().(ConfigLoadedMsg)
	require.Error(t, msg.Err)

	var m tea.Model = NewApp(Seed{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 140, Height: 60})
	m, _ = m.Update(msg)
	a := m.(App)

	assert.Equal(t, "25", a.inputs[fieldAge].Value(), "falls back to defaults")
	assert.Contains(t, a.View(), "⚠ config:")

	// a successful save clears the notice
	a = send(t, a, runes("x"))
	a.saveInputsAsDefaults()
	require.NoError(t, a.settings.saveErr)
	assert.NotContains(t, a.View(), "⚠ config:")
}
