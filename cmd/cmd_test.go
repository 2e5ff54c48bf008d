package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/theirongolddev/lifeclock/internal/config"
	"github.com/theirongolddev/lifeclock/internal/model"
)

func newInputCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	registerInputFlags(c.Flags())
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestInputsFromFlags_ConfigFillsUnsetFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	c := newInputCommand(t, "--work", "10", "--age", "40")

	al, age := inputsFromFlags(c, cfg)

	assert.Equal(t, 40, age)
	assert.Equal(t, 10.0, al.Hours(model.Work))
	assert.Equal(t, 7.0, al.Hours(model.Sleep))
	assert.Equal(t, 5.0, al.Hours(model.Others))

	// the config defaults are not mutated through the clone
	assert.Equal(t, 8.0, cfg.General.Defaults.Hours(model.Work))
}

func TestInputsFromFlags_ExplicitZeroWins(t *testing.T) {
	c := newInputCommand(t, "--phone", "0")

	al, age := inputsFromFlags(c, config.DefaultConfig())

	require.NotNil(t, al.Phone)
	assert.Zero(t, *al.Phone)
	assert.Equal(t, 25, age)
}

func TestSeedFromFlags_OnlyPassedValues(t *testing.T) {
	c := newInputCommand(t, "--sleep", "9")

	al, age := seedFromFlags(c)

	assert.Nil(t, age)
	assert.Equal(t, 9.0, al.Hours(model.Sleep))
	assert.Nil(t, al.Work)
}

func TestCheckInputs(t *testing.T) {
	assert.NoError(t, checkInputs(model.NewAllocation(10, 10, 5, 0, 0), 30))
	assert.ErrorContains(t, checkInputs(model.Allocation{}, 0), "age")
	assert.ErrorContains(t, checkInputs(model.Allocation{Work: model.Hours(-2)}, 30), "work")
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"serve", "--detach", "--addr", ":9000", "--detach=true"})
	assert.Equal(t, []string{"serve", "--addr", ":9000"}, got)
}

func TestServeAddr(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Addr = "0.0.0.0:7000"

	flagServeAddr = ""
	assert.Equal(t, "0.0.0.0:7000", serveAddr(cfg))

	cfg.Server.Addr = ""
	assert.Equal(t, "127.0.0.1:8790", serveAddr(cfg))

	flagServeAddr = ":9100"
	t.Cleanup(func() { flagServeAddr = "" })
	assert.Equal(t, ":9100", serveAddr(cfg))
}

func TestRuntimeFiles_WriteRead(t *testing.T) {
	files := runtimeFiles{pid: filepath.Join(t.TempDir(), "run", "lifeclockd.pid")}

	st := serverRuntimeState{PID: 4242, Addr: "127.0.0.1:8790", StartedAt: time.Unix(1700000000, 0).UTC()}
	require.NoError(t, files.write(st))

	pid, err := files.readPID()
	require.NoError(t, err)
	assert.Equal(t, 4242, pid)

	got, err := files.readState()
	require.NoError(t, err)
	assert.Equal(t, st.Addr, got.Addr)
	assert.True(t, st.StartedAt.Equal(got.StartedAt))

	files.remove()
	assert.NoFileExists(t, files.pid)
	assert.NoFileExists(t, files.state())
}

func TestRuntimeFiles_ClaimClearsStalePID(t *testing.T) {
	files := runtimeFiles{pid: filepath.Join(t.TempDir(), "lifeclockd.pid")}
	assert.NoError(t, files.claim())

	// above the kernel's pid_max ceiling, so nothing owns it
	require.NoError(t, files.write(serverRuntimeState{PID: 1<<22 + 1}))
	require.NoError(t, files.claim())
	assert.NoFileExists(t, files.pid)
	assert.NoFileExists(t, files.state())
}

func TestRuntimeFiles_ClaimRefusesLiveProcess(t *testing.T) {
	files := runtimeFiles{pid: filepath.Join(t.TempDir(), "lifeclockd.pid")}
	require.NoError(t, files.write(serverRuntimeState{PID: os.Getpid()}))

	assert.ErrorContains(t, files.claim(), "already running")
}

func TestRuntimeFiles_InvalidPID(t *testing.T) {
	files := runtimeFiles{pid: filepath.Join(t.TempDir(), "lifeclockd.pid")}
	require.NoError(t, os.WriteFile(files.pid, []byte("nope\n"), 0o600))

	_, err := files.readPID()
	assert.ErrorContains(t, err, "invalid pid")
}

func TestNewLogger(t *testing.T) {
	for _, dev := range []bool{false, true} {
		logger, err := newLogger(dev)
		require.NoError(t, err)
		assert.Equal(t, dev, logger.Core().Enabled(zap.DebugLevel), "dev=%v", dev)
	}
}

func TestLoadConfig_FallsBackToDefaultsOnError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "lifeclock", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[general]\ndefault_age = 61\n[server\n"), 0o600))

	cfg := loadConfig()

	assert.Equal(t, config.DefaultConfig().General.DefaultAge, cfg.General.DefaultAge)
	assert.Equal(t, config.DefaultConfig().Server.Addr, cfg.Server.Addr)
}
