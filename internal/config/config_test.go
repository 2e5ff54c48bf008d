package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/lifeclock/internal/model"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"LIFECLOCK_AGE", "LIFECLOCK_THEME", "LIFECLOCK_ADDR", "LIFECLOCK_DEV_LOG"} {
		t.Setenv(key, "") // restores the original value on cleanup
		_ = os.Unsetenv(key)
	}
	return dir
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	useTempConfigDir(t)

	if Exists() {
		t.Fatal("Exists() = true before any save")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.DefaultAge != 25 {
		t.Fatalf("DefaultAge = %d, want 25", cfg.General.DefaultAge)
	}
	if got := cfg.General.Defaults.Hours(model.Sleep); got != 7 {
		t.Fatalf("default sleep = %.1f, want 7", got)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := useTempConfigDir(t)

	cfg := DefaultConfig()
	cfg.General.DefaultAge = 41
	cfg.General.Defaults = model.Allocation{
		Sleep: model.Hours(6.5),
		Work:  model.Hours(10),
	}
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Appearance.Palette = map[string]string{"sleep": "#112233"}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "lifeclock", "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.DefaultAge != 41 {
		t.Fatalf("DefaultAge = %d, want 41", got.General.DefaultAge)
	}
	if got.General.Defaults.Hours(model.Sleep) != 6.5 {
		t.Fatalf("sleep = %v, want 6.5", got.General.Defaults.Hours(model.Sleep))
	}
	if got.Appearance.Theme != "tokyo-night" {
		t.Fatalf("Theme = %q, want tokyo-night", got.Appearance.Theme)
	}
	if got.Appearance.Palette["sleep"] != "#112233" {
		t.Fatalf("palette sleep = %q, want #112233", got.Appearance.Palette["sleep"])
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	useTempConfigDir(t)

	cfg := DefaultConfig()
	cfg.General.DefaultAge = 30
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Setenv("LIFECLOCK_AGE", "64")
	t.Setenv("LIFECLOCK_ADDR", "0.0.0.0:9000")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.DefaultAge != 64 {
		t.Fatalf("DefaultAge = %d, want 64 from env", got.General.DefaultAge)
	}
	if got.Server.Addr != "0.0.0.0:9000" {
		t.Fatalf("Addr = %q, want env override", got.Server.Addr)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := useTempConfigDir(t)
	path := filepath.Join(dir, "lifeclock", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[general\ndefault_age = "), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}

func TestAge_Clamped(t *testing.T) {
	cfg := DefaultConfig()

	cfg.General.DefaultAge = 0
	if got := cfg.Age(); got != model.MinAge {
		t.Fatalf("Age() = %d, want %d", got, model.MinAge)
	}
	cfg.General.DefaultAge = 140
	if got := cfg.Age(); got != model.MaxAge {
		t.Fatalf("Age() = %d, want %d", got, model.MaxAge)
	}
}

func TestRuntimeDir_HonorsXDGCache(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	if got, want := RuntimeDir(), filepath.Join(dir, "lifeclock"); got != want {
		t.Fatalf("RuntimeDir() = %q, want %q", got, want)
	}
}

func TestLoad_ClearedDefaultsStayCleared(t *testing.T) {
	useTempConfigDir(t)

	cfg := DefaultConfig()
	cfg.General.Defaults = model.Allocation{Sleep: model.Hours(8)}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.Defaults.Hours(model.Sleep) != 8 {
		t.Fatalf("sleep = %v, want 8", got.General.Defaults.Hours(model.Sleep))
	}
	for _, a := range []model.Activity{model.Work, model.Phone, model.Exercise, model.Others} {
		if p := got.General.Defaults.Field(a); p != nil {
			t.Fatalf("cleared %s default came back as %v", a.Key(), *p)
		}
	}
}

func TestLoad_FileWithoutDefaultsKeepsBuiltins(t *testing.T) {
	dir := useTempConfigDir(t)
	path := filepath.Join(dir, "lifeclock", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[general]\ndefault_age = 33\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.DefaultAge != 33 {
		t.Fatalf("DefaultAge = %d, want 33", got.General.DefaultAge)
	}
	if got.General.Defaults.Hours(model.Work) != 8 {
		t.Fatalf("work = %v, want built-in 8", got.General.Defaults.Hours(model.Work))
	}
}

func TestLoad_EnvOverridesAppearanceAndServer(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv("LIFECLOCK_THEME", "terminal")
	t.Setenv("LIFECLOCK_DEV_LOG", "true")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Appearance.Theme != "terminal" {
		t.Fatalf("Theme = %q, want terminal", got.Appearance.Theme)
	}
	if !got.Server.DevLog {
		t.Fatal("DevLog = false, want env override")
	}
	// env walk leaves the default allocation alone
	if got.General.Defaults.Hours(model.Sleep) != 7 {
		t.Fatalf("sleep = %v, want 7", got.General.Defaults.Hours(model.Sleep))
	}
}

func TestLoad_BadEnvValue(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv("LIFECLOCK_AGE", "old")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a non-numeric LIFECLOCK_AGE")
	}
}

func TestLoadOrDefault_FallsBackOnError(t *testing.T) {
	dir := useTempConfigDir(t)
	path := filepath.Join(dir, "lifeclock", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[general]\ndefault_age = 61\n[appearance\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrDefault()
	if err == nil {
		t.Fatal("LoadOrDefault returned no error for malformed TOML")
	}
	if cfg.General.DefaultAge != 25 {
		t.Fatalf("DefaultAge = %d, want built-in 25", cfg.General.DefaultAge)
	}
}
