package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// An empty directory has no config.toml; defaults apply.
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.RiskTier != "MEDIUM" {
		t.Errorf("risk tier = %s, want MEDIUM", cfg.Bot.RiskTier)
	}
	if cfg.Bot.InitialCapital != 1000 {
		t.Errorf("initial capital = %v, want 1000", cfg.Bot.InitialCapital)
	}
	if !cfg.Bot.UsePivot || !cfg.Bot.UseMomentum || !cfg.Bot.UseScreener {
		t.Error("signal toggles should default to enabled")
	}
	if cfg.Store.Path == "" {
		t.Error("store path should have a default")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[bot]
name = "aggressive-weekly"
risk_tier = "HIGH"
initial_capital = 25000.0
use_screener = false

[store]
path = "/tmp/hermes-test.db"

[log]
level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Name != "aggressive-weekly" {
		t.Errorf("name = %s", cfg.Bot.Name)
	}
	if cfg.Bot.RiskTier != "HIGH" {
		t.Errorf("risk tier = %s, want HIGH", cfg.Bot.RiskTier)
	}
	if cfg.Bot.InitialCapital != 25000 {
		t.Errorf("initial capital = %v, want 25000", cfg.Bot.InitialCapital)
	}
	if cfg.Bot.UseScreener {
		t.Error("use_screener = true, want the file's false")
	}
	if !cfg.Bot.UsePivot {
		t.Error("use_pivot should keep its default")
	}
	if cfg.Store.Path != "/tmp/hermes-test.db" {
		t.Errorf("store path = %s", cfg.Store.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %s, want debug", cfg.Log.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HERMES_RISK_TIER", "LOW")
	t.Setenv("HERMES_INITIAL_CAPITAL", "500")
	t.Setenv("HERMES_DB_PATH", "/tmp/hermes-env.db")
	t.Setenv("HERMES_LOG_LEVEL", "warn")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.RiskTier != "LOW" {
		t.Errorf("risk tier = %s, want env LOW", cfg.Bot.RiskTier)
	}
	if cfg.Bot.InitialCapital != 500 {
		t.Errorf("initial capital = %v, want env 500", cfg.Bot.InitialCapital)
	}
	if cfg.Store.Path != "/tmp/hermes-env.db" {
		t.Errorf("store path = %s, want env path", cfg.Store.Path)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %s, want env warn", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.Bot.InitialCapital = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero capital should fail validation")
	}

	cfg = Default()
	cfg.Store.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty store path should fail validation")
	}

	// An unknown risk tier passes validation: the risk package resolves
	// it to MEDIUM.
	cfg = Default()
	cfg.Bot.RiskTier = "EXTREME"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unknown risk tier should not fail validation: %v", err)
	}
}

func TestLogConfigConversion(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	cfg.Log.File = true
	cfg.Log.Path = "/tmp/hermes.log"

	lc := cfg.LogConfig()
	if lc.Level != "debug" || !lc.File || lc.FilePath != "/tmp/hermes.log" {
		t.Errorf("log config = %+v", lc)
	}

	// An empty path keeps the logging default.
	cfg.Log.Path = ""
	if lc := cfg.LogConfig(); lc.FilePath == "" {
		t.Error("empty path should fall back to the default file path")
	}
}
