package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.General.DefaultDays != 7 {
		t.Errorf("DefaultDays = %d, want 7", cfg.General.DefaultDays)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if cfg.Targets.DailyTonnes != nil {
		t.Error("fresh config should carry no target overrides")
	}
}

func TestResolveTargets(t *testing.T) {
	cfg := DefaultConfig()
	eff := 90.0
	daily := 12000.0
	cfg.Targets.Efficiency = &eff
	cfg.Targets.DailyTonnes = &daily

	targets := cfg.ResolveTargets()
	if targets.Efficiency != 90 {
		t.Errorf("Efficiency = %v, want override 90", targets.Efficiency)
	}
	if targets.DailyTonnes != 12000 {
		t.Errorf("DailyTonnes = %v, want override 12000", targets.DailyTonnes)
	}
	// Unset overrides keep the nominal values.
	if targets.AvgProduction != 5000 {
		t.Errorf("AvgProduction = %v, want nominal 5000", targets.AvgProduction)
	}
	if targets.Downtime != 60 {
		t.Errorf("Downtime = %v, want nominal 60", targets.Downtime)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.General.DefaultDays != 7 {
		t.Errorf("DefaultDays = %d, want default 7", cfg.General.DefaultDays)
	}
	if Exists() {
		t.Error("Exists() = true before any Save")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DefaultDays = 14
	cfg.General.DataDir = "/srv/reports"
	cfg.Report.OutputDir = "/srv/exports"
	cfg.Appearance.Theme = "terminal"
	target := 9500.0
	cfg.Targets.DailyTonnes = &target

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.General.DefaultDays != 14 {
		t.Errorf("DefaultDays = %d, want 14", got.General.DefaultDays)
	}
	if got.General.DataDir != "/srv/reports" {
		t.Errorf("DataDir = %q", got.General.DataDir)
	}
	if got.Report.OutputDir != "/srv/exports" {
		t.Errorf("OutputDir = %q", got.Report.OutputDir)
	}
	if got.Appearance.Theme != "terminal" {
		t.Errorf("Theme = %q", got.Appearance.Theme)
	}
	if got.Targets.DailyTonnes == nil || *got.Targets.DailyTonnes != 9500 {
		t.Errorf("DailyTonnes = %v, want 9500", got.Targets.DailyTonnes)
	}
}

func TestConfigPathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, "dash", "config.toml")
	if got := ConfigPath(); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(want)); !os.IsNotExist(err) {
		t.Error("config dir should not exist before Save")
	}
}
