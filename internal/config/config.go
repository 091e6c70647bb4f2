// Package config loads and saves the dash configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/AI-MHT/dash/internal/model"
)

// Config holds all dash configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Report     ReportConfig     `toml:"report"`
	Appearance AppearanceConfig `toml:"appearance"`
	Targets    TargetOverrides  `toml:"targets"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultDays int    `toml:"default_days"`
	DataDir     string `toml:"data_dir,omitempty"`
}

// ReportConfig holds report export settings.
type ReportConfig struct {
	OutputDir string `toml:"output_dir,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TargetOverrides allows per-KPI target overrides. Unset fields keep the
// nominal plant targets.
type TargetOverrides struct {
	AvgProduction     *float64 `toml:"avg_production,omitempty"`
	Efficiency        *float64 `toml:"efficiency,omitempty"`
	Downtime          *float64 `toml:"downtime,omitempty"`
	QualityRate       *float64 `toml:"quality_rate,omitempty"`
	StopFrequency     *float64 `toml:"stop_frequency,omitempty"`
	OperatingHours    *float64 `toml:"operating_hours,omitempty"`
	OreFlowrate       *float64 `toml:"ore_flowrate,omitempty"`
	MaxFlowRate       *float64 `toml:"max_flow_rate,omitempty"`
	WasteRate         *float64 `toml:"waste_rate,omitempty"`
	EsterTotal        *float64 `toml:"ester_total,omitempty"`
	AminTotal         *float64 `toml:"amin_total,omitempty"`
	AcidTotal         *float64 `toml:"acid_total,omitempty"`
	FloculantTotal    *float64 `toml:"floculant_total,omitempty"`
	ReceivedPhosphate *float64 `toml:"received_phosphate,omitempty"`
	DailyTonnes       *float64 `toml:"daily_tonnes,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultDays: 7,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dash")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Exists reports whether a config file has been written.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// ResolveTargets applies the file's overrides on top of the nominal plant
// targets.
func (c Config) ResolveTargets() model.Targets {
	t := model.DefaultTargets()
	apply := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&t.AvgProduction, c.Targets.AvgProduction)
	apply(&t.Efficiency, c.Targets.Efficiency)
	apply(&t.Downtime, c.Targets.Downtime)
	apply(&t.QualityRate, c.Targets.QualityRate)
	apply(&t.StopFrequency, c.Targets.StopFrequency)
	apply(&t.OperatingHours, c.Targets.OperatingHours)
	apply(&t.OreFlowrate, c.Targets.OreFlowrate)
	apply(&t.MaxFlowRate, c.Targets.MaxFlowRate)
	apply(&t.WasteRate, c.Targets.WasteRate)
	apply(&t.EsterTotal, c.Targets.EsterTotal)
	apply(&t.AminTotal, c.Targets.AminTotal)
	apply(&t.AcidTotal, c.Targets.AcidTotal)
	apply(&t.FloculantTotal, c.Targets.FloculantTotal)
	apply(&t.ReceivedPhosphate, c.Targets.ReceivedPhosphate)
	apply(&t.DailyTonnes, c.Targets.DailyTonnes)
	return t
}
