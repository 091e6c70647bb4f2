package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/AI-MHT/dash/internal/config"
	"github.com/AI-MHT/dash/internal/tui/theme"
)

// setupValues collects the first-run form answers.
type setupValues struct {
	dataDir     string
	days        int
	dailyTarget string
	theme       string
}

// newSetupForm builds the first-run setup form. shiftCount is how many
// shifts the initial load found in dataDir, shown as a sanity check.
func newSetupForm(shiftCount int, dataDir string, vals *setupValues) *huh.Form {
	vals.dataDir = dataDir
	vals.days = 7
	vals.theme = theme.Active.Name

	found := "No report files found there yet."
	if shiftCount > 0 {
		found = fmt.Sprintf("Found %d shifts.", shiftCount)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to dash!").
				Description("A few questions to get you set up."),

			huh.NewInput().
				Title("Data directory").
				Description(fmt.Sprintf("Where the daily shift reports live. %s", found)).
				Value(&vals.dataDir),

			huh.NewSelect[int]().
				Title("Default time range").
				Options(
					huh.NewOption("7 days", 7),
					huh.NewOption("14 days", 14),
					huh.NewOption("30 days", 30),
				).
				Value(&vals.days),

			huh.NewInput().
				Title("Daily production target (tonnes)").
				Description("Leave blank to keep the nominal plant target.").
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					v, err := strconv.ParseFloat(s, 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("enter a positive number")
					}
					return nil
				}).
				Value(&vals.dailyTarget),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions()...).
				Value(&vals.theme),
		),
	)
}

func themeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		opts = append(opts, huh.NewOption(t.Name, t.Name))
	}
	return opts
}

// saveSetupConfig persists the form answers and applies them to the app.
func (a *App) saveSetupConfig() error {
	cfg, _ := config.Load()

	if dir := strings.TrimSpace(a.setupVals.dataDir); dir != "" {
		cfg.General.DataDir = dir
		a.dataDir = dir
	}

	if a.setupVals.days > 0 {
		cfg.General.DefaultDays = a.setupVals.days
		a.days = a.setupVals.days
	}

	if raw := strings.TrimSpace(a.setupVals.dailyTarget); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			cfg.Targets.DailyTonnes = &v
		}
	}

	if a.setupVals.theme != "" {
		cfg.Appearance.Theme = a.setupVals.theme
		theme.SetActive(a.setupVals.theme)
	}

	return config.Save(cfg)
}
