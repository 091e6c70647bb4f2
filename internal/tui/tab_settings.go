package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AI-MHT/dash/internal/config"
	"github.com/AI-MHT/dash/internal/tui/components"
	"github.com/AI-MHT/dash/internal/tui/theme"
)

const (
	settingsFieldTheme = iota
	settingsFieldDays
	settingsFieldDataDir
	settingsFieldOutputDir
	settingsFieldDailyTarget
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldTheme:
		names := make([]string, 0, len(theme.All))
		for _, t := range theme.All {
			names = append(names, t.Name)
		}
		ti.Placeholder = strings.Join(names, ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldDays:
		ti.Placeholder = "7"
		ti.SetValue(strconv.Itoa(cfg.General.DefaultDays))
	case settingsFieldDataDir:
		ti.Placeholder = "data"
		ti.SetValue(cfg.General.DataDir)
	case settingsFieldOutputDir:
		ti.Placeholder = ". (current directory)"
		ti.SetValue(cfg.Report.OutputDir)
	case settingsFieldDailyTarget:
		ti.Placeholder = "10000 (tonnes, leave empty for nominal)"
		if cfg.Targets.DailyTonnes != nil {
			ti.SetValue(fmt.Sprintf("%.0f", *cfg.Targets.DailyTonnes))
		}
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		found := false
		for _, t := range theme.All {
			if t.Name == val {
				found = true
				break
			}
		}
		if !found {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldDays:
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			a.settings.saveErr = fmt.Errorf("days must be a positive number")
			return
		}
		cfg.General.DefaultDays = n
		a.days = n
	case settingsFieldDataDir:
		cfg.General.DataDir = val
		if val != "" {
			a.dataDir = val
		}
	case settingsFieldOutputDir:
		cfg.Report.OutputDir = val
	case settingsFieldDailyTarget:
		if val == "" {
			cfg.Targets.DailyTonnes = nil
		} else {
			v, err := strconv.ParseFloat(val, 64)
			if err != nil || v <= 0 {
				a.settings.saveErr = fmt.Errorf("target must be a positive number")
				return
			}
			cfg.Targets.DailyTonnes = &v
		}
	}

	a.settings.saveErr = config.Save(cfg)
	if a.settings.saveErr == nil {
		a.recompute()
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green)
	redStyle := lipgloss.NewStyle().Foreground(t.Red)

	target := "nominal"
	if cfg.Targets.DailyTonnes != nil {
		target = fmt.Sprintf("%.0f T", *cfg.Targets.DailyTonnes)
	}
	outputDir := cfg.Report.OutputDir
	if outputDir == "" {
		outputDir = ". (current directory)"
	}
	dataDir := cfg.General.DataDir
	if dataDir == "" {
		dataDir = "data"
	}

	fields := []struct{ label, value string }{
		{"Theme", cfg.Appearance.Theme},
		{"Default days", strconv.Itoa(cfg.General.DefaultDays)},
		{"Data directory", dataDir},
		{"Report output", outputDir},
		{"Daily target", target},
	}

	var b strings.Builder
	for i, f := range fields {
		marker := "  "
		style := valueStyle
		if i == a.settings.cursor {
			marker = selStyle.Render("> ")
			style = selStyle
		}
		b.WriteString(marker)
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", f.label)))

		if a.settings.editing && i == a.settings.cursor {
			b.WriteString(a.settings.input.View())
		} else {
			b.WriteString(style.Render(f.value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case a.settings.editing:
		b.WriteString(dimStyle.Render("  Enter to save, Esc to cancel"))
	case a.settings.saveErr != nil:
		b.WriteString(redStyle.Render("  " + a.settings.saveErr.Error()))
	case a.settings.saved:
		b.WriteString(greenStyle.Render("  Saved to " + config.ConfigPath()))
	default:
		b.WriteString(dimStyle.Render("  j/k to select, Enter to edit"))
	}

	return components.ContentCard("Settings", strings.TrimRight(b.String(), "\n"), cw)
}
