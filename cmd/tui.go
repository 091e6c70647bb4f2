package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/AI-MHT/dash/internal/model"
	"github.com/AI-MHT/dash/internal/tui"
	"github.com/AI-MHT/dash/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor so background styling always produces ANSI codes;
	// lipgloss may otherwise fall back to the Ascii profile
	lipgloss.SetColorProfile(termenv.TrueColor)

	slot := model.SlotAny
	switch flagShift {
	case 1:
		slot = model.SlotDay
	case 2:
		slot = model.SlotNight
	}

	app := tui.NewApp(dataDir(cfg), flagDays, slot, flagResponsible)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
