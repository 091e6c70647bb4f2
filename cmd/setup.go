package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AI-MHT/dash/internal/cli"
	"github.com/AI-MHT/dash/internal/config"
	"github.com/AI-MHT/dash/internal/source"
	"github.com/AI-MHT/dash/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to dash!")
	fmt.Println()

	// 1. Data directory
	fmt.Println("  1. Data directory")
	fmt.Println("     Where the daily shift reports (.json / .xlsx) live.")
	if cfg.General.DataDir != "" {
		fmt.Printf("     Current: %s\n", cfg.General.DataDir)
	}
	fmt.Print("     > ")
	dir, _ := reader.ReadString('\n')
	dir = strings.TrimSpace(dir)
	if dir != "" {
		cfg.General.DataDir = dir
	}
	if cfg.General.DataDir != "" {
		files, _ := source.ScanDir(cfg.General.DataDir)
		if len(files) > 0 {
			fmt.Printf("     Found %s report files\n", cli.FormatNumber(int64(len(files))))
		} else {
			fmt.Println("     No report files found there yet")
		}
	}
	fmt.Println()

	// 2. Default time range
	fmt.Println("  2. Default time range")
	fmt.Println("     (1) 7 days [default]")
	fmt.Println("     (2) 14 days")
	fmt.Println("     (3) 30 days")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "2":
		cfg.General.DefaultDays = 14
	case "3":
		cfg.General.DefaultDays = 30
	default:
		cfg.General.DefaultDays = 7
	}
	fmt.Println()

	// 3. Daily production target
	fmt.Println("  3. Daily production target (tonnes)")
	fmt.Printf("     Current: %.0f\n", cfg.ResolveTargets().DailyTonnes)
	fmt.Print("     > ")
	raw, _ := reader.ReadString('\n')
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			cfg.Targets.DailyTonnes = &v
		} else {
			fmt.Println("     Not a number, keeping current target")
		}
	}
	fmt.Println()

	// 4. Theme
	fmt.Println("  4. Color theme")
	for i, th := range theme.All {
		marker := ""
		if i == 0 {
			marker = " [default]"
		}
		fmt.Printf("     (%d) %s%s\n", i+1, th.Name, marker)
	}
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	cfg.Appearance.Theme = themeByChoice(themeChoice)
	fmt.Println()

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `dash` to see your first summary.")
	return nil
}

// themeByChoice maps a 1-based menu selection to a theme name, defaulting
// to the first theme on blank or out-of-range input.
func themeByChoice(input string) string {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(theme.All) {
		return theme.All[0].Name
	}
	return theme.All[n-1].Name
}
