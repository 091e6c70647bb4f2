// Package cmd implements the dash CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AI-MHT/dash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default days:   %d\n", cfg.General.DefaultDays)
	if cfg.General.DataDir != "" {
		fmt.Printf("    Data directory: %s\n", cfg.General.DataDir)
	}
	fmt.Println()

	fmt.Println("  [Report]")
	if cfg.Report.OutputDir != "" {
		fmt.Printf("    Output directory: %s\n", cfg.Report.OutputDir)
	} else {
		fmt.Println("    Output directory: . (current directory)")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Targets]")
	t := cfg.ResolveTargets()
	fmt.Printf("    Avg production:     %.0f T\n", t.AvgProduction)
	fmt.Printf("    Efficiency:         %.0f %%\n", t.Efficiency)
	fmt.Printf("    Downtime:           %.0f min\n", t.Downtime)
	fmt.Printf("    Quality rate:       %.0f %%\n", t.QualityRate)
	fmt.Printf("    Stop frequency:     %.0f\n", t.StopFrequency)
	fmt.Printf("    Operating hours:    %.0f h\n", t.OperatingHours)
	fmt.Printf("    Ore flowrate:       %.0f T\n", t.OreFlowrate)
	fmt.Printf("    Max flow rate:      %.0f T/h\n", t.MaxFlowRate)
	fmt.Printf("    Waste rate:         %.0f T\n", t.WasteRate)
	fmt.Printf("    Ester:              %.0f L\n", t.EsterTotal)
	fmt.Printf("    Amin:               %.0f L\n", t.AminTotal)
	fmt.Printf("    Acid:               %.0f L\n", t.AcidTotal)
	fmt.Printf("    Floculant:          %.0f m³\n", t.FloculantTotal)
	fmt.Printf("    Received phosphate: %.0f T\n", t.ReceivedPhosphate)
	fmt.Printf("    Daily tonnage:      %.0f T\n", t.DailyTonnes)

	return nil
}
