package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AI-MHT/dash/internal/cli"
	"github.com/AI-MHT/dash/internal/pipeline"
)

var consumptionCmd = &cobra.Command{
	Use:   "consumption",
	Short: "Reagent consumption totals for the period",
	RunE:  runConsumption,
}

func init() {
	rootCmd.AddCommand(consumptionCmd)
}

func runConsumption(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	result, err := loadData(cfg)
	if err != nil {
		return err
	}

	filter, err := buildFilter(cfg)
	if err != nil {
		return err
	}
	filtered := pipeline.Filter(result.Shifts, filter)
	if len(filtered) == 0 {
		fmt.Println("\n  No shifts in the selected time range.")
		return nil
	}

	totals := pipeline.TotalConsumption(filtered)
	targets := cfg.ResolveTargets()

	fmt.Println()
	fmt.Println(cli.RenderTitle("CONSUMPTION  " + rangeLabel(filter)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Reagent", "Consumed", "Target", "Unit"},
		Rows: [][]string{
			{"Ester", cli.FormatValue(totals.Ester, ""), cli.FormatValue(targets.EsterTotal, ""), "L"},
			{"Amin", cli.FormatValue(totals.Amin, ""), cli.FormatValue(targets.AminTotal, ""), "L"},
			{"Acid", cli.FormatValue(totals.Acid, ""), cli.FormatValue(targets.AcidTotal, ""), "L"},
			{"Floculant", cli.FormatValue(totals.Floculant, ""), cli.FormatValue(targets.FloculantTotal, ""), "m³"},
		},
	}))

	return nil
}
