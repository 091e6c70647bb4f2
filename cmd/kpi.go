package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AI-MHT/dash/internal/cli"
	"github.com/AI-MHT/dash/internal/pipeline"
)

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Full KPI table with targets and trends",
	RunE:  runKPI,
}

func init() {
	rootCmd.AddCommand(kpiCmd)
}

func runKPI(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	result, err := loadData(cfg)
	if err != nil {
		return err
	}
	if len(result.Shifts) == 0 {
		fmt.Println("\n  No shift records found.")
		return nil
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

	baseline := pipeline.Filter(result.Shifts, pipeline.PreviousPeriod(filter))
	kpis := pipeline.ComputeKPIs(filtered, baseline, cfg.ResolveTargets())

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("KPI REPORT  %s", rangeLabel(filter))))
	fmt.Println()

	rows := make([][]string, 0, len(kpis)+4)
	lastCategory := ""
	for _, k := range kpis {
		if lastCategory != "" && k.Category != lastCategory {
			rows = append(rows, []string{"---"})
		}
		lastCategory = k.Category

		rows = append(rows, []string{
			k.Name,
			cli.FormatValue(k.Value, ""),
			cli.FormatValue(k.Target, ""),
			k.Unit,
			cli.TrendArrow(k.Trend) + " " + k.Trend.Word(),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"KPI", "Value", "Target", "Unit", "Trend"},
		Rows:    rows,
	}))

	return nil
}
