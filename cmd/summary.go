package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AI-MHT/dash/internal/cli"
	"github.com/AI-MHT/dash/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Period summary with KPIs and top shift",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	result, err := loadData(cfg)
	if err != nil {
		return err
	}

	if len(result.Shifts) == 0 {
		fmt.Println("\n  No shift records found.")
		fmt.Println("  Drop report files into the data directory, then come back!")
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

	// Equal-length window immediately before, for trend comparison
	baseline := pipeline.Filter(result.Shifts, pipeline.PreviousPeriod(filter))

	targets := cfg.ResolveTargets()
	kpis := pipeline.ComputeKPIs(filtered, baseline, targets)
	daily := pipeline.GroupByDate(filtered)
	top := pipeline.FindTop(filtered)
	consumption := pipeline.TotalConsumption(filtered)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SHIFT PERFORMANCE  %s", rangeLabel(filter))))
	fmt.Println()

	var totalProduction, totalDowntime float64
	for _, d := range daily {
		totalProduction += d.TotalProduction
		totalDowntime += d.TotalDowntime
	}

	rows := [][]string{
		{"Shifts", cli.FormatNumber(int64(len(filtered)))},
		{"Days Covered", cli.FormatNumber(int64(len(daily)))},
		{"---"},
		{"Total Production", cli.FormatTonnes(totalProduction)},
		{"Total Downtime", cli.FormatMinutes(totalDowntime)},
	}
	for _, k := range kpis {
		switch k.Name {
		case "Avg Production", "Efficiency", "Quality Rate":
			rows = append(rows, []string{
				k.Name,
				fmt.Sprintf("%s  %s", cli.FormatValue(k.Value, k.Unit), cli.TrendArrow(k.Trend)),
			})
		}
	}
	rows = append(rows, []string{"---"})
	rows = append(rows,
		[]string{"Ester", cli.FormatValue(consumption.Ester, "L")},
		[]string{"Amin", cli.FormatValue(consumption.Amin, "L")},
		[]string{"Acid", cli.FormatValue(consumption.Acid, "L")},
		[]string{"Floculant", cli.FormatValue(consumption.Floculant, "m³")},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if top != nil {
		fmt.Println()
		fmt.Printf("  Top shift: %s\n", cli.FormatShiftIdentifier(*top))
		fmt.Printf("    %s produced, %s efficiency, %s responsible\n",
			cli.FormatTonnes(top.FinalProductTonnes),
			cli.FormatPercent(top.Efficiency),
			top.Responsible)
	}

	// Daily production sparkline, oldest to newest
	if len(daily) > 1 {
		values := make([]float64, 0, len(daily))
		for i := len(daily) - 1; i >= 0; i-- {
			values = append(values, daily[i].TotalProduction)
		}
		fmt.Println()
		fmt.Printf("  Daily production: %s\n", cli.RenderSparkline(values))
	}

	if result.FileErrors > 0 {
		fmt.Fprintf(os.Stderr, "\n  %d files could not be parsed\n", result.FileErrors)
	}
	if result.ParseErrors > 0 {
		fmt.Fprintf(os.Stderr, "  %d day records were skipped (missing realized production)\n", result.ParseErrors)
	}

	return nil
}
