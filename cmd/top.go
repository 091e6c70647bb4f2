package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AI-MHT/dash/internal/cli"
	"github.com/AI-MHT/dash/internal/pipeline"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Highest-producing shift in the period",
	RunE:  runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)
}

func runTop(_ *cobra.Command, _ []string) error {
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

	top := pipeline.FindTop(filtered)
	if top == nil {
		fmt.Println("\n  No shifts in the selected time range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("TOP SHIFT  " + rangeLabel(filter)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Shift", cli.FormatShiftIdentifier(*top)},
			{"Hours", cli.FormatShiftTime(*top)},
			{"Responsible", top.Responsible},
			{"---"},
			{"Final Product", cli.FormatTonnes(top.FinalProductTonnes)},
			{"Efficiency", cli.FormatPercent(top.Efficiency)},
			{"Downtime", cli.FormatMinutes(top.Downtime)},
			{"Quality Rate", cli.FormatPercent(top.QualityRate)},
			{"Stops", fmt.Sprintf("%d", top.StopsFrequency)},
		},
	}))

	if top.Notes != "" {
		fmt.Println()
		for _, line := range strings.Split(top.Notes, "\n") {
			fmt.Printf("  %s\n", line)
		}
	}

	return nil
}
