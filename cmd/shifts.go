package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AI-MHT/dash/internal/cli"
	"github.com/AI-MHT/dash/internal/pipeline"
)

var flagListResponsibles bool

var shiftsCmd = &cobra.Command{
	Use:   "shifts",
	Short: "Per-shift detail table",
	RunE:  runShifts,
}

func init() {
	shiftsCmd.Flags().BoolVar(&flagListResponsibles, "list-responsibles", false, "List distinct responsible parties and exit")
	rootCmd.AddCommand(shiftsCmd)
}

func runShifts(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	result, err := loadData(cfg)
	if err != nil {
		return err
	}
	if len(result.Shifts) == 0 {
		fmt.Println("\n  No shift records found.")
		return nil
	}

	if flagListResponsibles {
		fmt.Println()
		for _, r := range pipeline.UniqueResponsibles(result.Shifts) {
			fmt.Printf("  %s\n", r)
		}
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

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SHIFT DETAIL  %s", rangeLabel(filter))))
	fmt.Println()

	// Newest first, night before day within a date
	daily := pipeline.GroupByDate(filtered)
	rows := make([][]string, 0, len(filtered))
	for _, d := range daily {
		for i := len(d.Shifts) - 1; i >= 0; i-- {
			s := d.Shifts[i]
			rows = append(rows, []string{
				s.Date,
				s.Slot.String(),
				cli.FormatShiftTime(s),
				cli.FormatTonnes(s.FinalProductTonnes),
				cli.FormatPercent(s.Efficiency),
				cli.FormatMinutes(s.Downtime),
				fmt.Sprintf("%d", s.StopsFrequency),
				s.Responsible,
			})
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Shift", "Hours", "Product", "Eff", "Downtime", "Stops", "Responsible"},
		Rows:    rows,
	}))

	return nil
}
