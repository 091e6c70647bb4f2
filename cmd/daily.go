package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AI-MHT/dash/internal/cli"
	"github.com/AI-MHT/dash/internal/model"
	"github.com/AI-MHT/dash/internal/pipeline"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily production table, newest first",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
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
	daily := pipeline.GroupByDate(filtered)
	if len(daily) == 0 {
		fmt.Println("\n  No data for the selected period.")
		return nil
	}

	targets := cfg.ResolveTargets()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY PRODUCTION  %s", rangeLabel(filter))))
	fmt.Println()

	rows := make([][]string, 0, len(daily))
	for _, d := range daily {
		day := findSlot(d.Shifts, model.SlotDay)
		night := findSlot(d.Shifts, model.SlotNight)
		variance := 0.0
		if targets.DailyTonnes > 0 {
			variance = (d.TotalProduction - targets.DailyTonnes) / targets.DailyTonnes * 100
		}
		rows = append(rows, []string{
			d.Date,
			slotTonnes(day),
			slotTonnes(night),
			cli.FormatTonnes(d.TotalProduction),
			cli.FormatPercent(d.AvgEfficiency),
			cli.FormatMinutes(d.TotalDowntime),
			cli.FormatVariance(variance) + "%",
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Shift 1", "Shift 2", "Total", "Avg Eff", "Downtime", "vs Target"},
		Rows:    rows,
	}))

	return nil
}

func findSlot(shifts []model.Shift, slot model.ShiftSlot) *model.Shift {
	for i := range shifts {
		if shifts[i].Slot == slot {
			return &shifts[i]
		}
	}
	return nil
}

func slotTonnes(s *model.Shift) string {
	if s == nil {
		return "N/A"
	}
	return cli.FormatTonnes(s.FinalProductTonnes)
}
