package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AI-MHT/dash/internal/pipeline"
	"github.com/AI-MHT/dash/internal/report"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the period report as an Excel workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default <output-dir>/Shift_Report_<date>.xlsx)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	result, err := loadData(cfg)
	if err != nil {
		return err
	}
	if len(result.Shifts) == 0 {
		return fmt.Errorf("no shift records found, nothing to export")
	}

	filter, err := buildFilter(cfg)
	if err != nil {
		return err
	}
	filtered := pipeline.Filter(result.Shifts, filter)
	if len(filtered) == 0 {
		return fmt.Errorf("no shifts in the selected time range")
	}

	baseline := pipeline.Filter(result.Shifts, pipeline.PreviousPeriod(filter))
	targets := cfg.ResolveTargets()
	now := time.Now()

	data := report.Data{
		Filter:      filter,
		Shifts:      filtered,
		KPIs:        pipeline.ComputeKPIs(filtered, baseline, targets),
		Daily:       pipeline.GroupByDate(filtered),
		Top:         pipeline.FindTop(filtered),
		Consumption: pipeline.TotalConsumption(filtered),
		DailyTarget: targets.DailyTonnes,
		GeneratedAt: now,
	}

	path := flagOutput
	if path == "" {
		dir := cfg.Report.OutputDir
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
		path = filepath.Join(dir, report.FileName(now))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := report.Write(f, data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info().Str("path", path).Int("shifts", len(filtered)).Msg("report exported")
	fmt.Printf("\n  Report written to %s (%d shifts)\n", path, len(filtered))
	return nil
}
