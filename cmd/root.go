package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AI-MHT/dash/internal/cli"
	"github.com/AI-MHT/dash/internal/config"
	"github.com/AI-MHT/dash/internal/logging"
	"github.com/AI-MHT/dash/internal/model"
	"github.com/AI-MHT/dash/internal/pipeline"
	"github.com/AI-MHT/dash/internal/store"
)

var (
	flagDays        int
	flagFrom        string
	flagTo          string
	flagShift       int
	flagResponsible string
	flagDataDir     string
	flagNoCache     bool
	flagQuiet       bool
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "dash",
	Short: "Shift performance dashboard",
	Long:  "Report on per-shift plant performance: production, efficiency, downtime, and reagent consumption.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(flagVerbose, flagQuiet)
	},
	RunE: runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Time window in days ending today (default from config, 7)")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "Range start (YYYY-MM-DD), overrides --days")
	rootCmd.PersistentFlags().StringVar(&flagTo, "to", "", "Range end (YYYY-MM-DD), inclusive")
	rootCmd.PersistentFlags().IntVarP(&flagShift, "shift", "s", 0, "Filter to shift slot (1=Day, 2=Night)")
	rootCmd.PersistentFlags().StringVarP(&flagResponsible, "responsible", "r", "", "Filter to responsible party (exact match)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Dataset directory (default from config, ./data)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config unreadable (%v), using defaults\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func dataDir(cfg config.Config) string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	return "data"
}

// loadData is the shared data loading path used by all commands.
// Uses the SQLite cache when available for fast subsequent runs.
func loadData(cfg config.Config) (*pipeline.LoadResult, error) {
	dir := dataDir(cfg)

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
	}

	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, doing full parse\n")
			}
		} else {
			defer cache.Close()

			cr, err := pipeline.LoadWithCache(dir, cache, progressFn)
			if err != nil {
				if !flagQuiet {
					fmt.Fprintf(os.Stderr, "\n  Cache error, falling back to full parse\n")
				}
			} else {
				if !flagQuiet && cr.TotalFiles > 0 {
					fmt.Fprintf(os.Stderr, "\r  %s shifts (%d files cached, %d reparsed)    \n",
						cli.FormatNumber(int64(len(cr.Shifts))), cr.CacheHits, cr.Reparsed)
				}
				return &cr.LoadResult, nil
			}
		}
	}

	result, err := pipeline.Load(dir, progressFn)
	if err != nil {
		return nil, err
	}

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %s shifts from %d files    \n",
			cli.FormatNumber(int64(len(result.Shifts))), result.ParsedFiles)
	}

	return result, nil
}

// buildFilter resolves the persistent flags into the filter for this run.
func buildFilter(cfg config.Config) (model.Filter, error) {
	var f model.Filter

	switch s := flagShift; s {
	case 0:
		f.Slot = model.SlotAny
	case 1:
		f.Slot = model.SlotDay
	case 2:
		f.Slot = model.SlotNight
	default:
		return f, fmt.Errorf("invalid --shift %d: must be 1 (Day) or 2 (Night)", s)
	}
	f.Responsible = flagResponsible

	if flagFrom != "" || flagTo != "" {
		if flagFrom == "" || flagTo == "" {
			return f, fmt.Errorf("--from and --to must be given together")
		}
		from, err := time.Parse(model.DateLayout, flagFrom)
		if err != nil {
			return f, fmt.Errorf("invalid --from %q: %w", flagFrom, err)
		}
		to, err := time.Parse(model.DateLayout, flagTo)
		if err != nil {
			return f, fmt.Errorf("invalid --to %q: %w", flagTo, err)
		}
		if to.Before(from) {
			return f, fmt.Errorf("--to %s is before --from %s", flagTo, flagFrom)
		}
		f.From, f.To = from, to
		return f, nil
	}

	days := flagDays
	if days == 0 {
		days = cfg.General.DefaultDays
	}
	if days == 0 {
		days = 7
	}
	f.From, f.To = pipeline.DefaultRange(days, time.Now())
	return f, nil
}

// rangeLabel renders the filter's date range for titles.
func rangeLabel(f model.Filter) string {
	return f.From.Format("Jan 02") + " - " + f.To.Format("Jan 02, 2006")
}
