package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/AI-MHT/dash/internal/model"
	"github.com/AI-MHT/dash/internal/source"
	"github.com/AI-MHT/dash/internal/store"
)

// LoadResult holds the output of the dataset loading pipeline.
type LoadResult struct {
	Shifts      []model.Shift
	TotalFiles  int
	ParsedFiles int
	ParseErrors int
	FileErrors  int
}

// ProgressFunc is called during loading to report progress.
type ProgressFunc func(current, total int)

// CachePath returns the default location of the shift parse cache.
func CachePath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "dash", "shifts.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "dash", "shifts.db")
}

// Load discovers and parses every dataset file under dataDir using a bounded
// worker pool, and returns canonical shifts sorted by (date, slot).
func Load(dataDir string, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	result := &LoadResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	for _, pr := range parseAll(files, progressFn) {
		collect(result, pr)
	}

	sortShifts(result.Shifts)
	return result, nil
}

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
}

// LoadWithCache diffs discovered files against the cache, parses only
// changed files, persists their shifts, and returns the combined set.
func LoadWithCache(dataDir string, cache *store.Cache, progressFn ProgressFunc) (*CachedLoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	result := &CachedLoadResult{LoadResult: LoadResult{TotalFiles: len(files)}}
	if len(files) == 0 {
		return result, nil
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	present := make(map[string]struct{}, len(files))
	statByPath := make(map[string]os.FileInfo, len(files))
	var toReparse []source.DiscoveredFile
	unchanged := make(map[string]struct{})

	for _, f := range files {
		present[f.Path] = struct{}{}
		info, err := os.Stat(f.Path)
		if err != nil {
			result.FileErrors++
			continue
		}
		statByPath[f.Path] = info

		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == info.ModTime().UnixNano() && cached.SizeBytes == info.Size() {
			unchanged[f.Path] = struct{}{}
			result.ParseErrors += cached.ParseErrors
		} else {
			toReparse = append(toReparse, f)
		}
	}

	result.CacheHits = len(unchanged)
	result.Reparsed = len(toReparse)

	if len(unchanged) > 0 {
		cached, err := cache.LoadAllShifts()
		if err != nil {
			return nil, fmt.Errorf("loading cached shifts: %w", err)
		}
		counted := make(map[string]struct{})
		for _, cs := range cached {
			if _, ok := unchanged[cs.SourceFile]; !ok {
				continue
			}
			result.Shifts = append(result.Shifts, cs.Shift)
			if _, ok := counted[cs.SourceFile]; !ok {
				counted[cs.SourceFile] = struct{}{}
				result.ParsedFiles++
			}
		}
	}

	if len(toReparse) > 0 {
		results := parseAll(toReparse, progressFn)
		for i, pr := range results {
			collect(&result.LoadResult, pr)
			if pr.Err != nil {
				continue
			}
			path := toReparse[i].Path
			info := statByPath[path]
			if info == nil {
				continue
			}
			if err := cache.SaveFile(path, info.ModTime().UnixNano(), info.Size(), pr.ParseErrors, pr.Shifts); err != nil {
				log.Warn().Err(err).Str("file", path).Msg("failed to cache parsed shifts")
			}
		}
	}

	if err := cache.PruneMissing(present); err != nil {
		log.Warn().Err(err).Msg("failed to prune stale cache entries")
	}

	sortShifts(result.Shifts)
	return result, nil
}

// parseAll fans the files out to a bounded worker pool, preserving order.
func parseAll(files []source.DiscoveredFile, progressFn ProgressFunc) []source.ParseResult {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]source.ParseResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = source.ParseFile(files[idx])
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}

	wg.Wait()
	return results
}

func collect(result *LoadResult, pr source.ParseResult) {
	if pr.Err != nil {
		result.FileErrors++
		log.Warn().Err(pr.Err).Msg("failed to parse dataset file")
		return
	}
	result.ParsedFiles++
	result.ParseErrors += pr.ParseErrors
	result.Shifts = append(result.Shifts, pr.Shifts...)
}

func sortShifts(shifts []model.Shift) {
	sort.SliceStable(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		return shifts[i].Slot < shifts[j].Slot
	})
}
