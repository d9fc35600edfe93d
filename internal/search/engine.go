// Package search implements the parallel line-search core: the line
// matcher, the per-file scan, and the engine that fans the scan out
// across a fixed pool of workers.
//
// The engine partitions the input file list into contiguous chunks,
// one per worker. Each worker scans only its own chunk and appends to
// a result slice it owns exclusively, so the scan phase needs no
// locks; the only coordination point is the join barrier before the
// per-worker results are merged.
package search

import (
	"fmt"
	"runtime"
	"sync"
)

// Logger receives diagnostic output produced while a search runs.
// *logger.ConsoleLogger satisfies it. Diagnostics are advisory; they
// never change the result of a search.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// nopLogger discards all diagnostics. Used when no logger is provided.
type nopLogger struct{}

func (nopLogger) LogDebug(string) {}
func (nopLogger) LogWarn(string)  {}

// Config fixes the behavior of an Engine for all of its searches.
type Config struct {
	// IgnoreCase enables case-insensitive matching (ASCII-only for
	// substring mode, (?i) for regex mode).
	IgnoreCase bool

	// UseRegex treats the query as a regular expression instead of a
	// literal substring.
	UseRegex bool

	// Workers is the size of the worker pool. Zero or negative selects
	// one worker per CPU, with a minimum of one.
	Workers int
}

// Engine runs queries over lists of files using a fixed pool of
// workers. The pool size and matching mode are set at construction and
// never change; the query is supplied per search.
type Engine struct {
	ignoreCase  bool
	useRegex    bool
	workerCount int
	logger      Logger
}

// NewEngine constructs an Engine from cfg. The worker count is clamped
// to a minimum of one, so a host that reports no concurrency still
// searches. logger may be nil to discard diagnostics.
func NewEngine(cfg Config, logger Logger) *Engine {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = nopLogger{}
	}

	return &Engine{
		ignoreCase:  cfg.IgnoreCase,
		useRegex:    cfg.UseRegex,
		workerCount: workers,
		logger:      logger,
	}
}

// Workers returns the size of the engine's worker pool.
func (e *Engine) Workers() int {
	return e.workerCount
}

// Search scans every file in files for lines matching query and returns
// the merged matches. It blocks until every worker has finished.
//
// The file list is split into contiguous chunks of ceil(len/workers)
// files; each chunk is scanned by exactly one worker, in list order, so
// matches from a single file always appear in line order. Per-worker
// results are concatenated in worker-index order — matches are grouped
// by chunk, not globally sorted by path.
//
// An empty file list returns an empty result and no error. A malformed
// regex query fails the whole search before any file is opened. A file
// that cannot be opened or read is reported to the logger, contributes
// whatever matches were already collected, and never aborts the run.
func (e *Engine) Search(files []string, query string) ([]Match, error) {
	if len(files) == 0 || e.workerCount == 0 {
		e.logger.LogDebug("no files to search")
		return []Match{}, nil
	}

	// Compiled once and shared read-only by every worker, so the same
	// query deterministically succeeds or fails for the whole run.
	matcher, err := NewMatcher(query, e.ignoreCase, e.useRegex)
	if err != nil {
		return nil, err
	}

	total := len(files)
	chunkSize := (total + e.workerCount - 1) / e.workerCount

	// One result slot per worker. A worker writes only its own slot and
	// nothing reads any slot until after the join, so the scan phase
	// runs without locks or atomics.
	results := make([][]Match, e.workerCount)

	var wg sync.WaitGroup
	for worker := 0; worker < e.workerCount; worker++ {
		start := worker * chunkSize
		if start >= total {
			// More workers than files: this worker and every later one
			// would get an empty range, so stop assigning.
			e.logger.LogDebug(fmt.Sprintf("worker %d has no files to process", worker))
			break
		}
		end := min(start+chunkSize, total)

		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for _, path := range files[start:end] {
				matches, scanErr := scanFile(path, matcher)
				if scanErr != nil {
					e.logger.LogWarn(scanErr.Error())
				}
				results[worker] = append(results[worker], matches...)
			}
		}(worker)
	}

	// Join barrier: no result slot is read before every worker is done.
	wg.Wait()

	totalMatches := 0
	for _, r := range results {
		totalMatches += len(r)
	}
	merged := make([]Match, 0, totalMatches)
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}
