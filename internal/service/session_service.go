package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/jengzang/fit-session-stats/internal/analysis"
	"github.com/jengzang/fit-session-stats/internal/frame"
	"github.com/jengzang/fit-session-stats/internal/models"
)

// ErrInvalidDirectory is returned when the input directory cannot be listed
var ErrInvalidDirectory = errors.New("invalid session directory")

// SessionService turns directories of session files into reports
type SessionService struct {
	decoder            frame.Decoder
	maxDurationMinutes float64
	workers            int
	skipFailed         bool
}

// Options configures a SessionService
type Options struct {
	MaxDurationMinutes float64
	Workers            int
	SkipFailed         bool // Log and skip undecodable files instead of aborting the run
}

// NewSessionService creates a new session service
func NewSessionService(decoder frame.Decoder, opts Options) *SessionService {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.MaxDurationMinutes <= 0 {
		opts.MaxDurationMinutes = analysis.DefaultMaxDurationMinutes
	}
	return &SessionService{
		decoder:            decoder,
		maxDurationMinutes: opts.MaxDurationMinutes,
		workers:            opts.Workers,
		skipFailed:         opts.SkipFailed,
	}
}

// AnalyzeFile decodes one session file and summarizes it
func (s *SessionService) AnalyzeFile(path string) (*models.SessionSummary, error) {
	session, err := analysis.LoadSession(s.decoder, path)
	if err != nil {
		return nil, err
	}
	summary := analysis.Summarize(path, session)
	return &summary, nil
}

type fileResult struct {
	summary *models.SessionSummary
	err     error
}

// AnalyzeDirectory analyzes every entry of dir and aggregates the accepted sessions.
// Files are decoded in parallel; aggregation runs in directory order once all are done.
// A statistics error is returned together with the report, whose statistics
// hold every value that could be computed.
func (s *SessionService) AnalyzeDirectory(ctx context.Context, dir string) (*models.Report, error) {
	paths, err := listSessionFiles(dir)
	if err != nil {
		return nil, err
	}
	log.Printf("[SessionService] Analyzing %d files in %s (workers=%d)", len(paths), dir, s.workers)

	results, err := s.analyzeAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		Directory: dir,
		Sessions:  make([]models.SessionSummary, 0, len(paths)),
		CreatedAt: time.Now().UTC(),
	}
	agg := analysis.NewCohortAggregator(s.maxDurationMinutes)

	for i, res := range results {
		if res.err != nil {
			if !s.skipFailed {
				return nil, res.err
			}
			log.Printf("[SessionService] Warning: skipping %s: %v", paths[i], res.err)
			report.Failed = append(report.Failed, models.FailedFile{Path: paths[i], Error: res.err.Error()})
			continue
		}

		summary := *res.summary
		summary.Accepted = agg.Add(summary.Metrics)
		if !summary.Accepted {
			log.Printf("[SessionService] Excluding %s: %.2f minutes exceeds %.2f",
				summary.Path, summary.Metrics.TotalDurationMinutes, s.maxDurationMinutes)
		}
		report.Sessions = append(report.Sessions, summary)
	}

	statistics, err := agg.Finalize()
	report.Statistics = statistics
	if err != nil {
		return report, fmt.Errorf("cohort statistics: %w", err)
	}

	log.Printf("[SessionService] Analysis completed: %d sessions, %d retained, %d failed",
		len(report.Sessions), statistics.Count, len(report.Failed))
	return report, nil
}

// analyzeAll decodes paths on a bounded worker pool. Results keep the order of paths.
func (s *SessionService) analyzeAll(ctx context.Context, paths []string) ([]fileResult, error) {
	results := make([]fileResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				summary, err := s.AnalyzeFile(paths[idx])
				results[idx] = fileResult{summary: summary, err: err}
			}
		}()
	}

	var ctxErr error
dispatch:
	for i := range paths {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if ctxErr != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", ctxErr)
	}
	return results, nil
}

// listSessionFiles returns every non-directory entry of dir, sorted by name.
// No extension filter is applied; the decoder decides what it can read.
func listSessionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// IsDecodeError reports whether err comes from a session file that failed to decode
func IsDecodeError(err error) bool {
	var de *analysis.DecodeError
	return errors.As(err, &de)
}
