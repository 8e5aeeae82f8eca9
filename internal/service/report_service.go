package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jengzang/fit-session-stats/internal/models"
	"github.com/jengzang/fit-session-stats/internal/repository"
	"github.com/jengzang/fit-session-stats/internal/stats"
)

var (
	// ErrEmptyCohort is returned when statistics cannot be computed over the retained sessions
	ErrEmptyCohort = errors.New("not enough sessions for cohort statistics")
	// ErrOutsideRoot is returned for directories that resolve outside the analysis root
	ErrOutsideRoot = errors.New("directory is outside the analysis root")
)

// ReportService runs analyses and keeps their reports
type ReportService struct {
	sessions *SessionService
	repo     *repository.ReportRepository
	root     string
}

// NewReportService creates a new report service. Only directories under root can be analyzed.
func NewReportService(sessions *SessionService, repo *repository.ReportRepository, root string) *ReportService {
	return &ReportService{
		sessions: sessions,
		repo:     repo,
		root:     root,
	}
}

// Analyze analyzes dir and stores the resulting report.
// A relative dir is taken from the analysis root; paths in the report are relative to it.
func (s *ReportService) Analyze(ctx context.Context, dir string) (*models.Report, error) {
	root, target, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}

	report, err := s.sessions.AnalyzeDirectory(ctx, target)
	if report != nil {
		relativize(report, root)
	}
	if err != nil {
		if errors.Is(err, stats.ErrEmpty) || errors.Is(err, stats.ErrSingleton) {
			return report, fmt.Errorf("%w: %v", ErrEmptyCohort, err)
		}
		return nil, err
	}

	if err := s.repo.Save(report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return report, nil
}

// resolve returns the symlink-free root and target directory
func (s *ReportService) resolve(dir string) (string, string, error) {
	root, err := filepath.Abs(s.root)
	if err == nil {
		root, err = filepath.EvalSymlinks(root)
	}
	if err != nil {
		return "", "", fmt.Errorf("analysis root %s: %w", s.root, err)
	}

	target := dir
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	target, err = filepath.EvalSymlinks(target)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}

	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %s", ErrOutsideRoot, dir)
	}
	return root, target, nil
}

func relativize(report *models.Report, root string) {
	rel := func(path string) string {
		if r, err := filepath.Rel(root, path); err == nil {
			return r
		}
		return path
	}

	report.Directory = rel(report.Directory)
	for i := range report.Sessions {
		report.Sessions[i].Path = rel(report.Sessions[i].Path)
	}
	for i := range report.Failed {
		report.Failed[i].Path = rel(report.Failed[i].Path)
	}
}

// GetReport retrieves a stored report
func (s *ReportService) GetReport(id string) (*models.Report, error) {
	return s.repo.GetByID(id)
}

// ListReports lists stored reports, newest first
func (s *ReportService) ListReports(limit int) ([]models.ReportInfo, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	return s.repo.List(limit)
}
