package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jengzang/fit-session-stats/internal/models"
)

// ErrReportNotFound is returned when no report has the requested ID
var ErrReportNotFound = errors.New("report not found")

// ReportRepository handles database operations for analysis reports
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save stores a report, assigning it a new ID
func (r *ReportRepository) Save(report *models.Report) error {
	report.ID = uuid.NewString()

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	query := `INSERT INTO reports (id, directory, session_count, payload, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.Exec(query, report.ID, report.Directory, len(report.Sessions), string(payload),
		report.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// GetByID retrieves a report by ID
func (r *ReportRepository) GetByID(id string) (*models.Report, error) {
	var payload string
	err := r.db.QueryRow("SELECT payload FROM reports WHERE id = ?", id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}

// List returns stored reports, newest first
func (r *ReportRepository) List(limit int) ([]models.ReportInfo, error) {
	query := `SELECT id, directory, session_count, created_at
		FROM reports ORDER BY created_at DESC, rowid DESC LIMIT ?`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	infos := []models.ReportInfo{}
	for rows.Next() {
		var info models.ReportInfo
		if err := rows.Scan(&info.ID, &info.Directory, &info.SessionCount, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
