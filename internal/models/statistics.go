package models

import "time"

// SessionMetrics represents the scalar metrics derived from one session
type SessionMetrics struct {
	TotalDistance        float64 `json:"total_distance"`
	TotalDurationMinutes float64 `json:"total_duration_minutes"`
	ElevationGain        float64 `json:"elevation_gain"`
	ElevationLoss        float64 `json:"elevation_loss"`
}

// SessionSummary represents the analysis result of a single session file
type SessionSummary struct {
	Path          string         `json:"path"`
	LapCount      int            `json:"lap_count"`
	PointCount    int            `json:"point_count"`
	TrackDistance float64        `json:"track_distance"` // Great-circle length over points, meters
	Metrics       SessionMetrics `json:"metrics"`
	Accepted      bool           `json:"accepted"` // False when excluded by the duration filter
}

// MetricStatistics holds summary statistics of one metric across a cohort.
// Mean, Min and Max need at least one value, StdDev at least two; Error says what is missing.
type MetricStatistics struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdev"`
	Error  string  `json:"error,omitempty"`
}

// HasMean reports whether Mean, Min and Max are defined
func (s MetricStatistics) HasMean() bool {
	return s.Count > 0
}

// HasStdDev reports whether StdDev is defined
func (s MetricStatistics) HasStdDev() bool {
	return s.Count > 1
}

// CohortStatistics represents aggregated statistics over the retained sessions.
// Gain.Count may be lower than Count: only sessions with a positive gain contribute to it.
type CohortStatistics struct {
	Count    int              `json:"count"`
	Distance MetricStatistics `json:"distance"`
	Duration MetricStatistics `json:"duration"`
	Gain     MetricStatistics `json:"gain"`
	Loss     MetricStatistics `json:"loss"`
}

// FailedFile records a session file that could not be decoded
type FailedFile struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Report represents the analysis of one directory
type Report struct {
	ID         string            `json:"id,omitempty"`
	Directory  string            `json:"directory"`
	Sessions   []SessionSummary  `json:"sessions"`
	Failed     []FailedFile      `json:"failed,omitempty"`
	Statistics *CohortStatistics `json:"statistics,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ReportInfo is the listing entry of a stored report
type ReportInfo struct {
	ID           string `json:"id"`
	Directory    string `json:"directory"`
	SessionCount int    `json:"session_count"`
	CreatedAt    string `json:"created_at"`
}

// AnalyzeRequest is the body of a directory analysis request
type AnalyzeRequest struct {
	Directory string `json:"directory" binding:"required"`
}
