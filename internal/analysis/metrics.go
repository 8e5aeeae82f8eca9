package analysis

import (
	"github.com/jengzang/fit-session-stats/internal/models"
	"github.com/jengzang/fit-session-stats/internal/spatial"
)

// ComputeMetrics derives the per-session metrics. Absent lap values count as zero.
func ComputeMetrics(session *models.Session) models.SessionMetrics {
	var distance, elapsed float64
	for _, lap := range session.Laps {
		if lap.TotalDistance != nil {
			distance += *lap.TotalDistance
		}
		if lap.TotalElapsedTime != nil {
			elapsed += *lap.TotalElapsedTime
		}
	}

	gain, loss := ComputeElevation(session.Points)

	return models.SessionMetrics{
		TotalDistance:        distance,
		TotalDurationMinutes: elapsed / 60,
		ElevationGain:        gain,
		ElevationLoss:        loss,
	}
}

// Summarize builds the summary of one session file
func Summarize(path string, session *models.Session) models.SessionSummary {
	return models.SessionSummary{
		Path:          path,
		LapCount:      len(session.Laps),
		PointCount:    len(session.Points),
		TrackDistance: spatial.TrackLength(session.Points),
		Metrics:       ComputeMetrics(session),
	}
}
