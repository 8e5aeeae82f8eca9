package analysis

import (
	"testing"

	"github.com/jengzang/fit-session-stats/internal/models"
)

func altitudes(values ...float64) []models.TrackPoint {
	points := make([]models.TrackPoint, len(values))
	for i := range values {
		v := values[i]
		points[i].Altitude = &v
	}
	return points
}

func float(v float64) *float64 { return &v }

func TestComputeElevation(t *testing.T) {
	gain, loss := ComputeElevation(altitudes(100, 100, 90, 95))
	if gain != 5 || loss != 10 {
		t.Fatalf("expected gain 5 loss 10, got %v %v", gain, loss)
	}
}

func TestComputeElevationShortSeries(t *testing.T) {
	for _, points := range [][]models.TrackPoint{nil, altitudes(250)} {
		gain, loss := ComputeElevation(points)
		if gain != 0 || loss != 0 {
			t.Fatalf("expected zero elevation, got %v %v", gain, loss)
		}
	}
}

func TestComputeElevationSkipsMissingAltitude(t *testing.T) {
	points := altitudes(100, 0, 120, 110)
	points[1].Altitude = nil

	gain, loss := ComputeElevation(points)
	if gain != 0 || loss != 10 {
		t.Fatalf("expected gain 0 loss 10, got %v %v", gain, loss)
	}
}

func TestComputeMetrics(t *testing.T) {
	session := &models.Session{
		Laps: []models.LapRecord{
			{Number: 1, TotalDistance: float(1000), TotalElapsedTime: float(600)},
			{Number: 2, TotalDistance: float(500)},
			{Number: 3, TotalElapsedTime: float(300)},
		},
		Points: altitudes(10, 20, 15),
	}

	m := ComputeMetrics(session)
	if m.TotalDistance != 1500 {
		t.Fatalf("expected distance 1500, got %v", m.TotalDistance)
	}
	if m.TotalDurationMinutes != 15 {
		t.Fatalf("expected 15 minutes, got %v", m.TotalDurationMinutes)
	}
	if m.ElevationGain != 10 || m.ElevationLoss != 5 {
		t.Fatalf("unexpected elevation: %+v", m)
	}
}

func TestComputeMetricsEmptySession(t *testing.T) {
	m := ComputeMetrics(&models.Session{})
	if m != (models.SessionMetrics{}) {
		t.Fatalf("expected zero metrics, got %+v", m)
	}
}

func TestSummarize(t *testing.T) {
	session := &models.Session{
		Laps: []models.LapRecord{{Number: 1, TotalDistance: float(42)}},
		Points: []models.TrackPoint{
			{Latitude: 0, Longitude: 0, Lap: 1},
			{Latitude: 0, Longitude: 0.001, Lap: 1},
		},
	}

	s := Summarize("a.fit", session)
	if s.Path != "a.fit" || s.LapCount != 1 || s.PointCount != 2 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.TrackDistance < 100 || s.TrackDistance > 120 {
		t.Fatalf("unexpected track distance: %v", s.TrackDistance)
	}
	if s.Metrics.TotalDistance != 42 {
		t.Fatalf("unexpected metrics: %+v", s.Metrics)
	}
}
