package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/jengzang/fit-session-stats/internal/models"
)

func TestSplitMinutes(t *testing.T) {
	m, s := SplitMinutes(31.5)
	if m != 31 || s != 30 {
		t.Fatalf("expected 31min 30s, got %d %v", m, s)
	}

	m, s = SplitMinutes(2.25)
	if m != 2 || math.Abs(s-15) > 1e-9 {
		t.Fatalf("expected 2min 15s, got %d %v", m, s)
	}

	if got := FormatDuration(28); got != "28min 0s" {
		t.Fatalf("unexpected format: %q", got)
	}
}

func TestWriteReport(t *testing.T) {
	r := &models.Report{
		Sessions: []models.SessionSummary{
			{Accepted: true, Metrics: models.SessionMetrics{TotalDistance: 10, TotalDurationMinutes: 30, ElevationGain: 50, ElevationLoss: 20}},
			{Accepted: false, Metrics: models.SessionMetrics{TotalDistance: 99, TotalDurationMinutes: 71}},
		},
		Statistics: &models.CohortStatistics{
			Count:    2,
			Distance: models.MetricStatistics{Count: 2, Mean: 10, Min: 8, Max: 12, StdDev: 2},
			Duration: models.MetricStatistics{Count: 2, Mean: 31.5, Min: 28, Max: 35, StdDev: 3.5},
			Gain:     models.MetricStatistics{Count: 2, Mean: 35, Min: 20, Max: 50, StdDev: 21.21},
			Loss:     models.MetricStatistics{Count: 2, Mean: 15},
		},
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"Total distance: 10.00 in 30.00 minutes, alt_gain: 50.00m, alt_loss = 20.00m",
		"Average distance : 10.00 km, Average duration: 31min 30s",
		"Average alt_gain : 35.00 m, Average alt_loss: 15.00 m",
		"Range distance: 8.00m - 12.00m (2.00m), Range alt_gain: 20.00m - 50.00m (21.21m)",
		"Range duration: 28min 0s - 35min 0s (3min 30s)",
	}, "\n") + "\n"

	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteStatisticsPartial(t *testing.T) {
	st := &models.CohortStatistics{
		Count:    3,
		Distance: models.MetricStatistics{Count: 3, Mean: 10, Min: 8, Max: 12, StdDev: 2},
		Duration: models.MetricStatistics{Count: 3, Mean: 31, Min: 28, Max: 35, StdDev: 3.61},
		Gain:     models.MetricStatistics{Count: 1, Mean: 50, Min: 50, Max: 50, Error: "gain: stats: sample standard deviation needs at least two values"},
		Loss:     models.MetricStatistics{Count: 3, Mean: 15, Min: 10, Max: 20, StdDev: 5},
	}

	var buf bytes.Buffer
	if err := WriteStatistics(&buf, st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Average distance : 10.00 km, Average duration: 31min 0s\n") {
		t.Fatalf("missing distance average:\n%s", out)
	}
	if !strings.Contains(out, "Average alt_gain : 50.00 m, Average alt_loss: 15.00 m\n") {
		t.Fatalf("missing gain average:\n%s", out)
	}
	if strings.Contains(out, "Range distance") {
		t.Fatalf("range line printed without a gain stdev:\n%s", out)
	}
	if !strings.Contains(out, "Range duration: 28min 0s - 35min 0s") {
		t.Fatalf("missing duration range:\n%s", out)
	}

	buf.Reset()
	if err := WriteStatistics(&buf, &models.CohortStatistics{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no lines for an empty cohort, got %q", buf.String())
	}
}
