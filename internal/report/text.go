// Package report renders analysis reports as human-readable text
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/jengzang/fit-session-stats/internal/models"
)

// SplitMinutes splits fractional minutes into whole minutes and remaining seconds
func SplitMinutes(v float64) (int, float64) {
	m := math.Floor(v)
	return int(m), (v - m) * 60
}

// FormatDuration renders fractional minutes as "{m}min {s}s"
func FormatDuration(v float64) string {
	m, s := SplitMinutes(v)
	return fmt.Sprintf("%dmin %.0fs", m, s)
}

// WriteSession writes the line of one accepted session
func WriteSession(w io.Writer, m models.SessionMetrics) error {
	_, err := fmt.Fprintf(w, "Total distance: %.2f in %.2f minutes, alt_gain: %.2fm, alt_loss = %.2fm\n",
		m.TotalDistance, m.TotalDurationMinutes, m.ElevationGain, m.ElevationLoss)
	return err
}

// WriteStatistics writes the aggregate and range lines.
// A line is left out when one of its values is undefined for the cohort.
func WriteStatistics(w io.Writer, st *models.CohortStatistics) error {
	d, dur, gain, loss := st.Distance, st.Duration, st.Gain, st.Loss

	var lines []string
	if d.HasMean() && dur.HasMean() {
		lines = append(lines, fmt.Sprintf("Average distance : %.2f km, Average duration: %s",
			d.Mean, FormatDuration(dur.Mean)))
	}
	if gain.HasMean() && loss.HasMean() {
		lines = append(lines, fmt.Sprintf("Average alt_gain : %.2f m, Average alt_loss: %.2f m",
			gain.Mean, loss.Mean))
	}
	if d.HasStdDev() && gain.HasStdDev() {
		lines = append(lines, fmt.Sprintf("Range distance: %.2fm - %.2fm (%.2fm), Range alt_gain: %.2fm - %.2fm (%.2fm)",
			d.Min, d.Max, d.StdDev, gain.Min, gain.Max, gain.StdDev))
	}
	if dur.HasStdDev() {
		lines = append(lines, fmt.Sprintf("Range duration: %s - %s (%s)",
			FormatDuration(dur.Min), FormatDuration(dur.Max), FormatDuration(dur.StdDev)))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport writes every accepted session followed by the statistics, if any
func WriteReport(w io.Writer, r *models.Report) error {
	for _, s := range r.Sessions {
		if !s.Accepted {
			continue
		}
		if err := WriteSession(w, s.Metrics); err != nil {
			return err
		}
	}
	if r.Statistics == nil {
		return nil
	}
	return WriteStatistics(w, r.Statistics)
}
