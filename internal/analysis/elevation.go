package analysis

import "github.com/jengzang/fit-session-stats/internal/models"

// ComputeElevation accumulates ascent and descent over consecutive altitude samples.
// Pairs where either sample lacks an altitude are skipped. A pair with no change
// goes to gain, so every compared pair feeds exactly one accumulator.
func ComputeElevation(points []models.TrackPoint) (gain, loss float64) {
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1].Altitude, points[i].Altitude
		if prev == nil || cur == nil {
			continue
		}
		if diff := *prev - *cur; diff > 0 {
			loss += diff
		} else {
			gain -= diff
		}
	}
	return gain, loss
}
