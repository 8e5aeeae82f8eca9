package analysis

import (
	"errors"
	"fmt"

	"github.com/jengzang/fit-session-stats/internal/models"
	"github.com/jengzang/fit-session-stats/internal/stats"
)

// DefaultMaxDurationMinutes is the duration above which a session is left out of the cohort
const DefaultMaxDurationMinutes = 70.0

// Metric identifies one aggregated session metric
type Metric int

const (
	MetricDistance Metric = iota
	MetricDuration
	MetricGain
	MetricLoss
)

func (m Metric) String() string {
	switch m {
	case MetricDistance:
		return "distance"
	case MetricDuration:
		return "duration"
	case MetricGain:
		return "gain"
	case MetricLoss:
		return "loss"
	}
	return fmt.Sprintf("metric(%d)", int(m))
}

// CohortAggregator collects session metrics and reduces them to cohort statistics
type CohortAggregator struct {
	maxDuration float64
	values      [4][]float64
}

// NewCohortAggregator creates an aggregator that drops sessions longer than maxDurationMinutes
func NewCohortAggregator(maxDurationMinutes float64) *CohortAggregator {
	return &CohortAggregator{maxDuration: maxDurationMinutes}
}

// Add records the metrics of one session. It returns false when the session
// exceeds the duration limit and was left out of every statistic.
func (a *CohortAggregator) Add(m models.SessionMetrics) bool {
	if m.TotalDurationMinutes > a.maxDuration {
		return false
	}

	a.values[MetricDistance] = append(a.values[MetricDistance], m.TotalDistance)
	a.values[MetricDuration] = append(a.values[MetricDuration], m.TotalDurationMinutes)
	if m.ElevationGain > 0 {
		a.values[MetricGain] = append(a.values[MetricGain], m.ElevationGain)
	}
	a.values[MetricLoss] = append(a.values[MetricLoss], m.ElevationLoss)
	return true
}

// Count returns the number of retained sessions
func (a *CohortAggregator) Count() int {
	return len(a.values[MetricDuration])
}

// Values returns the retained values of one metric
func (a *CohortAggregator) Values(m Metric) []float64 {
	return a.values[m]
}

// Mean returns the mean of one metric, or stats.ErrEmpty
func (a *CohortAggregator) Mean(m Metric) (float64, error) {
	mean, err := stats.Mean(a.values[m])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", m, err)
	}
	return mean, nil
}

// Summarize computes mean, min, max and sample standard deviation of one metric.
// Whatever is defined is filled in even when an error is returned; errors wrap
// stats.ErrEmpty or stats.ErrSingleton.
func (a *CohortAggregator) Summarize(m Metric) (models.MetricStatistics, error) {
	values := a.values[m]
	s := models.MetricStatistics{Count: len(values)}
	fail := func(err error) (models.MetricStatistics, error) {
		err = fmt.Errorf("%s: %w", m, err)
		s.Error = err.Error()
		return s, err
	}

	var err error
	if s.Mean, err = stats.Mean(values); err != nil {
		return fail(err)
	}
	if s.Min, err = stats.Min(values); err != nil {
		return fail(err)
	}
	if s.Max, err = stats.Max(values); err != nil {
		return fail(err)
	}
	if s.StdDev, err = stats.StdDev(values); err != nil {
		return fail(err)
	}
	return s, nil
}

// Finalize computes the statistics of every metric over everything added so far.
// The result is always returned; the error joins the failure of each metric that
// could not be fully computed.
func (a *CohortAggregator) Finalize() (*models.CohortStatistics, error) {
	result := &models.CohortStatistics{Count: a.Count()}

	targets := []struct {
		metric Metric
		dst    *models.MetricStatistics
	}{
		{MetricDistance, &result.Distance},
		{MetricDuration, &result.Duration},
		{MetricGain, &result.Gain},
		{MetricLoss, &result.Loss},
	}

	var errs []error
	for _, t := range targets {
		s, err := a.Summarize(t.metric)
		*t.dst = s
		if err != nil {
			errs = append(errs, err)
		}
	}

	return result, errors.Join(errs...)
}
