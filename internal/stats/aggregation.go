package stats

import (
	"errors"
	"math"
)

var (
	// ErrEmpty is returned when a statistic needs at least one value
	ErrEmpty = errors.New("stats: no values")
	// ErrSingleton is returned when the sample standard deviation gets fewer than two values
	ErrSingleton = errors.New("stats: sample standard deviation needs at least two values")
)

// Sum returns the sum of all values
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	return Sum(values) / float64(len(values)), nil
}

// Variance calculates the sample variance (divisor n-1)
func Variance(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	if len(values) < 2 {
		return 0, ErrSingleton
	}

	mean, _ := Mean(values)
	var sumSquaredDiff float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	return sumSquaredDiff / float64(len(values)-1), nil
}

// StdDev calculates the sample standard deviation
func StdDev(values []float64) (float64, error) {
	variance, err := Variance(values)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(variance), nil
}

// Min returns the minimum value
func Min(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}

	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min, nil
}

// Max returns the maximum value
func Max(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max, nil
}
