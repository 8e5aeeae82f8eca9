package models

import "time"

// TrackPoint represents one position sample of a recorded session.
// Latitude and Longitude are always set; points without coordinates are never built.
type TrackPoint struct {
	Latitude  float64    `json:"latitude"`  // Degrees
	Longitude float64    `json:"longitude"` // Degrees
	Lap       int        `json:"lap"`       // Lap open when the sample was recorded
	Altitude  *float64   `json:"altitude,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	HeartRate *int       `json:"heart_rate,omitempty"`
	Cadence   *int       `json:"cadence,omitempty"`
	Speed     *float64   `json:"speed,omitempty"`
}

// LapRecord represents the summary fields of one lap.
// Number is assigned while building the session, starting at 1.
type LapRecord struct {
	Number           int        `json:"number"`
	StartTime        *time.Time `json:"start_time,omitempty"`
	TotalDistance    *float64   `json:"total_distance,omitempty"`     // Meters
	TotalElapsedTime *float64   `json:"total_elapsed_time,omitempty"` // Seconds
	MaxSpeed         *float64   `json:"max_speed,omitempty"`
	MaxHeartRate     *int       `json:"max_heart_rate,omitempty"`
	AvgHeartRate     *float64   `json:"avg_heart_rate,omitempty"`
}

// Session holds the laps and points of one session file in recording order
type Session struct {
	Laps   []LapRecord  `json:"laps"`
	Points []TrackPoint `json:"points"`
}
