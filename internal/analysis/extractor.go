package analysis

import (
	"math"
	"time"

	"github.com/jengzang/fit-session-stats/internal/frame"
	"github.com/jengzang/fit-session-stats/internal/models"
)

// semicirclesPerCircle is 2^32: a full circle in semicircle units
const semicirclesPerCircle = 1 << 32

// SemicirclesToDegrees converts a semicircle angle to degrees
func SemicirclesToDegrees(s float64) float64 {
	return s * 360 / semicirclesPerCircle
}

// DegreesToSemicircles converts degrees to semicircle units
func DegreesToSemicircles(deg float64) float64 {
	return deg * semicirclesPerCircle / 360
}

// ExtractLap copies the lap fields present on f. Number is left unset;
// the session builder owns lap numbering.
func ExtractLap(f frame.Frame) models.LapRecord {
	var lap models.LapRecord
	lap.StartTime = timeField(f, frame.FieldStartTime)
	lap.TotalDistance = floatField(f, frame.FieldTotalDistance)
	lap.TotalElapsedTime = floatField(f, frame.FieldTotalElapsedTime)
	lap.MaxSpeed = floatField(f, frame.FieldMaxSpeed)
	lap.MaxHeartRate = intField(f, frame.FieldMaxHeartRate)
	lap.AvgHeartRate = floatField(f, frame.FieldAvgHeartRate)
	return lap
}

// ExtractPoint builds a track point from a record frame. It returns false when
// either coordinate is missing or null; such frames are dropped silently.
func ExtractPoint(f frame.Frame) (models.TrackPoint, bool) {
	if !f.HasField(frame.FieldPositionLat) || !f.HasField(frame.FieldPositionLong) {
		return models.TrackPoint{}, false
	}
	lat := floatField(f, frame.FieldPositionLat)
	lon := floatField(f, frame.FieldPositionLong)
	if lat == nil || lon == nil {
		return models.TrackPoint{}, false
	}

	return models.TrackPoint{
		Latitude:  SemicirclesToDegrees(*lat),
		Longitude: SemicirclesToDegrees(*lon),
		Altitude:  floatField(f, frame.FieldAltitude),
		Timestamp: timeField(f, frame.FieldTimestamp),
		HeartRate: intField(f, frame.FieldHeartRate),
		Cadence:   intField(f, frame.FieldCadence),
		Speed:     floatField(f, frame.FieldSpeed),
	}, true
}

func floatField(f frame.Frame, name string) *float64 {
	v, ok := f.Value(name)
	if !ok {
		return nil
	}
	n, ok := toFloat(v)
	if !ok || math.IsNaN(n) {
		return nil
	}
	return &n
}

func intField(f frame.Frame, name string) *int {
	v := floatField(f, name)
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func timeField(f frame.Frame, name string) *time.Time {
	v, ok := f.Value(name)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case time.Time:
		return &t
	case *time.Time:
		if t == nil {
			return nil
		}
		tt := *t
		return &tt
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
