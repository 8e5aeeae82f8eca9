package spatial

import (
	"github.com/golang/geo/s2"
	"github.com/jengzang/fit-session-stats/internal/models"
)

// EarthRadiusMeters is Earth's mean radius in meters
const EarthRadiusMeters = 6371000.0

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// TrackLength returns the length of the path through points, in meters
func TrackLength(points []models.TrackPoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		total += HaversineDistance(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude)
	}
	return total
}
