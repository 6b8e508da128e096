package geo

import (
	"kill-chain-service/internal/domain"
	"math"
)

// EarthRadiusNauticalMiles is the mean Earth radius in nautical miles.
const EarthRadiusNauticalMiles = 3440.065

// Distance returns the haversine great-circle distance between p1 and p2 in
// the units of radius. The result is not rounded.
func Distance(p1, p2 domain.GeoPoint, radius float64) float64 {
	lat1 := toRad(p1.Lat)
	lat2 := toRad(p2.Lat)
	dLat := lat2 - lat1
	dLon := toRad(p2.Lon - p1.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// Rounding can push a just past 1 for antipodal points.
	a = math.Max(0, math.Min(1, a))

	c := 2 * math.Asin(math.Sqrt(a))
	return radius * c
}

// Haversine is Distance on the nautical-mile Earth radius.
func Haversine(p1, p2 domain.GeoPoint) float64 {
	return Distance(p1, p2, EarthRadiusNauticalMiles)
}

// Round2 rounds to two decimal places, the precision persisted in distance
// tables.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
