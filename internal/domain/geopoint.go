package domain

// Immutable geodesic point in signed decimal degrees.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// DistanceEntry is one platform -> target great-circle distance in nautical
// miles, rounded to two decimals.
type DistanceEntry struct {
	Platform      string
	Target        string
	NauticalMiles float64
}
