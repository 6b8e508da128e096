package geo

import (
	"kill-chain-service/internal/domain"
	"math"
	"testing"
)

func mustPoint(t *testing.T, lat, lon string) domain.GeoPoint {
	t.Helper()
	p, err := ParsePoint(lat, lon)
	if err != nil {
		t.Fatalf("ParsePoint(%q, %q): %v", lat, lon, err)
	}
	return p
}

func TestHaversineFixture(t *testing.T) {
	p1 := mustPoint(t, "N68°47′48″", "E36°07′42″")
	p2 := mustPoint(t, "N73°29′30″", "E37°28′17″")

	got := Distance(p1, p2, EarthRadiusNauticalMiles)
	const want = 283.07409895260065
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("distance = %.12f, want %.12f", got, want)
	}
	if Round2(got) != 283.07 {
		t.Fatalf("rounded = %v, want 283.07", Round2(got))
	}
}

func TestDistanceSelfIsZero(t *testing.T) {
	points := []domain.GeoPoint{
		{Lat: 0, Lon: 0},
		{Lat: 89.9, Lon: -179.9},
		{Lat: -45.5, Lon: 120.25},
	}
	for _, p := range points {
		for _, r := range []float64{1, EarthRadiusNauticalMiles, 6371} {
			if d := Distance(p, p, r); d != 0 {
				t.Fatalf("Distance(%v, %v, %v) = %v, want 0", p, p, r, d)
			}
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]domain.GeoPoint{
		{{Lat: 10, Lon: 20}, {Lat: -30, Lon: 140}},
		{{Lat: 68.79, Lon: 36.12}, {Lat: 73.49, Lon: 37.47}},
		{{Lat: 0, Lon: 179.5}, {Lat: 0, Lon: -179.5}},
	}
	for _, pr := range pairs {
		a := Haversine(pr[0], pr[1])
		b := Haversine(pr[1], pr[0])
		if math.Abs(a-b) > 1e-9 {
			t.Fatalf("asymmetric distance: %v vs %v", a, b)
		}
	}
}

func TestDistanceAntipodalDoesNotFault(t *testing.T) {
	d := Distance(domain.GeoPoint{Lat: 0, Lon: 0}, domain.GeoPoint{Lat: 0, Lon: 180}, 1)
	if math.IsNaN(d) || math.Abs(d-math.Pi) > 1e-9 {
		t.Fatalf("antipodal distance = %v, want pi", d)
	}
}

func TestDistanceTriangleInequality(t *testing.T) {
	a := domain.GeoPoint{Lat: 10, Lon: 10}
	b := domain.GeoPoint{Lat: 20, Lon: 40}
	c := domain.GeoPoint{Lat: -5, Lon: 60}

	if Haversine(a, c) > Haversine(a, b)+Haversine(b, c)+1e-9 {
		t.Fatal("triangle inequality violated")
	}
}
