package services

import (
	"errors"
	"kill-chain-service/internal/domain"
	"kill-chain-service/internal/geo"
	"testing"
)

func TestDistanceTableMemoizes(t *testing.T) {
	from, err := geo.ParsePoint(platformLat, platformLon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	to, err := geo.ParsePoint(targetLat, targetLon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table := NewDistanceTable(geo.EarthRadiusNauticalMiles)
	first := table.Compute("DDG-51", from, "T-1", to)
	second := table.Compute("DDG-51", from, "T-1", to)

	if first != fixtureDistance || second != fixtureDistance {
		t.Fatalf("distances = %v, %v, want %v", first, second, fixtureDistance)
	}
	computed, reused := table.Stats()
	if computed != 1 || reused != 1 {
		t.Fatalf("stats = (%d, %d), want (1, 1)", computed, reused)
	}
	if table.Len() != 1 {
		t.Fatalf("len = %d, want 1", table.Len())
	}
}

func TestDistanceTableLookupMissing(t *testing.T) {
	table := NewDistanceTable(0)
	_, err := table.Lookup("ghost", "T-1")

	var ml *domain.MissingLookupError
	if !errors.As(err, &ml) {
		t.Fatalf("err = %v, want MissingLookupError", err)
	}
	if ml.Table != "distance" {
		t.Fatalf("table = %q, want distance", ml.Table)
	}
}

func TestDistanceTableEntriesSorted(t *testing.T) {
	table := NewDistanceTable(0)
	table.set("B", "T-2", 2)
	table.set("A", "T-2", 1)
	table.set("C", "T-1", 3)

	got := table.Entries()
	want := []domain.DistanceEntry{
		{Platform: "C", Target: "T-1", NauticalMiles: 3},
		{Platform: "A", Target: "T-2", NauticalMiles: 1},
		{Platform: "B", Target: "T-2", NauticalMiles: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
