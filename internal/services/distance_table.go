package services

import (
	"cmp"
	"kill-chain-service/internal/domain"
	"kill-chain-service/internal/geo"
	"slices"
)

type pairKey struct {
	platform string
	target   string
}

// DistanceTable memoises platform -> target great-circle distances for one
// assignment run. Entries are rounded to two decimals and never evicted; the
// table is discarded with the run.
//
// Compute must only be called during the single-writer build phase. After
// that the table is read-only and Lookup is safe for concurrent use.
type DistanceTable struct {
	radius  float64
	entries map[pairKey]float64

	computed int
	reused   int
}

func NewDistanceTable(radius float64) *DistanceTable {
	if radius <= 0 {
		radius = geo.EarthRadiusNauticalMiles
	}
	return &DistanceTable{
		radius:  radius,
		entries: make(map[pairKey]float64),
	}
}

// Compute returns the distance for (platform, target), calculating it only
// the first time the pair is seen.
func (t *DistanceTable) Compute(platform string, from domain.GeoPoint, target string, to domain.GeoPoint) float64 {
	k := pairKey{platform: platform, target: target}
	if d, ok := t.entries[k]; ok {
		t.reused++
		return d
	}

	d := geo.Round2(geo.Distance(from, to, t.radius))
	t.entries[k] = d
	t.computed++
	return d
}

// Lookup returns the stored distance or a MissingLookupError.
func (t *DistanceTable) Lookup(platform, target string) (float64, error) {
	d, ok := t.entries[pairKey{platform: platform, target: target}]
	if !ok {
		return 0, &domain.MissingLookupError{Table: "distance", Key: platform + "|" + target}
	}
	return d, nil
}

func (t *DistanceTable) Len() int { return len(t.entries) }

// Stats reports how many pairs were calculated and how many Compute calls
// were answered from the table.
func (t *DistanceTable) Stats() (computed, reused int) { return t.computed, t.reused }

// Entries returns all rows ordered by target then platform.
func (t *DistanceTable) Entries() []domain.DistanceEntry {
	out := make([]domain.DistanceEntry, 0, len(t.entries))
	for k, d := range t.entries {
		out = append(out, domain.DistanceEntry{Platform: k.platform, Target: k.target, NauticalMiles: d})
	}
	slices.SortFunc(out, func(a, b domain.DistanceEntry) int {
		if c := cmp.Compare(a.Target, b.Target); c != 0 {
			return c
		}
		return cmp.Compare(a.Platform, b.Platform)
	})
	return out
}

// HeightTable maps a platform to its altitude. Built once per run and read
// concurrently afterwards.
type HeightTable map[string]float64

func (h HeightTable) Lookup(platform string) (float64, error) {
	v, ok := h[platform]
	if !ok {
		return 0, &domain.MissingLookupError{Table: "height", Key: platform}
	}
	return v, nil
}
