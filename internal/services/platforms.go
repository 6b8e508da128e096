package services

import (
	"fmt"
	"kill-chain-service/internal/domain"
	"kill-chain-service/internal/geo"
)

// equipmentPools are the pools that survived platform resolution, together
// with the platform positions and altitudes derived from them.
type equipmentPools struct {
	recon     []domain.ReconAsset
	strike    []domain.StrikeAsset
	positions map[string]domain.GeoPoint
	heights   HeightTable
}

// resolvePlatforms positions every platform from the reconnaissance records
// first and from positioned strike records second. The first position seen
// for a platform wins. Records that cannot be positioned are dropped and
// reported; they never stop the run.
func resolvePlatforms(recons []domain.ReconAsset, strikes []domain.StrikeAsset) (equipmentPools, []error) {
	p := equipmentPools{
		recon:     make([]domain.ReconAsset, 0, len(recons)),
		strike:    make([]domain.StrikeAsset, 0, len(strikes)),
		positions: make(map[string]domain.GeoPoint),
		heights:   make(HeightTable),
	}
	var warnings []error

	place := func(platform string, pt domain.GeoPoint) {
		prev, ok := p.positions[platform]
		if !ok {
			p.positions[platform] = pt
			return
		}
		if prev != pt {
			warnings = append(warnings, fmt.Errorf("platform %q: conflicting positions, keeping %s %s",
				platform, geo.FormatDMS(prev.Lat, true), geo.FormatDMS(prev.Lon, false)))
		}
	}

	for _, a := range recons {
		pt, err := geo.ParsePoint(a.LatitudeDMS, a.LongitudeDMS)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("drop reconnaissance %s: %w", a.Label(), err))
			continue
		}
		place(a.Platform, pt)
		if _, ok := p.heights[a.Platform]; !ok {
			p.heights[a.Platform] = a.Altitude
		}
		p.recon = append(p.recon, a)
	}

	for _, a := range strikes {
		if a.HasPosition() {
			pt, err := geo.ParsePoint(a.LatitudeDMS, a.LongitudeDMS)
			if err != nil {
				warnings = append(warnings, fmt.Errorf("drop strike %s: %w", a.Label(), err))
				continue
			}
			place(a.Platform, pt)
		}
		if a.HasAltitude {
			if _, ok := p.heights[a.Platform]; !ok {
				p.heights[a.Platform] = a.Altitude
			}
		}
	}

	// A second pass so strike records may rely on a position or altitude
	// supplied by a later strike record on the same platform.
	for _, a := range strikes {
		if a.HasPosition() {
			if _, err := geo.ParsePoint(a.LatitudeDMS, a.LongitudeDMS); err != nil {
				continue
			}
		}
		if _, ok := p.positions[a.Platform]; !ok {
			warnings = append(warnings, fmt.Errorf("drop strike %s: %w", a.Label(),
				&domain.MissingLookupError{Table: "position", Key: a.Platform}))
			continue
		}
		if _, ok := p.heights[a.Platform]; !ok {
			warnings = append(warnings, fmt.Errorf("drop strike %s: %w", a.Label(),
				&domain.MissingLookupError{Table: "height", Key: a.Platform}))
			continue
		}
		p.strike = append(p.strike, a)
	}

	return p, warnings
}

// platforms returns the distinct platforms of both pools in first-seen order.
func (p equipmentPools) platforms() []string {
	seen := make(map[string]struct{}, len(p.positions))
	out := make([]string, 0, len(p.positions))
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, a := range p.recon {
		add(a.Platform)
	}
	for _, a := range p.strike {
		add(a.Platform)
	}
	return out
}
