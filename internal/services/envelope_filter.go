package services

import (
	"fmt"
	"kill-chain-service/internal/domain"
	"slices"
)

// FilterReconnaissance returns the sensors able to observe the mission's
// target: the sensor supports one of the target's domains and the target lies
// within detection range. Every candidate is judged on its own; the result
// keeps pool order.
func FilterReconnaissance(
	m domain.Mission,
	pool []domain.ReconAsset,
	distances *DistanceTable,
	domains domain.TargetDomains,
) ([]domain.ReconAsset, error) {
	wanted := domains.For(m.TargetType)

	out := make([]domain.ReconAsset, 0, len(pool))
	for _, a := range pool {
		ok, err := reconEligible(m, a, wanted, distances)
		if err != nil {
			return nil, fmt.Errorf("filter reconnaissance %s: %w", a.Label(), err)
		}
		if ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func reconEligible(m domain.Mission, a domain.ReconAsset, wanted []string, distances *DistanceTable) (bool, error) {
	d, err := distances.Lookup(a.Platform, m.TargetName)
	if err != nil {
		return false, err
	}

	supported := slices.ContainsFunc(a.SupportedTargetTypes, func(t string) bool {
		return slices.Contains(wanted, t)
	})
	return supported && a.DetectionRange >= d, nil
}

// Names of the strike envelope constraints, reported by StrikeRejections.
const (
	ConstraintTargetType   = "target_type"
	ConstraintRange        = "range"
	ConstraintHitRate      = "hit_rate"
	ConstraintTargetSpeed  = "target_speed"
	ConstraintTargetHeight = "target_height"
	ConstraintLaunchHeight = "launch_height"
)

type strikeFacts struct {
	distance float64
	height   float64
}

type strikeConstraint struct {
	name string
	ok   func(m domain.Mission, a domain.StrikeAsset, f strikeFacts) bool
}

var strikeConstraints = []strikeConstraint{
	{ConstraintTargetType, func(m domain.Mission, a domain.StrikeAsset, _ strikeFacts) bool {
		return slices.Contains(a.TargetTypes, m.TargetType)
	}},
	{ConstraintRange, func(_ domain.Mission, a domain.StrikeAsset, f strikeFacts) bool {
		return a.MinRange <= f.distance && f.distance <= a.MaxRange
	}},
	{ConstraintHitRate, func(m domain.Mission, a domain.StrikeAsset, _ strikeFacts) bool {
		return a.HitRate >= m.TargetDestructionValue
	}},
	{ConstraintTargetSpeed, func(m domain.Mission, a domain.StrikeAsset, _ strikeFacts) bool {
		return a.MaxTargetSpeed >= m.TargetSpeed
	}},
	{ConstraintTargetHeight, func(m domain.Mission, a domain.StrikeAsset, _ strikeFacts) bool {
		return a.MinTargetHeight <= m.TargetAltitude && m.TargetAltitude <= a.MaxTargetHeight
	}},
	{ConstraintLaunchHeight, func(_ domain.Mission, a domain.StrikeAsset, f strikeFacts) bool {
		return a.MinLaunchHeight <= f.height && f.height <= a.MaxLaunchHeight
	}},
}

// StrikeRejections evaluates every envelope constraint for one weapon and
// returns the names of those it fails. An empty result means eligible.
func StrikeRejections(
	m domain.Mission,
	a domain.StrikeAsset,
	distances *DistanceTable,
	heights HeightTable,
) ([]string, error) {
	d, err := distances.Lookup(a.Platform, m.TargetName)
	if err != nil {
		return nil, err
	}
	h, err := heights.Lookup(a.Platform)
	if err != nil {
		return nil, err
	}

	f := strikeFacts{distance: d, height: h}
	var failed []string
	for _, c := range strikeConstraints {
		if !c.ok(m, a, f) {
			failed = append(failed, c.name)
		}
	}
	return failed, nil
}

// FilterStrike returns the weapons whose engagement envelope covers the
// mission. A weapon failing any constraint is excluded on its own; the rest
// of the pool is still evaluated. The result keeps pool order.
func FilterStrike(
	m domain.Mission,
	pool []domain.StrikeAsset,
	distances *DistanceTable,
	heights HeightTable,
) ([]domain.StrikeAsset, error) {
	out := make([]domain.StrikeAsset, 0, len(pool))
	for _, a := range pool {
		failed, err := StrikeRejections(m, a, distances, heights)
		if err != nil {
			return nil, fmt.Errorf("filter strike %s: %w", a.Label(), err)
		}
		if len(failed) == 0 {
			out = append(out, a)
		}
	}
	return out, nil
}
