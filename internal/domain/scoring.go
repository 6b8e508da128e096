package domain

import (
	"errors"
	"fmt"
	"math"
)

// ScoringWeights are the composite-score weights. They must sum to 1.
type ScoringWeights struct {
	Time      float64 `yaml:"time" json:"time"`
	Precision float64 `yaml:"precision" json:"precision"`
	Damage    float64 `yaml:"damage" json:"damage"`
}

func DefaultWeights() ScoringWeights {
	return ScoringWeights{Time: 0.3, Precision: 0.3, Damage: 0.4}
}

func (w ScoringWeights) Validate() error {
	if w.Time < 0 || w.Precision < 0 || w.Damage < 0 {
		return errors.New("scoring weights: weights must be non-negative")
	}
	if sum := w.Time + w.Precision + w.Damage; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("scoring weights: sum = %v, want 1", sum)
	}
	return nil
}

// Range is a calibration interval used to normalise one score term.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Normalize maps v onto [0,1] relative to the range. Values outside the range
// extrapolate.
func (r Range) Normalize(v float64) float64 {
	return (v - r.Min) / (r.Max - r.Min)
}

// CalibrationBounds hold the normalisation ranges for time-to-target (hours),
// precision and damage value.
type CalibrationBounds struct {
	Time      Range `yaml:"time" json:"time"`
	Precision Range `yaml:"precision" json:"precision"`
	Damage    Range `yaml:"damage" json:"damage"`
}

func DefaultBounds() CalibrationBounds {
	return CalibrationBounds{
		Time:      Range{Min: 0, Max: 1},
		Precision: Range{Min: 0, Max: 1},
		Damage:    Range{Min: 0, Max: 1},
	}
}

func (b CalibrationBounds) Validate() error {
	for _, r := range []struct {
		name string
		r    Range
	}{
		{"time", b.Time},
		{"precision", b.Precision},
		{"damage", b.Damage},
	} {
		if !(r.r.Max > r.r.Min) {
			return fmt.Errorf("calibration bounds: %s max (%v) must exceed min (%v)", r.name, r.r.Max, r.r.Min)
		}
	}
	return nil
}

// TargetDomains maps a mission target type to the sensor domains able to
// observe it. Unmapped types map to themselves.
type TargetDomains map[string][]string

func (d TargetDomains) For(targetType string) []string {
	if v, ok := d[targetType]; ok && len(v) > 0 {
		return v
	}
	return []string{targetType}
}
