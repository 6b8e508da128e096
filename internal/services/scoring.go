package services

import (
	"context"
	"fmt"
	"kill-chain-service/internal/domain"
)

// How many pairs are scored between context checks.
const scoreCheckInterval = 1024

// PairScore is the breakdown of one strike/recon pair's composite score.
type PairScore struct {
	TimeToTarget float64
	Time         float64
	Precision    float64
	Damage       float64
	Total        float64
}

// ScorePair computes the normalised terms and weighted total for one pair at
// the given platform -> target distance.
//
// The damage term rewards a LOWER damage value.
// TODO: confirm the damage direction with the scoring owners; flipping it is a
// one-line change here and in the scoring tests.
func ScorePair(
	strike domain.StrikeAsset,
	recon domain.ReconAsset,
	m domain.Mission,
	distance float64,
	w domain.ScoringWeights,
	b domain.CalibrationBounds,
) PairScore {
	var s PairScore

	// Non-positive closing speed never reaches the target; its time term is 0.
	if closing := strike.MaxTargetSpeed + m.TargetSpeed; closing > 0 {
		s.TimeToTarget = distance / closing
		s.Time = 1 - b.Time.Normalize(s.TimeToTarget)
	}

	s.Precision = b.Precision.Normalize(recon.Accuracy * strike.HitRate)
	s.Damage = 1 - b.Damage.Normalize(strike.DamageValue)

	s.Total = w.Time*s.Time + w.Precision*s.Precision + w.Damage*s.Damage
	return s
}

// SelectBestChain scores every (strike, recon) pair, strike-major, and returns
// the highest-scoring chain. Ties keep the first pair in iteration order. With
// no candidates on either side the unresolved sentinel is returned.
func SelectBestChain(
	ctx context.Context,
	strikes []domain.StrikeAsset,
	recons []domain.ReconAsset,
	m domain.Mission,
	controller string,
	distances *DistanceTable,
	w domain.ScoringWeights,
	b domain.CalibrationBounds,
) (domain.Chain, error) {
	if len(strikes) == 0 || len(recons) == 0 {
		return domain.Unresolved(m, controller), nil
	}

	var (
		found     bool
		bestScore float64
		bestS     int
		bestR     int
		scored    int
	)

	for i, s := range strikes {
		d, err := distances.Lookup(s.Platform, m.TargetName)
		if err != nil {
			return domain.Chain{}, fmt.Errorf("select best chain: %w", err)
		}

		for j, r := range recons {
			if scored%scoreCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return domain.Chain{}, fmt.Errorf("select best chain: after %d pairs: %w", scored, err)
				}
			}
			scored++

			score := ScorePair(s, r, m, d, w, b).Total
			if !found || score > bestScore {
				found = true
				bestScore = score
				bestS, bestR = i, j
			}
		}
	}

	strike := strikes[bestS]
	recon := recons[bestR]
	return domain.Chain{
		Mission:    m,
		Recon:      &recon,
		Controller: controller,
		Strike:     &strike,
		Score:      bestScore,
	}, nil
}
