package services

import (
	"context"
	"errors"
	"fmt"
	"kill-chain-service/internal/domain"
	"kill-chain-service/internal/geo"
	"kill-chain-service/internal/platform/obs"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Default controller label when none is configured.
const DefaultController = "command-control"

type AssignInput struct {
	Missions []domain.Mission
	Recon    []domain.ReconAsset
	Strike   []domain.StrikeAsset
}

type AssignOptions struct {
	Controller     string
	Weights        domain.ScoringWeights
	Bounds         domain.CalibrationBounds
	Domains        domain.TargetDomains
	Radius         float64
	Workers        int
	MissionTimeout time.Duration
	Metrics        Metrics
}

// DefaultAssignOptions returns the reference weights, unit bounds and a
// worker per CPU.
func DefaultAssignOptions() AssignOptions {
	return AssignOptions{
		Controller:     DefaultController,
		Weights:        domain.DefaultWeights(),
		Bounds:         domain.DefaultBounds(),
		Radius:         geo.EarthRadiusNauticalMiles,
		Workers:        runtime.GOMAXPROCS(0),
		MissionTimeout: 5 * time.Second,
	}
}

// AssignResult holds one chain per mission in input order, the tables built
// for the run, and the records dropped along the way.
type AssignResult struct {
	Chains    []domain.Chain
	Distances *DistanceTable
	Heights   HeightTable
	Warnings  []error
}

// Assignments converts the chains to output rows.
func (r *AssignResult) Assignments() []domain.Assignment {
	out := make([]domain.Assignment, 0, len(r.Chains))
	for _, c := range r.Chains {
		out = append(out, c.Assignment())
	}
	return out
}

var errDuplicateMission = errors.New("duplicate target name")

// AssignChains selects a kill chain for every mission.
//
// The distance and height tables are built first by a single writer. Missions
// are then evaluated independently on a bounded worker pool against those
// read-only tables; a mission that fails carries its error in Chain.Err and
// does not affect the others. The returned error is reserved for invalid
// options and cancellation of ctx.
func AssignChains(ctx context.Context, in AssignInput, opts AssignOptions) (_ *AssignResult, err error) {
	defer obs.Time(ctx, "assign.AssignChains")(&err)

	if err := opts.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("assign chains: %w", err)
	}
	if err := opts.Bounds.Validate(); err != nil {
		return nil, fmt.Errorf("assign chains: %w", err)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Metrics == nil {
		opts.Metrics = nopMetrics{}
	}
	if opts.Controller == "" {
		opts.Controller = DefaultController
	}

	pools, warnings := resolvePlatforms(in.Recon, in.Strike)
	distances := NewDistanceTable(opts.Radius)

	chains := make([]domain.Chain, len(in.Missions))
	pending := make([]bool, len(in.Missions))
	seen := make(map[string]struct{}, len(in.Missions))
	platforms := pools.platforms()

	for i, m := range in.Missions {
		if _, dup := seen[m.TargetName]; dup {
			chains[i] = domain.Chain{Mission: m, Controller: opts.Controller,
				Err: fmt.Errorf("mission %q: %w", m.TargetName, errDuplicateMission)}
			continue
		}
		seen[m.TargetName] = struct{}{}

		target, err := geo.ParsePoint(m.TargetLatitudeDMS, m.TargetLongitudeDMS)
		if err != nil {
			chains[i] = domain.Chain{Mission: m, Controller: opts.Controller,
				Err: fmt.Errorf("mission %q: target position: %w", m.TargetName, err)}
			continue
		}

		for _, p := range platforms {
			distances.Compute(p, pools.positions[p], m.TargetName, target)
		}
		pending[i] = true
	}
	opts.Metrics.ObserveDistances(distances.Stats())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, m := range in.Missions {
		if !pending[i] {
			opts.Metrics.ObserveMission(string(domain.StatusFailed), 0)
			continue
		}
		g.Go(func() error {
			chains[i] = evaluateMission(gctx, m, pools, distances, opts)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("assign chains: %w", err)
	}

	return &AssignResult{
		Chains:    chains,
		Distances: distances,
		Heights:   pools.heights,
		Warnings:  warnings,
	}, nil
}

func evaluateMission(
	ctx context.Context,
	m domain.Mission,
	pools equipmentPools,
	distances *DistanceTable,
	opts AssignOptions,
) domain.Chain {
	start := time.Now()

	if opts.MissionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.MissionTimeout)
		defer cancel()
	}

	chain, err := selectForMission(ctx, m, pools, distances, opts)
	if err != nil {
		chain = domain.Chain{Mission: m, Controller: opts.Controller,
			Err: fmt.Errorf("mission %q: %w", m.TargetName, err)}
	}

	opts.Metrics.ObserveMission(string(chain.Status()), time.Since(start))
	return chain
}

func selectForMission(
	ctx context.Context,
	m domain.Mission,
	pools equipmentPools,
	distances *DistanceTable,
	opts AssignOptions,
) (domain.Chain, error) {
	recons, err := FilterReconnaissance(m, pools.recon, distances, opts.Domains)
	if err != nil {
		return domain.Chain{}, err
	}
	strikes, err := FilterStrike(m, pools.strike, distances, pools.heights)
	if err != nil {
		return domain.Chain{}, err
	}
	opts.Metrics.ObserveCandidates(domain.CategoryReconnaissance.String(), len(recons))
	opts.Metrics.ObserveCandidates(domain.CategoryStrike.String(), len(strikes))

	return SelectBestChain(ctx, strikes, recons, m, opts.Controller, distances, opts.Weights, opts.Bounds)
}
