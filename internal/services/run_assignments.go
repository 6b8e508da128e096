package services

import (
	"context"
	"fmt"
	"kill-chain-service/internal/ports"
	"log/slog"
)

// LoadInput reads the mission and equipment pools from a repository.
func LoadInput(ctx context.Context, repo ports.RecordRepository) (AssignInput, error) {
	missions, err := repo.ListMissions(ctx)
	if err != nil {
		return AssignInput{}, fmt.Errorf("load input: list missions: %w", err)
	}

	recon, err := repo.ListReconAssets(ctx)
	if err != nil {
		return AssignInput{}, fmt.Errorf("load input: list reconnaissance: %w", err)
	}

	strike, err := repo.ListStrikeAssets(ctx)
	if err != nil {
		return AssignInput{}, fmt.Errorf("load input: list strike: %w", err)
	}

	return AssignInput{Missions: missions, Recon: recon, Strike: strike}, nil
}

// RunAssignments evaluates in, or the repository's records when in is nil,
// and persists the assignments and distance table when store is non-nil.
func RunAssignments(
	ctx context.Context,
	in *AssignInput,
	repo ports.RecordRepository,
	store ports.AssignmentStore,
	opts AssignOptions,
) (*AssignResult, error) {
	if in == nil {
		if repo == nil {
			return nil, fmt.Errorf("run assignments: no input and no repository")
		}
		loaded, err := LoadInput(ctx, repo)
		if err != nil {
			return nil, fmt.Errorf("run assignments: %w", err)
		}
		in = &loaded
	}

	res, err := AssignChains(ctx, *in, opts)
	if err != nil {
		return nil, fmt.Errorf("run assignments: %w", err)
	}

	for _, w := range res.Warnings {
		slog.WarnContext(ctx, "run assignments: equipment dropped", "err", w)
	}

	if store == nil {
		return res, nil
	}

	if err := store.SaveDistances(ctx, res.Distances.Entries()); err != nil {
		return nil, fmt.Errorf("run assignments: save distances: %w", err)
	}
	if err := store.SaveAssignments(ctx, res.Assignments()); err != nil {
		return nil, fmt.Errorf("run assignments: save assignments: %w", err)
	}

	return res, nil
}
