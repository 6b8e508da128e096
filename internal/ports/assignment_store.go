package ports

import (
	"context"
	"kill-chain-service/internal/domain"
)

// Contract for persisting the outcome of an assignment run.
type AssignmentStore interface {
	// Replace the stored assignments with the rows of the latest run.
	SaveAssignments(ctx context.Context, rows []domain.Assignment) error
	// Store the distance table built for the run.
	SaveDistances(ctx context.Context, entries []domain.DistanceEntry) error
	// Return the assignments of the latest saved run.
	ListAssignments(ctx context.Context) ([]domain.Assignment, error)
	// Return the stored distances to one target, keyed by platform.
	DistancesTo(ctx context.Context, target string) (map[string]float64, error)
}
