package ports

import (
	"context"
	"kill-chain-service/internal/domain"
)

// Port: a boundary for retrieving typed mission and equipment records from a data source.
type RecordRepository interface {
	// Retrieve all missions in evaluation order.
	ListMissions(ctx context.Context) ([]domain.Mission, error)
	// Retrieve the reconnaissance pool.
	ListReconAssets(ctx context.Context) ([]domain.ReconAsset, error)
	// Retrieve the strike pool.
	ListStrikeAssets(ctx context.Context) ([]domain.StrikeAsset, error)
}
