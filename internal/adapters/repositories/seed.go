package repositories

import (
	"context"
	"fmt"
	"kill-chain-service/internal/adapters/records"
	"log/slog"
)

// Populate the database with the records of a YAML or XLSX file. Rows that
// fail validation are logged and skipped; the stored pools are replaced.
func SeedFromFile(ctx context.Context, store *SQLStore, path string) error {
	recs, err := records.LoadFile(path)
	if err != nil {
		return fmt.Errorf("seed records: %w", err)
	}

	for _, w := range recs.Warnings {
		slog.WarnContext(ctx, "seed records: row skipped", "path", path, "err", w)
	}

	if err := store.SaveRecords(ctx, recs.Missions, recs.Recon, recs.Strike); err != nil {
		return fmt.Errorf("seed records: %w", err)
	}

	slog.InfoContext(ctx, "seed records: done",
		"path", path,
		"missions", len(recs.Missions),
		"reconnaissance", len(recs.Recon),
		"strike", len(recs.Strike),
		"skipped", len(recs.Warnings),
	)
	return nil
}
