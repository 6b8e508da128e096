package repositories

import (
	"context"
	"errors"
	"fmt"
	"kill-chain-service/internal/domain"
	"kill-chain-service/internal/platform/obs"
	"strings"
)

// Replace the stored assignments with rows, keeping their order.
func (s *SQLStore) SaveAssignments(ctx context.Context, rows []domain.Assignment) (err error) {
	defer obs.Time(ctx, "store.SaveAssignments")(&err)

	if s.DB == nil {
		return errors.New("sql store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save assignments: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM assignments;"); err != nil {
		return fmt.Errorf("save assignments: clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.Dialect.rebind(`
	INSERT INTO assignments (
		mission_name, seq, recon_label, controller_label, strike_label, score, status, reason
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save assignments: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range rows {
		_, err := stmt.ExecContext(ctx,
			a.MissionName, i, a.ReconLabel, a.ControllerLabel, a.StrikeLabel, a.Score, string(a.Status), a.Reason,
		)
		if err != nil {
			return fmt.Errorf("save assignments: insert mission=%q: %w", a.MissionName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save assignments: commit tx: %w", err)
	}

	return nil
}

// Return the stored assignments in run order.
func (s *SQLStore) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	query := `
	SELECT mission_name, recon_label, controller_label, strike_label, score, status, reason
	FROM assignments
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list assignments: query assignments table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Assignment, 0, 64)
	for rows.Next() {
		var a domain.Assignment
		var status string
		if err := rows.Scan(&a.MissionName, &a.ReconLabel, &a.ControllerLabel, &a.StrikeLabel, &a.Score, &status, &a.Reason); err != nil {
			return nil, fmt.Errorf("list assignments: scan row: %w", err)
		}
		a.Status = domain.Status(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assignments: row iteration: %w", err)
	}

	return out, nil
}

// Store the distance table of a run, overwriting existing pairs.
func (s *SQLStore) SaveDistances(ctx context.Context, entries []domain.DistanceEntry) error {
	if s.DB == nil {
		return errors.New("distance table: db is nil")
	}

	if len(entries) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert distance table: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.Dialect.rebind(`
	INSERT INTO distance_table (platform, target_name, nautical_miles)
	VALUES (?, ?, ?)
	ON CONFLICT (platform, target_name) DO UPDATE
	SET nautical_miles = EXCLUDED.nautical_miles;
	`))
	if err != nil {
		return fmt.Errorf("insert distance table: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if strings.TrimSpace(e.Platform) == "" || strings.TrimSpace(e.Target) == "" {
			return fmt.Errorf("insert distance table: empty key %q|%q", e.Platform, e.Target)
		}

		if _, err := stmt.ExecContext(ctx, e.Platform, e.Target, e.NauticalMiles); err != nil {
			return fmt.Errorf("insert distance table %q|%q: %w", e.Platform, e.Target, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert distance table commit: %w", err)
	}

	return nil
}

// Fetch stored distances for one target, keyed by platform.
func (s *SQLStore) DistancesTo(ctx context.Context, target string) (map[string]float64, error) {
	if s.DB == nil {
		return nil, errors.New("distance table: db is nil")
	}

	if target == "" {
		return nil, errors.New("get distance table: target must not be empty")
	}

	rows, err := s.DB.QueryContext(ctx, s.Dialect.rebind(`
	SELECT platform, nautical_miles
	FROM distance_table
	WHERE target_name = ?;
	`), target)
	if err != nil {
		return nil, fmt.Errorf("get distance table: query distance_table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var platform string
		var nm float64
		if err := rows.Scan(&platform, &nm); err != nil {
			return nil, fmt.Errorf("get distance table: scan rows: %w", err)
		}
		out[platform] = nm
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get distance table: row iteration: %w", err)
	}

	return out, nil
}
