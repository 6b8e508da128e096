package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"kill-chain-service/internal/domain"
	"kill-chain-service/internal/platform/obs"
)

// SQL-backed implementation of the RecordRepository and AssignmentStore ports.
type SQLStore struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLStore(db *sql.DB, d Dialect) *SQLStore {
	if d == "" {
		d = DialectSQLite
	}
	return &SQLStore{DB: db, Dialect: d}
}

// Return all missions in stored order.
func (s *SQLStore) ListMissions(ctx context.Context) (_ []domain.Mission, err error) {
	defer obs.Time(ctx, "store.ListMissions")(&err)

	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	query := `
	SELECT
		category,
		target_name,
		target_type,
		target_latitude,
		target_longitude,
		target_speed,
		target_altitude,
		target_destruction_value
	FROM missions
	ORDER BY seq, target_name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list missions: query missions table: %w", err)
	}
	defer rows.Close()

	missions := make([]domain.Mission, 0, 64)
	for rows.Next() {
		var m domain.Mission
		var category string
		err := rows.Scan(
			&category,
			&m.TargetName,
			&m.TargetType,
			&m.TargetLatitudeDMS,
			&m.TargetLongitudeDMS,
			&m.TargetSpeed,
			&m.TargetAltitude,
			&m.TargetDestructionValue,
		)
		if err != nil {
			return nil, fmt.Errorf("list missions: scan row: %w", err)
		}
		if m.Category, err = domain.ParseCategory("mission", category); err != nil {
			return nil, fmt.Errorf("list missions: %q: %w", m.TargetName, err)
		}
		missions = append(missions, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list missions: row iteration: %w", err)
	}

	return missions, nil
}

// Return the reconnaissance pool in stored order.
func (s *SQLStore) ListReconAssets(ctx context.Context) ([]domain.ReconAsset, error) {
	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	query := `
	SELECT
		platform,
		sensor_name,
		latitude,
		longitude,
		altitude,
		detection_range,
		accuracy,
		supported_target_types
	FROM recon_assets
	ORDER BY seq, platform, sensor_name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reconnaissance: query recon_assets table: %w", err)
	}
	defer rows.Close()

	assets := make([]domain.ReconAsset, 0, 32)
	for rows.Next() {
		var a domain.ReconAsset
		var types string
		err := rows.Scan(
			&a.Platform,
			&a.SensorName,
			&a.LatitudeDMS,
			&a.LongitudeDMS,
			&a.Altitude,
			&a.DetectionRange,
			&a.Accuracy,
			&types,
		)
		if err != nil {
			return nil, fmt.Errorf("list reconnaissance: scan row: %w", err)
		}
		a.SupportedTargetTypes = domain.SplitMulti(types)
		assets = append(assets, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reconnaissance: row iteration: %w", err)
	}

	return assets, nil
}

// Return the strike pool in stored order.
func (s *SQLStore) ListStrikeAssets(ctx context.Context) ([]domain.StrikeAsset, error) {
	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	query := `
	SELECT
		platform,
		weapon_name,
		target_types,
		min_range,
		max_range,
		hit_rate,
		max_target_speed,
		min_target_height,
		max_target_height,
		min_launch_height,
		max_launch_height,
		damage_value,
		latitude,
		longitude,
		altitude
	FROM strike_assets
	ORDER BY seq, platform, weapon_name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list strike: query strike_assets table: %w", err)
	}
	defer rows.Close()

	assets := make([]domain.StrikeAsset, 0, 32)
	for rows.Next() {
		var a domain.StrikeAsset
		var types string
		var lat, lon sql.NullString
		var alt sql.NullFloat64
		err := rows.Scan(
			&a.Platform,
			&a.WeaponName,
			&types,
			&a.MinRange,
			&a.MaxRange,
			&a.HitRate,
			&a.MaxTargetSpeed,
			&a.MinTargetHeight,
			&a.MaxTargetHeight,
			&a.MinLaunchHeight,
			&a.MaxLaunchHeight,
			&a.DamageValue,
			&lat,
			&lon,
			&alt,
		)
		if err != nil {
			return nil, fmt.Errorf("list strike: scan row: %w", err)
		}
		a.TargetTypes = domain.SplitMulti(types)
		a.LatitudeDMS, a.LongitudeDMS = lat.String, lon.String
		a.Altitude, a.HasAltitude = alt.Float64, alt.Valid
		assets = append(assets, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list strike: row iteration: %w", err)
	}

	return assets, nil
}

// SaveRecords replaces the stored missions and equipment pools.
func (s *SQLStore) SaveRecords(
	ctx context.Context,
	missions []domain.Mission,
	recon []domain.ReconAsset,
	strike []domain.StrikeAsset,
) (err error) {
	defer obs.Time(ctx, "store.SaveRecords")(&err)

	if s.DB == nil {
		return errors.New("sql store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save records: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"missions", "recon_assets", "strike_assets"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+";"); err != nil {
			return fmt.Errorf("save records: clear %s: %w", table, err)
		}
	}

	missionStmt, err := tx.PrepareContext(ctx, s.Dialect.rebind(`
	INSERT INTO missions (
		target_name, seq, category, target_type, target_latitude,
		target_longitude, target_speed, target_altitude, target_destruction_value
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save records: prepare mission insert: %w", err)
	}
	defer missionStmt.Close()

	for i, m := range missions {
		_, err := missionStmt.ExecContext(ctx,
			m.TargetName, i, m.Category.String(), m.TargetType, m.TargetLatitudeDMS,
			m.TargetLongitudeDMS, m.TargetSpeed, m.TargetAltitude, m.TargetDestructionValue,
		)
		if err != nil {
			return fmt.Errorf("save records: insert mission %q: %w", m.TargetName, err)
		}
	}

	reconStmt, err := tx.PrepareContext(ctx, s.Dialect.rebind(`
	INSERT INTO recon_assets (
		platform, sensor_name, seq, latitude, longitude,
		altitude, detection_range, accuracy, supported_target_types
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save records: prepare reconnaissance insert: %w", err)
	}
	defer reconStmt.Close()

	for i, a := range recon {
		_, err := reconStmt.ExecContext(ctx,
			a.Platform, a.SensorName, i, a.LatitudeDMS, a.LongitudeDMS,
			a.Altitude, a.DetectionRange, a.Accuracy, domain.JoinMulti(a.SupportedTargetTypes),
		)
		if err != nil {
			return fmt.Errorf("save records: insert reconnaissance %s: %w", a.Label(), err)
		}
	}

	strikeStmt, err := tx.PrepareContext(ctx, s.Dialect.rebind(`
	INSERT INTO strike_assets (
		platform, weapon_name, seq, target_types, min_range, max_range, hit_rate,
		max_target_speed, min_target_height, max_target_height,
		min_launch_height, max_launch_height, damage_value,
		latitude, longitude, altitude
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save records: prepare strike insert: %w", err)
	}
	defer strikeStmt.Close()

	for i, a := range strike {
		var lat, lon sql.NullString
		if a.HasPosition() {
			lat = sql.NullString{String: a.LatitudeDMS, Valid: true}
			lon = sql.NullString{String: a.LongitudeDMS, Valid: true}
		}
		alt := sql.NullFloat64{Float64: a.Altitude, Valid: a.HasAltitude}

		_, err := strikeStmt.ExecContext(ctx,
			a.Platform, a.WeaponName, i, domain.JoinMulti(a.TargetTypes), a.MinRange, a.MaxRange, a.HitRate,
			a.MaxTargetSpeed, a.MinTargetHeight, a.MaxTargetHeight,
			a.MinLaunchHeight, a.MaxLaunchHeight, a.DamageValue,
			lat, lon, alt,
		)
		if err != nil {
			return fmt.Errorf("save records: insert strike %s: %w", a.Label(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save records: commit tx: %w", err)
	}

	return nil
}
