package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the record, assignment and distance tables. The DDL is
// shared by SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createMissionsQuery := `
	CREATE TABLE IF NOT EXISTS missions (
		target_name TEXT PRIMARY KEY,
		seq INTEGER NOT NULL,
		category TEXT NOT NULL,
		target_type TEXT NOT NULL,
		target_latitude TEXT NOT NULL,
		target_longitude TEXT NOT NULL,
		target_speed DOUBLE PRECISION NOT NULL,
		target_altitude DOUBLE PRECISION NOT NULL,
		target_destruction_value DOUBLE PRECISION NOT NULL
	);
	`

	createReconQuery := `
	CREATE TABLE IF NOT EXISTS recon_assets (
		platform TEXT NOT NULL,
		sensor_name TEXT NOT NULL,
		seq INTEGER NOT NULL,
		latitude TEXT NOT NULL,
		longitude TEXT NOT NULL,
		altitude DOUBLE PRECISION NOT NULL,
		detection_range DOUBLE PRECISION NOT NULL,
		accuracy DOUBLE PRECISION NOT NULL,
		supported_target_types TEXT NOT NULL,
		PRIMARY KEY (platform, sensor_name)
	);
	`

	createStrikeQuery := `
	CREATE TABLE IF NOT EXISTS strike_assets (
		platform TEXT NOT NULL,
		weapon_name TEXT NOT NULL,
		seq INTEGER NOT NULL,
		target_types TEXT NOT NULL,
		min_range DOUBLE PRECISION NOT NULL,
		max_range DOUBLE PRECISION NOT NULL,
		hit_rate DOUBLE PRECISION NOT NULL,
		max_target_speed DOUBLE PRECISION NOT NULL,
		min_target_height DOUBLE PRECISION NOT NULL,
		max_target_height DOUBLE PRECISION NOT NULL,
		min_launch_height DOUBLE PRECISION NOT NULL,
		max_launch_height DOUBLE PRECISION NOT NULL,
		damage_value DOUBLE PRECISION NOT NULL,
		latitude TEXT,
		longitude TEXT,
		altitude DOUBLE PRECISION,
		PRIMARY KEY (platform, weapon_name)
	);
	`

	createAssignmentsQuery := `
	CREATE TABLE IF NOT EXISTS assignments (
		mission_name TEXT PRIMARY KEY,
		seq INTEGER NOT NULL,
		recon_label TEXT NOT NULL,
		controller_label TEXT NOT NULL,
		strike_label TEXT NOT NULL,
		score DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL,
		reason TEXT NOT NULL
	);
	`

	createDistanceTableQuery := `
	CREATE TABLE IF NOT EXISTS distance_table (
		platform TEXT NOT NULL,
		target_name TEXT NOT NULL,
		nautical_miles DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (platform, target_name)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_distance_table_target_platform
	ON distance_table(target_name, platform);
	`

	statements := []string{
		createMissionsQuery,
		createReconQuery,
		createStrikeQuery,
		createAssignmentsQuery,
		createDistanceTableQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
