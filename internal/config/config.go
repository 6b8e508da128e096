// Package config loads process settings from the environment (optionally a
// .env file) and the scoring profile from YAML.
//
// Environment keys:
//
//	PORT             HTTP listen port (8080)
//	DB_DRIVER        sqlite or postgres (sqlite)
//	DB_PATH          sqlite file (data/killchain.db)
//	DATABASE_URL     postgres URL, required when DB_DRIVER=postgres
//	SEED_PATH        record file loaded by dbtool and the server on startup
//	SCORING_PROFILE  YAML scoring profile (optional)
//	WORKERS          mission worker count (GOMAXPROCS)
//	MISSION_TIMEOUT  per-mission evaluation timeout (5s)
//	LOG_LEVEL, LOG_FORMAT, LOG_FILE
package config

import (
	"errors"
	"fmt"
	"kill-chain-service/internal/platform/obs"
	"kill-chain-service/internal/services"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDriver       string
	DBPath         string
	DatabaseURL    string
	SeedPath       string
	ProfilePath    string
	Workers        int
	MissionTimeout time.Duration
	Log            obs.LogConfig
	Scoring        ScoringProfile
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads .env into the environment. A missing file is reported
// through the returned bool, not as an error.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads the configuration from the environment and, when
// SCORING_PROFILE is set, the scoring profile file.
func Load() (*Config, error) {
	defaults := services.DefaultAssignOptions()

	cfg := &Config{
		Port:        Get("PORT", "8080"),
		DBDriver:    strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DBPath:      Get("DB_PATH", "data/killchain.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		SeedPath:    Get("SEED_PATH", ""),
		ProfilePath: Get("SCORING_PROFILE", ""),
		Log: obs.LogConfig{
			Level:  Get("LOG_LEVEL", "info"),
			Format: Get("LOG_FORMAT", "text"),
			File:   Get("LOG_FILE", ""),
		},
		Scoring: DefaultScoringProfile(),
	}

	workers, err := strconv.Atoi(Get("WORKERS", strconv.Itoa(defaults.Workers)))
	if err != nil || workers < 1 {
		return nil, fmt.Errorf("load config: WORKERS must be a positive integer, got %q", os.Getenv("WORKERS"))
	}
	cfg.Workers = workers

	timeout, err := time.ParseDuration(Get("MISSION_TIMEOUT", defaults.MissionTimeout.String()))
	if err != nil {
		return nil, fmt.Errorf("load config: MISSION_TIMEOUT: %w", err)
	}
	cfg.MissionTimeout = timeout

	switch cfg.DBDriver {
	case "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("load config: DATABASE_URL is required for DB_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("load config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.ProfilePath != "" {
		p, err := LoadScoringProfile(cfg.ProfilePath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg.Scoring = *p
	}

	return cfg, nil
}

// DSN returns the data source for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// AssignOptions turns the configuration into pipeline options.
func (c *Config) AssignOptions(m services.Metrics) services.AssignOptions {
	opts := services.DefaultAssignOptions()
	opts.Controller = c.Scoring.Controller
	opts.Weights = c.Scoring.Weights
	opts.Bounds = c.Scoring.Bounds
	opts.Domains = c.Scoring.Domains()
	opts.Workers = c.Workers
	opts.MissionTimeout = c.MissionTimeout
	opts.Metrics = m
	return opts
}
