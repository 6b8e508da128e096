package main

import (
	"context"
	"flag"
	"kill-chain-service/internal/adapters/repositories"
	"kill-chain-service/internal/config"
	"kill-chain-service/internal/platform/db"
	"kill-chain-service/internal/platform/obs"
	"log"
	"log/slog"
	"os"
)

// dbtool prepares the record store: "init" creates the schema, "seed" also
// loads a YAML or XLSX record file.
func main() {
	if !config.LoadDotEnv() {
		log.Println("No .env file found (using environment variables)")
	}

	obs.Setup(obs.LogConfig{
		Level:  config.Get("LOG_LEVEL", "info"),
		Format: config.Get("LOG_FORMAT", "text"),
	})

	driver := flag.String("driver", config.Get("DB_DRIVER", db.DriverSQLite), "database driver (sqlite or postgres)")
	dsn := flag.String("dsn", "", "sqlite path or postgres URL (defaults to DB_PATH or DATABASE_URL)")
	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/records.yaml"), "record file for the seed command")
	flag.Usage = func() {
		log.Printf("usage: %s [flags] init|seed", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd != "init" && cmd != "seed" {
		flag.Usage()
		os.Exit(2)
	}

	if *dsn == "" {
		if *driver == db.DriverPostgres {
			*dsn = config.Get("DATABASE_URL", "")
		} else {
			*dsn = config.Get("DB_PATH", "data/killchain.db")
		}
	}
	if *dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(*driver, *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	slog.Info("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	slog.Info("Schema ready.")

	if cmd != "seed" {
		return
	}

	slog.Info("Seeding database...", "path", *seedPath)
	store := repositories.NewSQLStore(conn, repositories.Dialect(*driver))
	if err := repositories.SeedFromFile(context.Background(), store, *seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	slog.Info("Seeding complete.")
}
