package main

import (
	"context"
	"database/sql"
	"fmt"
	"kill-chain-service/internal/adapters/repositories"
	"kill-chain-service/internal/api"
	"kill-chain-service/internal/config"
	"kill-chain-service/internal/platform/db"
	"kill-chain-service/internal/platform/obs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires the SQL store behind the ports and starts the HTTP server.
func main() {
	hasEnvFile := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	obs.Setup(cfg.Log)
	if !hasEnvFile {
		slog.Info("No .env file found (using environment variables)")
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	store := repositories.NewSQLStore(conn, repositories.Dialect(cfg.DBDriver))

	// Initialize schema and optionally seed records on startup for local runs.
	if err := initAndSeed(conn, store, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	metrics, err := obs.NewCollector(nil)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(store, store, cfg.AssignOptions(metrics), metrics.Handler(), conn.PingContext)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr, "driver", cfg.DBDriver, "workers", cfg.Workers)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "err", err)
	}
}

func initAndSeed(conn *sql.DB, store *repositories.SQLStore, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}

	if err := repositories.SeedFromFile(context.Background(), store, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
