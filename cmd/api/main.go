package main

import (
	"context"
	"fmt"
	"os"

	"github.com/karahanbuhan/besinveri/internal/config"
	"github.com/karahanbuhan/besinveri/internal/db"
	"github.com/karahanbuhan/besinveri/internal/food"
	"github.com/karahanbuhan/besinveri/internal/ingest"
	"github.com/karahanbuhan/besinveri/internal/logger"
	"github.com/karahanbuhan/besinveri/internal/middleware"
	"github.com/karahanbuhan/besinveri/internal/router"
	"github.com/karahanbuhan/besinveri/internal/status"
)

func main() {

	// ───────────────────────── CONFIG ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// ───────────────────────── DB ─────────────────────────
	conn, err := db.Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatal("could not open database", "path", cfg.DatabasePath, "error", err)
	}
	defer conn.Close()
	log.Info("database ready", "path", cfg.DatabasePath)

	repo := food.NewSQLiteRepository(conn)

	// ───────────────────────── INGESTION ─────────────────────────
	// Runs to completion before the listener starts: no readers race the
	// fixture writes, and a missing or broken fixture dir is non-fatal.
	ingest.NewSeeder(repo, log).Run(context.Background(), cfg.FixtureDir)

	// ───────────────────────── SERVICES ─────────────────────────
	baseURL := cfg.BaseURL + cfg.BasePath
	foodService := food.NewService(repo, baseURL)

	// ───────────────────────── HANDLERS ─────────────────────────
	foodHandler := food.NewHandler(foodService, log)
	statusHandler := status.NewHandler(baseURL)

	// ───────────────────────── HTTP ─────────────────────────
	r := router.New(
		cfg,
		foodHandler,
		statusHandler,
		middleware.NewResponseCache(cfg.BasePath, cfg.CacheTTL),
		middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
	)

	log.Info("API listening", "addr", cfg.ListenAddr, "base_path", cfg.BasePath)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
