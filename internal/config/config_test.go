package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "production") // skip .env lookup

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ListenAddr != ":8099" {
		t.Errorf("expected default listen addr :8099, got %q", cfg.ListenAddr)
	}
	if cfg.BasePath != "/api" {
		t.Errorf("expected default base path /api, got %q", cfg.BasePath)
	}
	if cfg.BaseURL != "https://api.besinveri.com" {
		t.Errorf("unexpected default base URL %q", cfg.BaseURL)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("expected default cache TTL 10m, got %s", cfg.CacheTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("RATE_BURST", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ListenAddr != ":9000" {
		t.Errorf("expected listen addr :9000, got %q", cfg.ListenAddr)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("expected cache TTL 30s, got %s", cfg.CacheTTL)
	}
	if cfg.RateBurst != 5 {
		t.Errorf("expected rate burst 5, got %d", cfg.RateBurst)
	}
}
