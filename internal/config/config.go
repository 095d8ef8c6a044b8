package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the immutable process configuration snapshot. It is loaded once
// in main and handed to collaborators by value.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8099"`
	BasePath   string `env:"BASE_PATH" envDefault:"/api"`

	// BaseURL is the canonical public URL of the API, used when building
	// absolute links in the discovery document and the foods listing.
	BaseURL   string `env:"BASE_URL" envDefault:"https://api.besinveri.com"`
	StaticURL string `env:"STATIC_URL" envDefault:"https://besinveri.com/static"`

	DatabasePath string `env:"DATABASE_PATH" envDefault:"db/foods.sqlite"`
	FixtureDir   string `env:"FIXTURE_DIR" envDefault:"db/foods"`

	// CacheTTL is the internal lifetime of response cache entries. It is
	// independent of the advertised Cache-Control max-age, which is derived
	// per route class.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`

	RateLimit float64 `env:"RATE_LIMIT" envDefault:"10"`
	RateBurst int     `env:"RATE_BURST" envDefault:"30"`
}

func Load() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
