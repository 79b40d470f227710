package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v7"
)

type config struct {
	DefaultZone   string        `env:"TZID_DEFAULT_ZONE"   envDefault:"UTC"`
	LogLevel      string        `env:"TZID_LOG_LEVEL"      envDefault:"warn"`
	Calendar      string        `env:"TZID_CALENDAR"`
	HTTPCacheDir  string        `env:"TZID_HTTP_CACHE_DIR"`
	CacheSize     int           `env:"TZID_CACHE_SIZE"     envDefault:"1024"`
	HTTPCacheTTL  time.Duration `env:"TZID_HTTP_CACHE_TTL" envDefault:"1h"`
	FetchAttempts uint          `env:"TZID_FETCH_ATTEMPTS" envDefault:"3"`
	Strict        bool          `env:"TZID_STRICT"         envDefault:"false"`
}

func loadConfig(environ map[string]string) (config, error) {
	cfg := config{}
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.Parse(&cfg, opts); err != nil {
		return config{}, fmt.Errorf("loading configuration: %w", err)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return config{}, fmt.Errorf("TZID_LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	if cfg.CacheSize < 0 {
		return config{}, fmt.Errorf("TZID_CACHE_SIZE must not be negative, got %d", cfg.CacheSize)
	}
	return cfg, nil
}

var errBadLevel = errors.New(`log level must be a prefix of "debug", "info", "warning" or "error"`)

// parseLevel accepts any prefix of a level name, so "d" and "warn" both work.
func parseLevel(value string) (slog.Level, error) {
	lv := strings.ToLower(strings.TrimSpace(value))
	switch {
	case lv == "":
		return 0, errBadLevel
	case strings.HasPrefix("debug", lv):
		return slog.LevelDebug, nil
	case strings.HasPrefix("info", lv):
		return slog.LevelInfo, nil
	case strings.HasPrefix("warning", lv):
		return slog.LevelWarn, nil
	case strings.HasPrefix("error", lv):
		return slog.LevelError, nil
	default:
		return 0, errBadLevel
	}
}
