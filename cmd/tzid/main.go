// Package main implements the tzid CLI, which resolves calendar timezone
// identifiers and audits the VTIMEZONE blocks of .ics files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/codeGROOVE-dev/tzid/pkg/httpcache"
	"github.com/codeGROOVE-dev/tzid/pkg/icalzone"
	"github.com/codeGROOVE-dev/tzid/pkg/tzresolve"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], nil, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the exit status. A nil environ reads the
// process environment.
func run(args []string, environ map[string]string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(environ)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	level := new(slog.LevelVar)
	if lv, err := parseLevel(cfg.LogLevel); err == nil {
		level.Set(lv)
	}

	fs := pflag.NewFlagSet("tzid", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tzid [flags] <tzid>...\n\n")
		fs.PrintDefaults()
	}
	fs.StringVarP(&cfg.Calendar, "calendar", "c", cfg.Calendar, "Calendar file or URL whose VTIMEZONE blocks are used (or set TZID_CALENDAR)")
	fs.BoolVarP(&cfg.Strict, "strict", "s", cfg.Strict, "Fail instead of falling back to the default zone (or set TZID_STRICT)")
	fs.StringVar(&cfg.DefaultZone, "default-zone", cfg.DefaultZone, "Zone used when nothing resolves (or set TZID_DEFAULT_ZONE)")
	fs.IntVar(&cfg.CacheSize, "cache-size", cfg.CacheSize, "Maximum memoized finder results, 0 disables (or set TZID_CACHE_SIZE)")
	fs.UintVar(&cfg.FetchAttempts, "fetch-attempts", cfg.FetchAttempts, "Attempts when downloading a calendar (or set TZID_FETCH_ATTEMPTS)")
	fs.StringVar(&cfg.HTTPCacheDir, "http-cache-dir", cfg.HTTPCacheDir, "Directory for downloaded calendars, empty disables (or set TZID_HTTP_CACHE_DIR)")
	fs.DurationVar(&cfg.HTTPCacheTTL, "http-cache-ttl", cfg.HTTPCacheTTL, "How long a downloaded calendar is used without revalidation (or set TZID_HTTP_CACHE_TTL)")
	fs.FuncP("log-level", "l", "Set log level to debug, info, warning or error (or set TZID_LOG_LEVEL)", func(value string) error {
		lv, err := parseLevel(value)
		if err != nil {
			return err
		}
		level.Set(lv)
		return nil
	})
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	def, err := time.LoadLocation(cfg.DefaultZone)
	if err != nil {
		logger.Error("invalid default zone", "zone", cfg.DefaultZone, "error", err)
		return 2
	}

	tzids := fs.Args()
	var container tzresolve.Container
	if cfg.Calendar != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		cal, err := loadCalendar(ctx, cfg, logger)
		if err != nil {
			logger.Error("loading calendar failed", "calendar", cfg.Calendar, "error", err)
			return 2
		}
		container = cal
		if len(tzids) == 0 {
			tzids = cal.TZIDs()
		}
	}
	if len(tzids) == 0 {
		fs.Usage()
		return 2
	}

	resolver := tzresolve.New(
		tzresolve.WithLogger(logger),
		tzresolve.WithDefault(def),
		tzresolve.WithCacheSize(cfg.CacheSize),
	)

	rep := newReporter(stdout, time.Now())
	var fallbacks, failures int
	for _, tzid := range tzids {
		res, err := resolver.Explain(tzid, container, cfg.Strict)
		rep.line(tzid, res, err)
		switch {
		case err != nil:
			failures++
		case res.Stage == tzresolve.StageDefault:
			fallbacks++
		}
	}
	if len(tzids) > 1 {
		rep.summary(len(tzids), fallbacks, failures)
	}

	if failures > 0 {
		return 1
	}
	return 0
}

func loadCalendar(ctx context.Context, cfg config, logger *slog.Logger) (*icalzone.Calendar, error) {
	fetcher := icalzone.NewFetcher(nil, cfg.FetchAttempts, logger)
	if cfg.HTTPCacheDir != "" {
		cache, err := httpcache.New(cfg.HTTPCacheDir, cfg.HTTPCacheTTL, logger)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn("saving calendar cache failed", "error", err)
			}
		}()
		fetcher.UseCache(cache)
	}

	data, err := fetcher.Read(ctx, cfg.Calendar)
	if err != nil {
		return nil, err
	}
	cal, err := icalzone.Parse(data, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("calendar loaded", "calendar", cfg.Calendar, "timezones", len(cal.TimezoneBlocks()), "tzids", len(cal.TZIDs()))
	return cal, nil
}
