package icalzone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/codeGROOVE-dev/tzid/pkg/httpcache"
)

// maxCalendarSize bounds how much of a remote calendar is read.
const maxCalendarSize = 32 << 20

// ErrTooLarge is returned for remote calendars above maxCalendarSize.
var ErrTooLarge = errors.New("calendar too large")

// Fetcher reads calendars from local paths or HTTP(S) URLs.
type Fetcher struct {
	client   *http.Client
	cache    *httpcache.Cache
	logger   *slog.Logger
	attempts uint
	delay    time.Duration
}

// NewFetcher returns a Fetcher making up to attempts tries per URL.
func NewFetcher(client *http.Client, attempts uint, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if attempts == 0 {
		attempts = 1
	}
	return &Fetcher{client: client, attempts: attempts, logger: logger, delay: 250 * time.Millisecond}
}

// UseCache makes the fetcher serve fresh downloads from c and revalidate
// stale ones with If-None-Match.
func (f *Fetcher) UseCache(c *httpcache.Cache) {
	f.cache = c
}

// Read returns the raw calendar at location. webcal:// URLs are fetched
// over https.
func (f *Fetcher) Read(ctx context.Context, location string) ([]byte, error) {
	if rest, ok := strings.CutPrefix(location, "webcal://"); ok {
		location = "https://" + rest
	}
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("reading calendar: %w", err)
		}
		return data, nil
	}
	return f.fetch(ctx, location)
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	var cached httpcache.Entry
	var haveCached bool
	if f.cache != nil {
		entry, fresh, found := f.cache.Get(url)
		if found && fresh {
			f.logger.Debug("calendar served from cache", "url", url)
			return entry.Data, nil
		}
		cached, haveCached = entry, found
	}

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
			}
			req.Header.Set("Accept", "text/calendar")
			req.Header.Set("User-Agent", "tzid/1.0")
			if haveCached && cached.ETag != "" {
				req.Header.Set("If-None-Match", cached.ETag)
			}

			resp, err := f.client.Do(req)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := resp.Body.Close(); closeErr != nil {
					f.logger.Debug("failed to close response body", "error", closeErr)
				}
			}()

			// Retry on server errors and rate limiting
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("HTTP %d", resp.StatusCode)
			}
			if resp.StatusCode == http.StatusNotModified && haveCached {
				f.cache.Touch(url)
				body = cached.Data
				return nil
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("HTTP %d", resp.StatusCode))
			}

			data, err := io.ReadAll(io.LimitReader(resp.Body, maxCalendarSize+1))
			if err != nil {
				return fmt.Errorf("reading body: %w", err)
			}
			if len(data) > maxCalendarSize {
				return retry.Unrecoverable(ErrTooLarge)
			}
			body = data
			if f.cache != nil {
				f.cache.Set(url, data, resp.Header.Get("ETag"))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Debug("retrying calendar fetch", "attempt", n+1, "url", url, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar %s: %w", url, err)
	}
	return body, nil
}
