// Package httpcache keeps downloaded calendars on disk so repeated audits of
// the same URL can revalidate with an ETag instead of downloading again.
package httpcache

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/maypok86/otter/v2"
)

const (
	fileName   = "calendars.gob"
	maxEntries = 1_000
)

// Entry is one cached response body.
type Entry struct {
	FetchedAt time.Time
	ETag      string
	Data      []byte
}

// Fresh reports whether the entry is younger than ttl at now.
func (e Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) < ttl
}

// Cache maps URLs to their last successful response. Stale entries are
// kept so they can be revalidated.
type Cache struct {
	cache  *otter.Cache[string, Entry]
	logger *slog.Logger
	now    func() time.Time
	dir    string
	ttl    time.Duration
	mu     sync.Mutex
}

// New opens the cache stored in dir, creating the directory if needed.
func New(dir string, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	c := &Cache{
		cache:  otter.Must(&otter.Options[string, Entry]{MaximumSize: maxEntries}),
		dir:    dir,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
	if err := c.loadFromDisk(); err != nil {
		logger.Warn("failed to load calendar cache from disk", "error", err)
	}
	return c, nil
}

func key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached entry for url and whether it is still fresh.
func (c *Cache) Get(url string) (entry Entry, fresh, found bool) {
	entry, found = c.cache.GetIfPresent(key(url))
	if !found {
		c.logger.Debug("cache miss", "url", url)
		return Entry{}, false, false
	}
	return entry, entry.Fresh(c.now(), c.ttl), true
}

// Set stores a new body for url.
func (c *Cache) Set(url string, data []byte, etag string) {
	c.cache.Set(key(url), Entry{Data: data, ETag: etag, FetchedAt: c.now()})
	c.logger.Debug("cache set", "url", url, "etag", etag, "size", len(data))
}

// Touch marks the entry for url as just revalidated.
func (c *Cache) Touch(url string) {
	k := key(url)
	if entry, ok := c.cache.GetIfPresent(k); ok {
		entry.FetchedAt = c.now()
		c.cache.Set(k, entry)
	}
}

// Len returns the approximate number of cached calendars.
func (c *Cache) Len() int {
	return c.cache.EstimatedSize()
}

func (c *Cache) loadFromDisk() error {
	path := filepath.Join(c.dir, fileName)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening cache file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			c.logger.Debug("failed to close cache file", "error", closeErr)
		}
	}()

	var entries map[string]Entry
	if err := gob.NewDecoder(file).Decode(&entries); err != nil {
		return fmt.Errorf("decoding cache file: %w", err)
	}
	for k, entry := range entries {
		c.cache.Set(k, entry)
	}
	c.logger.Debug("loaded calendar cache", "path", path, "entries", len(entries))
	return nil
}

// Close writes the cache to disk, replacing the previous file atomically.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := filepath.Join(c.dir, fileName)
	tempPath := path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	defer func() {
		if removeErr := os.Remove(tempPath); removeErr != nil && !os.IsNotExist(removeErr) {
			c.logger.Debug("failed to remove temp file", "error", removeErr)
		}
	}()

	entries := make(map[string]Entry)
	for k, entry := range c.cache.All() {
		entries[k] = entry
	}

	if err := gob.NewEncoder(file).Encode(entries); err != nil {
		_ = file.Close() //nolint:errcheck // encode error takes precedence
		return fmt.Errorf("encoding cache file: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close() //nolint:errcheck // sync error takes precedence
		return fmt.Errorf("syncing cache file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing cache file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("replacing cache file: %w", err)
	}

	c.logger.Debug("calendar cache saved", "entries", len(entries), "path", path)
	return nil
}
