package tzresolve

import (
	"log/slog"
	"time"
)

const defaultCacheSize = 1024

// Option configures a Resolver.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	zones     ZoneDatabase
	tables    TableSource
	def       *time.Location
	cacheSize int
	builtins  bool
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithZones replaces the timezone runtime.
func WithZones(zones ZoneDatabase) Option {
	return func(o *options) {
		o.zones = zones
	}
}

// WithTables replaces the vendor name table source.
func WithTables(tables TableSource) Option {
	return func(o *options) {
		o.tables = tables
	}
}

// WithDefault sets the zone returned when nothing resolves and strict mode
// is off. It overrides the default of the zone database.
func WithDefault(loc *time.Location) Option {
	return func(o *options) {
		o.def = loc
	}
}

// WithCacheSize bounds the memo of finder results. Zero disables it.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithoutBuiltins starts the resolver with no finders or guessers.
func WithoutBuiltins() Option {
	return func(o *options) {
		o.builtins = false
	}
}
