// Package tzresolve maps the timezone identifiers found in calendar data to
// usable zones.
//
// Calendar producers rarely stick to IANA names. Outlook writes Windows
// display names, Lotus Notes and old Exchange servers have their own
// vocabularies, and custom VTIMEZONE blocks carry vendor hints instead of a
// name. A Resolver tries a list of finders on the identifier, then a list of
// guessers on any embedded VTIMEZONE declaring that identifier, and finally
// falls back to a default zone unless strict mode is requested.
package tzresolve

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/codeGROOVE-dev/tzid/pkg/tzdata"
	"github.com/maypok86/otter/v2"
)

// Stage names the part of the pipeline that produced a result.
type Stage string

// Pipeline stages.
const (
	StageFinder  Stage = "finder"
	StageGuesser Stage = "guesser"
	StageDefault Stage = "default"
)

// Result describes how an identifier was resolved.
type Result struct {
	Reference Reference
	Strategy  string // registration key; empty for StageDefault
	Stage     Stage
}

type registration[T any] struct {
	impl T
	key  string
}

type memoKey struct {
	tzid   string
	strict bool
}

// snapshot is never modified after it is published.
type snapshot struct {
	memo     *otter.Cache[memoKey, Result]
	finders  []registration[Finder]
	guessers []registration[Guesser]
}

// Resolver runs the finder and guesser chains.
//
// Resolve may be called from any number of goroutines. AddFinder and
// AddGuesser publish a new strategy list atomically; a Resolve already in
// progress keeps using the list it started with.
type Resolver struct {
	logger    *slog.Logger
	zones     ZoneDatabase
	snap      atomic.Pointer[snapshot]
	def       Reference
	cacheSize int
	mu        sync.Mutex
}

// New returns a Resolver with the built-in strategies registered, finders
// in the order tzid, tzmap, decorated, offset and guessers in the order
// lic, msTzId.
func New(opts ...Option) *Resolver {
	o := &options{cacheSize: defaultCacheSize, builtins: true}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.zones == nil {
		o.zones = NewSystemZones(o.def)
	}
	if o.tables == nil {
		o.tables = tzdata.Default()
	}

	r := &Resolver{
		logger:    o.logger,
		zones:     o.zones,
		def:       o.zones.Default(),
		cacheSize: o.cacheSize,
	}
	if o.def != nil {
		r.def = NamedReference(o.def.String(), o.def)
	}

	var finders []registration[Finder]
	var guessers []registration[Guesser]
	if o.builtins {
		direct := NewDirectFinder(o.zones)
		table := NewTableFinder(o.tables, o.zones)
		decorated := NewDecoratedFinder(o.tables, o.zones)
		offset := NewOffsetFinder(o.zones)
		finders = []registration[Finder]{
			{key: FinderDirect, impl: direct},
			{key: FinderTable, impl: table},
			{key: FinderDecorated, impl: decorated},
			{key: FinderOffset, impl: offset},
		}
		guessers = []registration[Guesser]{
			// The LIC hint goes through the built-in finders only, so a
			// guess never depends on strategies registered later.
			{key: GuesserLic, impl: NewLicGuesser(Chain{direct, table, decorated, offset})},
			{key: GuesserMicrosoft, impl: NewMicrosoftGuesser(o.zones)},
		}
	}
	r.snap.Store(r.newSnapshot(finders, guessers))
	return r
}

// AddFinder registers a finder under key. A new key is appended and runs
// after every existing finder. An existing key keeps its position and only
// its implementation is replaced.
func (r *Resolver) AddFinder(key string, f Finder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	r.snap.Store(r.newSnapshot(register(cur.finders, key, f), cur.guessers))
	r.logger.Debug("timezone finder registered", "key", key)
}

// AddGuesser registers a guesser under key with the same ordering rules as
// AddFinder.
func (r *Resolver) AddGuesser(key string, g Guesser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	r.snap.Store(r.newSnapshot(cur.finders, register(cur.guessers, key, g)))
	r.logger.Debug("timezone guesser registered", "key", key)
}

// Finders returns the registered finder keys in priority order.
func (r *Resolver) Finders() []string {
	return keys(r.snap.Load().finders)
}

// Guessers returns the registered guesser keys in priority order.
func (r *Resolver) Guessers() []string {
	return keys(r.snap.Load().guessers)
}

// Default returns the zone used when nothing resolves.
func (r *Resolver) Default() Reference {
	return r.def
}

// Resolve returns the zone for tzid.
//
// c may be nil. When it is not, embedded timezone blocks whose TZID equals
// tzid exactly are inspected after every finder failed. With strict unset
// Resolve only fails when the vendor tables cannot be loaded; otherwise it
// returns an *UncertainError when nothing matched.
func (r *Resolver) Resolve(tzid string, c Container, strict bool) (Reference, error) {
	res, err := r.Explain(tzid, c, strict)
	if err != nil {
		return Reference{}, err
	}
	return res.Reference, nil
}

// Explain resolves like Resolve and also reports which strategy matched.
func (r *Resolver) Explain(tzid string, c Container, strict bool) (Result, error) {
	snap := r.snap.Load()

	res, ok, err := r.runFinders(snap, tzid, strict)
	if err != nil || ok {
		return res, err
	}

	if c != nil {
		res, ok, err := r.runGuessers(snap, tzid, c, strict)
		if err != nil || ok {
			return res, err
		}
	}

	if strict {
		return Result{}, &UncertainError{TZID: tzid}
	}
	r.logger.Debug("timezone not resolved, using default", "tzid", tzid, "default", r.def.Name())
	return Result{Reference: r.def, Stage: StageDefault}, nil
}

func (r *Resolver) runFinders(snap *snapshot, tzid string, strict bool) (Result, bool, error) {
	key := memoKey{tzid: tzid, strict: strict}
	if snap.memo != nil {
		if res, ok := snap.memo.GetIfPresent(key); ok {
			return res, true, nil
		}
	}

	for _, reg := range snap.finders {
		ref, ok, err := reg.impl.Find(tzid, strict)
		if err != nil {
			r.logFailure(err, "finder", reg.key, tzid)
			return Result{}, false, fmt.Errorf("timezone finder %s: %w", reg.key, err)
		}
		if !ok || ref.IsZero() {
			continue
		}
		res := Result{Reference: ref, Strategy: reg.key, Stage: StageFinder}
		if snap.memo != nil {
			snap.memo.Set(key, res)
		}
		r.logger.Debug("timezone resolved", "tzid", tzid, "zone", ref.Name(), "stage", StageFinder, "strategy", reg.key)
		return res, true, nil
	}
	return Result{}, false, nil
}

func (r *Resolver) runGuessers(snap *snapshot, tzid string, c Container, strict bool) (Result, bool, error) {
	for _, block := range c.TimezoneBlocks() {
		if block.TZID() != tzid {
			continue
		}
		for _, reg := range snap.guessers {
			ref, ok, err := reg.impl.Guess(block, strict)
			if err != nil {
				r.logFailure(err, "guesser", reg.key, tzid)
				return Result{}, false, fmt.Errorf("timezone guesser %s: %w", reg.key, err)
			}
			if !ok || ref.IsZero() {
				continue
			}
			r.logger.Debug("timezone resolved", "tzid", tzid, "zone", ref.Name(), "stage", StageGuesser, "strategy", reg.key)
			return Result{Reference: ref, Strategy: reg.key, Stage: StageGuesser}, true, nil
		}
	}
	return Result{}, false, nil
}

func (r *Resolver) logFailure(err error, kind, key, tzid string) {
	var loadErr *tzdata.TableLoadError
	if errors.As(err, &loadErr) {
		r.logger.Warn("timezone table unavailable", "file", loadErr.File, "error", loadErr.Err, kind, key)
		return
	}
	r.logger.Debug("timezone strategy rejected identifier", "tzid", tzid, kind, key, "error", err)
}

func (r *Resolver) newSnapshot(finders []registration[Finder], guessers []registration[Guesser]) *snapshot {
	s := &snapshot{finders: finders, guessers: guessers}
	if r.cacheSize > 0 {
		s.memo = otter.Must(&otter.Options[memoKey, Result]{
			MaximumSize: r.cacheSize,
		})
	}
	return s
}

// register returns a copy of list with key set to impl.
func register[T any](list []registration[T], key string, impl T) []registration[T] {
	out := slices.Clone(list)
	for i := range out {
		if out[i].key == key {
			out[i].impl = impl
			return out
		}
	}
	return append(out, registration[T]{key: key, impl: impl})
}

func keys[T any](list []registration[T]) []string {
	out := make([]string, len(list))
	for i, reg := range list {
		out[i] = reg.key
	}
	return out
}
