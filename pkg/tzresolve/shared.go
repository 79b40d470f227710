package tzresolve

import "sync"

var shared = sync.OnceValue(func() *Resolver {
	return New()
})

// Shared returns the process-wide Resolver with default options. Programs
// that need their own logger, tables or default zone should build one with
// New and pass it around instead.
func Shared() *Resolver {
	return shared()
}

// Resolve resolves tzid with the shared Resolver.
func Resolve(tzid string, c Container, strict bool) (Reference, error) {
	return Shared().Resolve(tzid, c, strict)
}

// AddFinder registers a finder on the shared Resolver.
func AddFinder(key string, f Finder) {
	Shared().AddFinder(key, f)
}

// AddGuesser registers a guesser on the shared Resolver.
func AddGuesser(key string, g Guesser) {
	Shared().AddGuesser(key, g)
}
