package tzresolve

// Hint property names read from embedded VTIMEZONE blocks.
const (
	// PropLicLocation is written by libical based producers.
	PropLicLocation = "X-LIC-LOCATION"
	// PropMicrosoftCDOTZID is written by Exchange and Outlook.
	PropMicrosoftCDOTZID = "X-MICROSOFT-CDO-TZID"
)

// Block is an embedded timezone definition (a VTIMEZONE component).
type Block interface {
	// TZID returns the identifier the block declares, or "".
	TZID() string
	// Property returns the raw text of a named property.
	Property(name string) (string, bool)
}

// Container is a calendar holding embedded timezone definitions.
type Container interface {
	TimezoneBlocks() []Block
}

// Finder resolves a timezone from its identifier alone.
//
// A finder reports "not found" with ok == false and a nil error. It returns
// an error only when strict is set and the identifier is actively invalid,
// or when its backing data cannot be loaded.
type Finder interface {
	Find(tzid string, strict bool) (ref Reference, ok bool, err error)
}

// Guesser resolves a timezone by inspecting an embedded timezone block. It
// follows the same reporting rules as Finder.
type Guesser interface {
	Guess(block Block, strict bool) (ref Reference, ok bool, err error)
}

// FinderFunc adapts a function to the Finder interface.
type FinderFunc func(tzid string, strict bool) (Reference, bool, error)

// Find calls f.
func (f FinderFunc) Find(tzid string, strict bool) (Reference, bool, error) {
	return f(tzid, strict)
}

// GuesserFunc adapts a function to the Guesser interface.
type GuesserFunc func(block Block, strict bool) (Reference, bool, error)

// Guess calls f.
func (f GuesserFunc) Guess(block Block, strict bool) (Reference, bool, error) {
	return f(block, strict)
}

// Chain runs finders in order and returns the first match.
type Chain []Finder

// Find implements Finder.
func (c Chain) Find(tzid string, strict bool) (Reference, bool, error) {
	for _, f := range c {
		ref, ok, err := f.Find(tzid, strict)
		if err != nil {
			return Reference{}, false, err
		}
		if ok {
			return ref, true, nil
		}
	}
	return Reference{}, false, nil
}
