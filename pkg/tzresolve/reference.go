package tzresolve

import (
	"time"

	"github.com/codeGROOVE-dev/tzid/pkg/tzconvert"
)

// Reference is a resolved timezone: either a named zone from the tz
// database or a fixed offset from UTC. The zero value means "nothing
// resolved" and is never returned alongside a nil error by Resolve.
type Reference struct {
	loc    *time.Location
	name   string
	offset int
	fixed  bool
}

// NamedReference wraps a location loaded from the tz database under name.
func NamedReference(name string, loc *time.Location) Reference {
	return Reference{name: name, loc: loc}
}

// FixedReference builds a fixed-offset zone labelled name.
func FixedReference(name string, offsetSeconds int) Reference {
	return Reference{
		name:   name,
		offset: offsetSeconds,
		fixed:  true,
		loc:    time.FixedZone(name, offsetSeconds),
	}
}

// Name returns the zone name, or the label of a fixed-offset zone.
func (r Reference) Name() string { return r.name }

// Location returns the zone as a *time.Location.
func (r Reference) Location() *time.Location { return r.loc }

// IsFixed reports whether the reference is a fixed UTC offset.
func (r Reference) IsFixed() bool { return r.fixed }

// Offset returns the offset in seconds of a fixed-offset reference.
func (r Reference) Offset() (int, bool) {
	return r.offset, r.fixed
}

// IsZero reports whether the reference is empty.
func (r Reference) IsZero() bool { return r.loc == nil }

// Equal reports whether both references name the same zone.
func (r Reference) Equal(other Reference) bool {
	return r.name == other.name && r.fixed == other.fixed && r.offset == other.offset
}

func (r Reference) String() string {
	if r.fixed {
		return r.name + " (" + tzconvert.FormatUTCOffset(r.offset) + ")"
	}
	return r.name
}
