package tzresolve

import (
	"strings"
	"time"
	_ "time/tzdata" // fallback when the host has no zoneinfo

	"github.com/codeGROOVE-dev/tzid/pkg/tzdata"
)

// ZoneDatabase is the timezone runtime the resolver builds references from.
type ZoneDatabase interface {
	// Known reports whether name is a zone the runtime can load as is.
	Known(name string) bool
	// Load builds a reference to a named zone.
	Load(name string) (Reference, error)
	// Fixed builds a fixed-offset reference.
	Fixed(name string, offsetSeconds int) Reference
	// BackwardCompatible reports whether name is a legacy alias.
	BackwardCompatible(name string) bool
	// Default is the zone returned when nothing else resolves.
	Default() Reference
}

// SystemZones implements ZoneDatabase over time.LoadLocation. The host
// zoneinfo is searched first; the tz database embedded in the binary is used
// for names the host does not have.
type SystemZones struct {
	def Reference
}

// NewSystemZones returns the runtime database with def as the default zone.
// A nil def means UTC.
func NewSystemZones(def *time.Location) *SystemZones {
	if def == nil {
		def = time.UTC
	}
	return &SystemZones{def: NamedReference(def.String(), def)}
}

// Known reports whether time.LoadLocation accepts name, so host-only names
// such as "posixrules" count as known on hosts that ship them. The empty
// name and "Local" are rejected because LoadLocation maps them to UTC and
// the host zone instead of looking them up.
func (z *SystemZones) Known(name string) bool {
	if name == "" || name == "Local" || strings.ContainsAny(name, " ()") {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// Load loads name from the tz database.
func (z *SystemZones) Load(name string) (Reference, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Reference{}, err
	}
	return NamedReference(name, loc), nil
}

// Fixed builds a fixed-offset zone.
func (z *SystemZones) Fixed(name string, offsetSeconds int) Reference {
	return FixedReference(name, offsetSeconds)
}

// BackwardCompatible reports whether name is on the tz backward list.
func (z *SystemZones) BackwardCompatible(name string) bool {
	return tzdata.IsBackwardCompatible(name)
}

// Default returns the configured default zone.
func (z *SystemZones) Default() Reference {
	return z.def
}
