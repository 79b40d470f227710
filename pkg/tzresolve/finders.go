package tzresolve

import (
	"fmt"
	"regexp"

	"github.com/codeGROOVE-dev/tzid/pkg/tzconvert"
	"github.com/codeGROOVE-dev/tzid/pkg/tzdata"
)

// Registration keys of the built-in finders, in default priority order.
const (
	FinderDirect    = "tzid"
	FinderTable     = "tzmap"
	FinderDecorated = "decorated"
	FinderOffset    = "offset"
)

// TableSource provides the merged vendor name table.
type TableSource interface {
	Load() (*tzdata.Table, error)
}

// DirectFinder accepts identifiers the zone database already understands:
// canonical names, GMT+HHMM offsets and backward-compatibility aliases.
//
// Identifiers starting with "(" are skipped. Outlook writes names such as
// "(GMT+01.00) Sarajevo/Warsaw/Zagreb" and treating the prefix as a fixed
// offset would lose the daylight saving rules of the named zone.
type DirectFinder struct {
	zones ZoneDatabase
}

// NewDirectFinder returns a DirectFinder over zones.
func NewDirectFinder(zones ZoneDatabase) *DirectFinder {
	return &DirectFinder{zones: zones}
}

// Find implements Finder.
func (f *DirectFinder) Find(tzid string, strict bool) (Reference, bool, error) {
	if tzid == "" || tzid[0] == '(' {
		return Reference{}, false, nil
	}

	if f.zones.Known(tzid) {
		return loadZone(f.zones, tzid)
	}
	if _, ok := tzconvert.ParseGMTOffset(tzid); ok {
		return gmtOffsetZone(f.zones, tzid, strict)
	}
	if f.zones.BackwardCompatible(tzid) {
		return loadZone(f.zones, tzid)
	}
	return Reference{}, false, nil
}

// TableFinder looks the identifier up in the vendor name table.
type TableFinder struct {
	tables TableSource
	zones  ZoneDatabase
}

// NewTableFinder returns a TableFinder.
func NewTableFinder(tables TableSource, zones ZoneDatabase) *TableFinder {
	return &TableFinder{tables: tables, zones: zones}
}

// Find implements Finder.
func (f *TableFinder) Find(tzid string, _ bool) (Reference, bool, error) {
	table, err := f.tables.Load()
	if err != nil {
		return Reference{}, false, err
	}
	return lookupTable(table, f.zones, tzid)
}

var decoratedPrefixRegexes = []*regexp.Regexp{
	regexp.MustCompile(`^\((?:UTC|GMT)[+-]\d{2}:\d{2}\) (.*)`),
	regexp.MustCompile(`^\((?:UTC|GMT)[+-]\d{2}\.\d{2}\) (.*)`),
	regexp.MustCompile(`^\((?:UTC|GMT)\) (.*)`),
}

// DecoratedFinder strips the "(UTC+01:00) " style prefix Microsoft
// products put in front of display names and looks the rest up in the
// vendor name table.
type DecoratedFinder struct {
	tables TableSource
	zones  ZoneDatabase
}

// NewDecoratedFinder returns a DecoratedFinder.
func NewDecoratedFinder(tables TableSource, zones ZoneDatabase) *DecoratedFinder {
	return &DecoratedFinder{tables: tables, zones: zones}
}

// Find implements Finder.
func (f *DecoratedFinder) Find(tzid string, _ bool) (Reference, bool, error) {
	if tzid == "" || tzid[0] != '(' {
		return Reference{}, false, nil
	}

	table, err := f.tables.Load()
	if err != nil {
		return Reference{}, false, err
	}
	for _, re := range decoratedPrefixRegexes {
		m := re.FindStringSubmatch(tzid)
		if m == nil {
			continue
		}
		ref, ok, err := lookupTable(table, f.zones, m[1])
		if err != nil || ok {
			return ref, ok, err
		}
	}
	return Reference{}, false, nil
}

// OffsetFinder turns a bare GMT+HHMM identifier into a whole-hour fixed
// zone labelled Etc/GMT+H. Minutes are dropped.
type OffsetFinder struct {
	zones ZoneDatabase
}

// NewOffsetFinder returns an OffsetFinder.
func NewOffsetFinder(zones ZoneDatabase) *OffsetFinder {
	return &OffsetFinder{zones: zones}
}

// Find implements Finder.
func (f *OffsetFinder) Find(tzid string, strict bool) (Reference, bool, error) {
	return gmtOffsetZone(f.zones, tzid, strict)
}

// gmtOffsetZone is the single GMT+HHMM path shared by DirectFinder and
// OffsetFinder.
func gmtOffsetZone(zones ZoneDatabase, tzid string, strict bool) (Reference, bool, error) {
	o, ok := tzconvert.ParseGMTOffset(tzid)
	if !ok {
		return Reference{}, false, nil
	}
	if !o.Valid() {
		if strict {
			return Reference{}, false, fmt.Errorf("%w: %q", ErrInvalidOffset, tzid)
		}
		return Reference{}, false, nil
	}
	return zones.Fixed(o.EtcName(), o.WholeHourSeconds()), true, nil
}

func lookupTable(table *tzdata.Table, zones ZoneDatabase, name string) (Reference, bool, error) {
	zone, ok := table.Lookup(name)
	if !ok {
		return Reference{}, false, nil
	}
	return loadZone(zones, zone)
}

// loadZone treats a zone the runtime cannot load as not found.
func loadZone(zones ZoneDatabase, name string) (Reference, bool, error) {
	ref, err := zones.Load(name)
	if err != nil {
		return Reference{}, false, nil //nolint:nilerr // missing runtime zone is a miss, not a failure
	}
	return ref, true, nil
}
