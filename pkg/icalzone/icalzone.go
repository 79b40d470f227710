// Package icalzone exposes the VTIMEZONE blocks of an iCalendar document to
// the tzresolve package.
package icalzone

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/codeGROOVE-dev/tzid/pkg/tzresolve"
	"github.com/emersion/go-ical"
)

const tzidName = "TZID"

// dateProps are visited first, in this order, when a decoder does not keep
// the property order of a component.
var dateProps = []string{"DTSTART", "DTEND", "DUE", "RECURRENCE-ID", "EXDATE", "RDATE"}

var textUnescaper = strings.NewReplacer(`\\`, `\`, `\,`, ",", `\;`, ";", `\n`, "\n", `\N`, "\n")

// Timezone is one VTIMEZONE block.
type Timezone struct {
	props map[string]string
	tzid  string
}

// TZID implements tzresolve.Block.
func (z *Timezone) TZID() string { return z.tzid }

// Property implements tzresolve.Block. Names are matched case-insensitively.
func (z *Timezone) Property(name string) (string, bool) {
	v, ok := z.props[strings.ToUpper(name)]
	return v, ok
}

// Calendar is a parsed calendar usable as a tzresolve.Container.
type Calendar struct {
	seen   map[string]bool
	blocks []tzresolve.Block
	tzids  []string
}

func newCalendar() *Calendar {
	return &Calendar{seen: make(map[string]bool)}
}

// TimezoneBlocks implements tzresolve.Container.
func (c *Calendar) TimezoneBlocks() []tzresolve.Block {
	return c.blocks
}

// TZIDs returns every identifier the calendar declares in a VTIMEZONE or
// references from a TZID parameter, in first-seen order. Within one
// component decoded by go-ical, which keeps no property order, date
// properties come first (DTSTART, DTEND, DUE, RECURRENCE-ID, EXDATE, RDATE)
// and the rest follow by name.
func (c *Calendar) TZIDs() []string {
	return c.tzids
}

func (c *Calendar) addTimezone(props map[string]string) {
	z := &Timezone{tzid: props[tzidName], props: props}
	c.blocks = append(c.blocks, z)
	c.reference(z.tzid)
}

func (c *Calendar) reference(tzid string) {
	if tzid == "" || c.seen[tzid] {
		return
	}
	c.seen[tzid] = true
	c.tzids = append(c.tzids, tzid)
}

// FromGoICal adapts a calendar decoded by github.com/emersion/go-ical.
func FromGoICal(cal *ical.Calendar) *Calendar {
	c := newCalendar()
	if cal == nil || cal.Component == nil {
		return c
	}
	walkGoICal(c, cal.Component)
	return c
}

func walkGoICal(c *Calendar, comp *ical.Component) {
	for _, child := range comp.Children {
		if child.Name == ical.CompTimezone {
			props := make(map[string]string, len(child.Props))
			for name, values := range child.Props {
				if len(values) > 0 {
					props[strings.ToUpper(name)] = textUnescaper.Replace(values[0].Value)
				}
			}
			c.addTimezone(props)
			continue
		}
		for _, name := range propNames(child.Props) {
			for _, p := range child.Props[name] {
				c.reference(p.Params.Get(ical.ParamTimezoneID))
			}
		}
		walkGoICal(c, child)
	}
}

// propNames returns the names in props in a stable order.
func propNames(props ical.Props) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		ia, ib := slices.Index(dateProps, a), slices.Index(dateProps, b)
		switch {
		case ia >= 0 && ib >= 0:
			return ia - ib
		case ia >= 0:
			return -1
		case ib >= 0:
			return 1
		}
		return strings.Compare(a, b)
	})
	return names
}

// FromICS adapts a calendar parsed by github.com/arran4/golang-ical.
func FromICS(cal *ics.Calendar) *Calendar {
	c := newCalendar()
	if cal == nil {
		return c
	}
	walkICS(c, cal.Components)
	return c
}

func walkICS(c *Calendar, components []ics.Component) {
	for _, comp := range components {
		if tz, ok := comp.(*ics.VTimezone); ok {
			props := make(map[string]string, len(tz.Properties))
			for _, p := range tz.Properties {
				name := strings.ToUpper(p.IANAToken)
				if _, dup := props[name]; !dup {
					props[name] = textUnescaper.Replace(p.Value)
				}
			}
			c.addTimezone(props)
			continue
		}
		for _, p := range comp.UnknownPropertiesIANAProperties() {
			for _, v := range p.ICalParameters[tzidName] {
				c.reference(v)
			}
		}
		walkICS(c, comp.SubComponents())
	}
}

// Parse decodes an iCalendar document. The strict go-ical decoder is tried
// first; documents it rejects, which Outlook and Notes exports regularly
// are, are handed to the more forgiving golang-ical parser.
func Parse(data []byte, logger *slog.Logger) (*Calendar, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	if err == nil {
		return FromGoICal(cal), nil
	}
	logger.Debug("strict calendar decode failed, retrying leniently", "error", err)

	lenient, lenientErr := ics.ParseCalendar(bytes.NewReader(data))
	if lenientErr != nil {
		return nil, fmt.Errorf("parsing calendar: %w", errors.Join(err, lenientErr))
	}
	return FromICS(lenient), nil
}
