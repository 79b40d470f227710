package tzresolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codeGROOVE-dev/tzid/pkg/tzdata"
)

// Registration keys of the built-in guessers, in default priority order.
const (
	GuesserLic       = "lic"
	GuesserMicrosoft = "msTzId"
)

// LicGuesser reads the X-LIC-LOCATION hint libical producers attach to
// custom VTIMEZONE blocks and resolves it through a finder chain.
type LicGuesser struct {
	finder Finder
}

// NewLicGuesser returns a LicGuesser resolving hints with finder.
func NewLicGuesser(finder Finder) *LicGuesser {
	return &LicGuesser{finder: finder}
}

// Guess implements Guesser.
func (g *LicGuesser) Guess(block Block, strict bool) (Reference, bool, error) {
	lic, ok := block.Property(PropLicLocation)
	lic = strings.TrimSpace(lic)
	if !ok || lic == "" {
		return Reference{}, false, nil
	}
	// Some generators write "SystemV/EST5EDT".
	lic = strings.TrimPrefix(lic, "SystemV/")
	return g.finder.Find(lic, strict)
}

// MicrosoftGuesser maps the numeric X-MICROSOFT-CDO-TZID hint written by
// Exchange to a zone.
type MicrosoftGuesser struct {
	zones ZoneDatabase
	ids   map[int]string
}

// NewMicrosoftGuesser returns a MicrosoftGuesser over the built-in id table.
func NewMicrosoftGuesser(zones ZoneDatabase) *MicrosoftGuesser {
	return &MicrosoftGuesser{zones: zones, ids: tzdata.MicrosoftCDO}
}

// Guess implements Guesser.
func (g *MicrosoftGuesser) Guess(block Block, strict bool) (Reference, bool, error) {
	raw, ok := block.Property(PropMicrosoftCDOTZID)
	if !ok {
		return Reference{}, false, nil
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		if strict {
			return Reference{}, false, fmt.Errorf("%w: %s %q", ErrInvalidHint, PropMicrosoftCDOTZID, raw)
		}
		return Reference{}, false, nil
	}

	// Id 2 is shared by Lisbon and Sarajevo.
	if id == 2 && strings.Contains(block.TZID(), "Sarajevo") {
		return loadZone(g.zones, tzdata.MicrosoftCDOSarajevo)
	}
	zone, ok := g.ids[id]
	if !ok {
		return Reference{}, false, nil
	}
	return loadZone(g.zones, zone)
}
