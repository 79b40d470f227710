// Package tzconvert parses and formats the UTC offsets that calendar
// producers embed in timezone identifiers.
package tzconvert

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// MaxOffsetHours is the largest whole-hour distance from UTC used by any
// real zone (Pacific/Kiritimati, UTC+14).
const MaxOffsetHours = 14

var gmtOffsetRegex = regexp.MustCompile(`^GMT([+-])(\d{2})(\d{2})$`)

// GMTOffset is an offset written as GMT+HHMM or GMT-HHMM.
type GMTOffset struct {
	Sign    int // +1 or -1
	Hours   int
	Minutes int
}

// ParseGMTOffset parses identifiers such as "GMT+0530" or "GMT-0800".
// Anything else, including "GMT+5" or "UTC+0100", is rejected.
func ParseGMTOffset(s string) (GMTOffset, bool) {
	m := gmtOffsetRegex.FindStringSubmatch(s)
	if m == nil {
		return GMTOffset{}, false
	}

	sign := 1
	if m[1] == "-" {
		sign = -1
	}
	// The regex guarantees two digits each.
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])

	return GMTOffset{Sign: sign, Hours: hours, Minutes: minutes}, true
}

// Valid reports whether the offset could belong to a real zone.
func (o GMTOffset) Valid() bool {
	return o.Hours <= MaxOffsetHours && o.Minutes < 60
}

// WholeHourSeconds returns the signed offset in seconds with the minutes
// dropped: GMT+0530 gives 5h, GMT-0930 gives -9h.
func (o GMTOffset) WholeHourSeconds() int {
	return o.Sign * o.Hours * 3600
}

// Seconds returns the full signed offset in seconds.
func (o GMTOffset) Seconds() int {
	return o.Sign * (o.Hours*3600 + o.Minutes*60)
}

// EtcName returns the Etc/GMT style label for the whole-hour part of the
// offset. The sign is copied from the input, so GMT+0530 is labelled
// "Etc/GMT+5" and GMT-0000 is labelled "Etc/GMT-0".
func (o GMTOffset) EtcName() string {
	sign := "+"
	if o.Sign < 0 {
		sign = "-"
	}
	return "Etc/GMT" + sign + strconv.Itoa(o.Hours)
}

// FormatUTCOffset renders an offset in seconds as "UTC+05:30" or "UTC-08:00".
func FormatUTCOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}

// CurrentOffset returns the offset of loc in seconds at the given instant.
// A nil location is treated as UTC.
func CurrentOffset(loc *time.Location, at time.Time) int {
	if loc == nil {
		return 0
	}
	_, offset := at.In(loc).Zone()
	return offset
}
