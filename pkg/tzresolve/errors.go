package tzresolve

import (
	"errors"
	"fmt"
)

var (
	// ErrUncertain matches every *UncertainError.
	ErrUncertain = errors.New("timezone could not be determined")
	// ErrInvalidOffset is returned in strict mode for GMT+HHMM identifiers
	// whose offset no zone can have.
	ErrInvalidOffset = errors.New("invalid UTC offset")
	// ErrInvalidHint is returned in strict mode for a malformed vendor hint.
	ErrInvalidHint = errors.New("invalid timezone hint")
)

// UncertainError is returned in strict mode when no strategy resolved the
// identifier.
type UncertainError struct {
	TZID string
}

func (e *UncertainError) Error() string {
	return fmt.Sprintf("unable to determine the timezone for tzid %q", e.TZID)
}

// Is lets errors.Is(err, ErrUncertain) match.
func (e *UncertainError) Is(target error) bool {
	return target == ErrUncertain
}
