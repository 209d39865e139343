package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Offset parsing errors. A bad magnitude is a hard error and should be
// rejected when the reminder is created; an unknown unit is a permissive
// degrade to a zero offset and only worth a debug log.
var (
	ErrBadMagnitude = errors.New("offset magnitude is not an integer")
	ErrUnknownUnit  = errors.New("unknown offset unit")
)

// ParseOffset converts a relative offset string of the form "<integer> <unit>"
// (unit one of minutes, hours, days; case-sensitive, single space) into the
// duration before the event instant at which the reminder should fire.
//
// A malformed magnitude returns ErrBadMagnitude. An unrecognized unit returns
// a zero duration together with ErrUnknownUnit so callers can choose to treat
// the reminder as a no-op offset.
func ParseOffset(s string) (time.Duration, error) {
	value, unit, found := strings.Cut(s, " ")
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrBadMagnitude, s)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadMagnitude, value)
	}
	switch unit {
	case "minutes":
		return time.Duration(n) * time.Minute, nil
	case "hours":
		return time.Duration(n) * time.Hour, nil
	case "days":
		return time.Duration(n) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
}
