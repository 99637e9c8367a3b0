package note

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrNoDate is returned by ParseDue for blank input.
var ErrNoDate = errors.New("note: enter a date and time")

// ParseDue reads a free-form reminder date/time ("2026-10-21 09:30",
// "Oct 21 2026 9:30am", "10/21/2026") in loc.
func ParseDue(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrNoDate
	}
	if loc == nil {
		loc = time.Local
	}
	at, err := dateparse.ParseIn(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("note: could not read %q as a date", value)
	}
	return at, nil
}
