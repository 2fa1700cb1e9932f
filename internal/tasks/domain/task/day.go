package task

import (
	"fmt"
	"time"
)

// DayLayout is the fixed-width, lexically sortable layout of a day key.
const DayLayout = "2006-01-02"

// Day is a calendar date truncated to midnight, rendered as YYYY-MM-DD.
type Day string

// NormalizeDay converts a timestamp to its day key in loc. A nil location
// means time.Local. Every bucket lookup must go through this function.
func NormalizeDay(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	return Day(t.In(loc).Format(DayLayout))
}

// ParseDay validates a YYYY-MM-DD key.
func ParseDay(s string) (Day, error) {
	parsed, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return Day(parsed.Format(DayLayout)), nil
}

// Start returns local midnight of the day in loc.
func (d Day) Start(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DayLayout, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, string(d))
	}
	return t, nil
}

func (d Day) String() string { return string(d) }
