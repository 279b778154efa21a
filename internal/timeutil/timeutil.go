package timeutil

import (
	"strconv"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ClockLayout renders a local start time label such as "7:30 PM".
const ClockLayout = "3:04 PM"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Tomorrow returns the calendar date after now in loc (UTC when loc is nil).
func Tomorrow(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(now.In(loc).AddDate(0, 0, 1))
}

// AddDays shifts a YYYY-MM-DD date by n days.
func AddDays(date string, n int) (string, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(parsed.AddDate(0, 0, n)), nil
}

// SeasonID returns the NHL season id (e.g. 20252026) that contains the given day.
// Seasons start in the fall, so dates before July belong to the season that began the prior year.
func SeasonID(day time.Time) int {
	start := day.Year()
	if day.Month() < time.July {
		start--
	}
	id, _ := strconv.Atoi(strconv.Itoa(start) + strconv.Itoa(start+1))
	return id
}

// LocalLabel converts an RFC3339 UTC start time to a clock label in loc, or "TBD".
func LocalLabel(startUTC string, loc *time.Location) string {
	if startUTC == "" {
		return "TBD"
	}
	parsed, err := time.Parse(time.RFC3339, startUTC)
	if err != nil {
		return "TBD"
	}
	if loc == nil {
		loc = time.UTC
	}
	return parsed.In(loc).Format(ClockLayout)
}

// LoadLocation resolves a timezone name, falling back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
