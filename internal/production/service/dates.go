package service

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Clock returns the current instant.
type Clock func() time.Time

// ParseDate accepts YYYY-MM-DD (interpreted in loc) or RFC 3339.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	if strings.Contains(raw, "/") {
		return time.Time{}, fmt.Errorf("must be in YYYY-MM-DD format")
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(dateLayout, raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("must be in YYYY-MM-DD format")
}

// DaysUntil is the ceiling of (raw - now) in whole days. ok is false when raw
// does not parse.
func DaysUntil(now time.Time, raw string) (int, bool) {
	t, err := ParseDate(raw, now.Location())
	if err != nil {
		return 0, false
	}
	return daysBetween(now, t), true
}

func daysBetween(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// DateOnly truncates t to midnight of its calendar date in loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
