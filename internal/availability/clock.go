package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const endOfDayMinutes = 24 * 60

// ParseClock converts an "HH:mm" string into minutes since midnight. Parsing
// is permissive: missing or malformed components default to 0, so a bad entry
// degrades to an empty or shortened slot list instead of failing the request.
func ParseClock(s string) int {
	parts := strings.SplitN(s, ":", 2)
	h := 0
	m := 0
	if len(parts) > 0 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			h = v
		}
	}
	if len(parts) > 1 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			m = v
		}
	}
	return h*60 + m
}

// FormatClock renders minutes since midnight as "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DateKey returns the calendar-date key ("YYYY-MM-DD") for t, ignoring the
// time of day.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
