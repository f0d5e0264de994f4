package harness

import (
	"fmt"
	"time"
)

// startISOLayouts are the accepted --start-iso forms. Zone-less values
// are interpreted in local time, matching the platform's handling.
var startISOLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseStartISO parses an explicit cycle-start timestamp.
func ParseStartISO(value string) (time.Time, error) {
	for _, layout := range startISOLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --start-iso value: %s", value)
}

// LocalMidnight truncates a wall-clock time to 00:00:00 of the same day.
func LocalMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
