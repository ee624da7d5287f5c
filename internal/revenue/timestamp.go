package revenue

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrBadTimestamp   = errors.New("unparseable timestamp")
	ErrEndBeforeStart = errors.New("ended_at precedes started_at")
)

// Layouts tried in order. Offset-less layouts are read as UTC, which is how
// the backend's warehouse stores them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999 UTC",
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
}

// ParseTimestamp parses a session timestamp sent by the backend.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrBadTimestamp
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadTimestamp
}
