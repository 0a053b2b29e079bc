package backend

import (
	"errors"
	"strings"
	"time"
)

// timestamp layouts the backend is known to emit: RFC3339 with and without
// sub-second precision, and naive ISO datetimes (no zone, treated as UTC).
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("unrecognized timestamp: " + value)
}
