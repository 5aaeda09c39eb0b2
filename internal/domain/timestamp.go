package domain

import (
	"fmt"
	"time"
)

// TimestampLayout is the persisted timestamp form: seconds precision, no
// offset, literal trailing Z. Stored strings must keep this shape bit-for-bit
// so lexical ordering matches temporal ordering.
const TimestampLayout = "2006-01-02T15:04:05"

// Accepted input shapes. Browsers submit datetime-local values without a
// zone suffix and sometimes without seconds; stored values carry the Z.
var timestampLayouts = []string{
	time.RFC3339,
	TimestampLayout,
	"2006-01-02T15:04",
}

// ParseTimestamp parses a naive-UTC timestamp string in any accepted shape
// and returns the instant in UTC.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// FormatTimestamp renders an instant in the canonical persisted form.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout) + "Z"
}
