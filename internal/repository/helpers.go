package repository

import (
	"fmt"
	"time"
)

// timestampLayout keeps sub-second precision so creation order survives
// the round trip.
const timestampLayout = time.RFC3339Nano

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(field, s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// nowUTC returns the current UTC time in the stored timestamp format.
func nowUTC() string {
	return formatTimestamp(time.Now())
}
