// Package repository provides database/sql data access for all persisted
// entities. Repositories are read-only except for the explicitly
// transactional write methods used by the trade entry path and the
// snapshot job.
package repository

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// placeholders returns a comma-joined list of n SQL placeholders,
// e.g. "?,?,?" for n=3.
func placeholders(n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = "?"
	}
	return strings.Join(p, ",")
}

// parseDate parses a DATE column value into a UTC midnight time.Time.
// The driver hands DATE-declared columns back as RFC3339 timestamps, so
// both that and the stored YYYY-MM-DD text must be accepted.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
		}
	}
	return t.UTC(), nil
}

// parseTimestamp parses a TIMESTAMP column value. CURRENT_TIMESTAMP
// writes "2006-01-02 15:04:05" text, but the driver may return the
// column as an RFC3339 timestamp instead.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
		}
	}
	return t.UTC(), nil
}
