package validation

import (
	"fmt"
	"time"

	"github.com/rdevries/portfolio-statement-backend/internal/apperrors"
)

const dateLayout = "2006-01-02"

// ParseReportDate parses a YYYY-MM-DD report date query parameter. An
// empty value defaults to today (UTC). Any other malformed value returns
// apperrors.ErrInvalidDate.
func ParseReportDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", apperrors.ErrInvalidDate, value)
	}

	return date, nil
}

// ParseDateRange parses start and end date parameters and checks their
// ordering. Empty values default to the epoch and today respectively.
func ParseDateRange(startValue, endValue string) (time.Time, time.Time, error) {
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	if startValue != "" {
		var err error
		start, err = time.Parse(dateLayout, startValue)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", apperrors.ErrInvalidDate, startValue)
		}
	}

	end, err := ParseReportDate(endValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDateRange
	}

	return start, end, nil
}
