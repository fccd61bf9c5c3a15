package validation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rdevries/portfolio-statement-backend/internal/api/request"
	"github.com/rdevries/portfolio-statement-backend/internal/apperrors"
	"github.com/rdevries/portfolio-statement-backend/internal/validation"
)

// TestParseReportDate tests report date parsing.
//
// WHY: The report date drives the entire statement computation; a
// malformed value must be rejected up front and an absent one must fall
// back to today.
func TestParseReportDate(t *testing.T) {
	t.Run("empty value defaults to today UTC midnight", func(t *testing.T) {
		date, err := validation.ParseReportDate("")
		if err != nil {
			t.Fatalf("ParseReportDate() returned unexpected error: %v", err)
		}

		now := time.Now().UTC()
		expected := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if !date.Equal(expected) {
			t.Errorf("Expected %s, got %s", expected, date)
		}
	})

	t.Run("parses a valid date", func(t *testing.T) {
		date, err := validation.ParseReportDate("2025-06-30")
		if err != nil {
			t.Fatalf("ParseReportDate() returned unexpected error: %v", err)
		}
		if date.Year() != 2025 || date.Month() != time.June || date.Day() != 30 {
			t.Errorf("Expected 2025-06-30, got %s", date)
		}
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		for _, value := range []string{"30-06-2025", "2025/06/30", "not-a-date"} {
			_, err := validation.ParseReportDate(value)
			if !errors.Is(err, apperrors.ErrInvalidDate) {
				t.Errorf("Expected ErrInvalidDate for %q, got %v", value, err)
			}
		}
	})
}

// TestParseDateRange tests range parsing and ordering.
func TestParseDateRange(t *testing.T) {
	t.Run("defaults cover all history", func(t *testing.T) {
		start, end, err := validation.ParseDateRange("", "")
		if err != nil {
			t.Fatalf("ParseDateRange() returned unexpected error: %v", err)
		}
		if !start.Before(end) {
			t.Errorf("Expected default start %s before default end %s", start, end)
		}
	})

	t.Run("rejects start after end", func(t *testing.T) {
		_, _, err := validation.ParseDateRange("2025-07-01", "2025-06-01")
		if !errors.Is(err, apperrors.ErrInvalidDateRange) {
			t.Fatalf("Expected ErrInvalidDateRange, got %v", err)
		}
	})
}

// TestValidateUUID tests UUID validation.
func TestValidateUUID(t *testing.T) {
	t.Run("accepts a valid UUID", func(t *testing.T) {
		if err := validation.ValidateUUID("550e8400-e29b-41d4-a716-446655440000"); err != nil {
			t.Errorf("ValidateUUID() returned unexpected error: %v", err)
		}
	})

	t.Run("rejects malformed IDs", func(t *testing.T) {
		for _, id := range []string{"", "abc", "550e8400-e29b-41d4-a716"} {
			err := validation.ValidateUUID(id)
			if !errors.Is(err, apperrors.ErrInvalidUUID) {
				t.Errorf("Expected ErrInvalidUUID for %q, got %v", id, err)
			}
		}
	})
}

// TestValidateCreateTrade tests trade request validation.
//
// WHY: Trade entry is the only write path; every malformed field must be
// caught before the transaction starts, with a message naming the field.
func TestValidateCreateTrade(t *testing.T) {
	valid := request.CreateTradeRequest{
		PortfolioID:  "550e8400-e29b-41d4-a716-446655440000",
		SecurityID:   "650e8400-e29b-41d4-a716-446655440000",
		TradeDate:    "2025-06-10",
		TradeType:    "BUY",
		Quantity:     10,
		PricePerUnit: 5,
	}

	t.Run("accepts a valid request", func(t *testing.T) {
		if err := validation.ValidateCreateTrade(valid); err != nil {
			t.Errorf("ValidateCreateTrade() returned unexpected error: %v", err)
		}
	})

	t.Run("accepts lowercase trade types", func(t *testing.T) {
		req := valid
		req.TradeType = "sell"
		if err := validation.ValidateCreateTrade(req); err != nil {
			t.Errorf("ValidateCreateTrade() returned unexpected error: %v", err)
		}
	})

	t.Run("rejects malformed portfolio ID", func(t *testing.T) {
		req := valid
		req.PortfolioID = "not-a-uuid"
		err := validation.ValidateCreateTrade(req)
		if !errors.Is(err, apperrors.ErrInvalidUUID) {
			t.Fatalf("Expected ErrInvalidUUID, got %v", err)
		}
	})

	t.Run("collects field errors for bad values", func(t *testing.T) {
		req := valid
		req.TradeDate = "June 10th"
		req.TradeType = "HOLD"
		req.Quantity = 0
		req.PricePerUnit = -1

		err := validation.ValidateCreateTrade(req)
		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}

		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *validation.Error, got %T", err)
		}

		if _, ok := vErr.Fields["tradeDate"]; !ok {
			t.Error("Expected field error for tradeDate")
		}
		if msg := vErr.Fields["tradeType"]; msg != apperrors.ErrInvalidTradeType.Error() {
			t.Errorf("Expected %q for tradeType, got %q", apperrors.ErrInvalidTradeType, msg)
		}
		if msg := vErr.Fields["quantity"]; msg != apperrors.ErrInvalidQuantity.Error() {
			t.Errorf("Expected %q for quantity, got %q", apperrors.ErrInvalidQuantity, msg)
		}
		if msg := vErr.Fields["pricePerUnit"]; msg != apperrors.ErrInvalidPrice.Error() {
			t.Errorf("Expected %q for pricePerUnit, got %q", apperrors.ErrInvalidPrice, msg)
		}
	})
}
