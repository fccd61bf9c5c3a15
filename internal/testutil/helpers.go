package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rdevries/portfolio-statement-backend/internal/repository"
	"github.com/rdevries/portfolio-statement-backend/internal/service"
)

// TestRiskFreeRate is the annual risk-free rate used by test services.
const TestRiskFreeRate = 0.02

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	portfolioRepo := repository.NewPortfolioRepository(db)

	return service.NewPortfolioService(portfolioRepo)
}

func NewTestStatementService(t *testing.T, db *sql.DB) *service.StatementService {
	t.Helper()

	return service.NewStatementService(
		repository.NewPortfolioRepository(db),
		repository.NewSecurityRepository(db),
		repository.NewTradeRepository(db),
		repository.NewPriceRepository(db),
		repository.NewIndexRepository(db),
		repository.NewCashRepository(db),
		TestRiskFreeRate,
		zerolog.Nop(),
	)
}

func NewTestTradeService(t *testing.T, db *sql.DB) *service.TradeService {
	t.Helper()

	return service.NewTradeService(
		db,
		repository.NewPortfolioRepository(db),
		repository.NewSecurityRepository(db),
		repository.NewTradeRepository(db),
		repository.NewCashRepository(db),
		zerolog.Nop(),
	)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		repository.NewPortfolioRepository(db),
		repository.NewSnapshotRepository(db),
		NewTestStatementService(t, db),
		zerolog.Nop(),
	)
}

// Date returns a UTC midnight time for the given calendar day, matching
// how trade and price dates are stored.
//
// Example usage:
//
//	reportDate := testutil.Date(2025, 6, 30)
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeTicker generates a unique ticker symbol for testing.
//
// Example usage:
//
//	ticker := testutil.MakeTicker("AAPL")
//	// Returns: "AAPL1A2B"
func MakeTicker(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeName generates a unique display name for testing.
//
// Example usage:
//
//	name := testutil.MakeName("Test Portfolio")
//	// Returns: "Test Portfolio ABC123"
func MakeName(base string) string {
	if base == "" {
		base = "Test"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeEmail generates a unique email address for testing.
func MakeEmail() string {
	return "test-" + randomAlphanumeric(8) + "@example.com"
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
