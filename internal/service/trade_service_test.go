package service_test

import (
	"database/sql"
	"errors"
	"math"
	"testing"

	"github.com/rdevries/portfolio-statement-backend/internal/apperrors"
	"github.com/rdevries/portfolio-statement-backend/internal/model"
	"github.com/rdevries/portfolio-statement-backend/internal/testutil"
)

// TestTradeService_RecordTrade tests the trade entry write path.
//
// WHY: This is the only operation that mutates state. The ledger insert
// and the cash adjustment must land together or not at all, and the cash
// side must move in the security's currency with the right sign.
func TestTradeService_RecordTrade(t *testing.T) {
	t.Run("returns not-found for unknown portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		security := testutil.NewSecurity().Build(t, db)

		_, err := svc.RecordTrade(testutil.MakeID(), security.ID, testutil.Date(2025, 6, 10), model.TradeTypeBuy, 10, 5)

		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Fatalf("Expected ErrPortfolioNotFound, got %v", err)
		}
		testutil.AssertRowCount(t, db, "trade", 0)
	})

	t.Run("returns not-found for unknown security", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		portfolio := testutil.CreatePortfolio(t, db)

		_, err := svc.RecordTrade(portfolio.ID, testutil.MakeID(), testutil.Date(2025, 6, 10), model.TradeTypeBuy, 10, 5)

		if !errors.Is(err, apperrors.ErrSecurityNotFound) {
			t.Fatalf("Expected ErrSecurityNotFound, got %v", err)
		}
		testutil.AssertRowCount(t, db, "trade", 0)
	})

	t.Run("a buy debits cash in the security currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		portfolio := testutil.CreatePortfolio(t, db)
		security := testutil.NewSecurity().WithCurrency("EUR").Build(t, db)

		trade, err := svc.RecordTrade(portfolio.ID, security.ID, testutil.Date(2025, 6, 10), model.TradeTypeBuy, 10, 5)
		if err != nil {
			t.Fatalf("RecordTrade() returned unexpected error: %v", err)
		}

		if trade.ID == "" {
			t.Error("Expected trade to be assigned an ID")
		}
		testutil.AssertRowCount(t, db, "trade", 1)

		// No EUR balance existed, so the adjustment creates one and
		// drives it negative.
		amount := cashAmount(t, db, portfolio.ID, "EUR")
		if math.Abs(amount-(-50)) > 1e-9 {
			t.Errorf("Expected EUR balance -50, got %v", amount)
		}
	})

	t.Run("a sell credits an existing cash balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		portfolio := testutil.CreatePortfolio(t, db)
		security := testutil.NewSecurity().WithCurrency("USD").Build(t, db)
		testutil.NewCashBalance(portfolio.ID).WithCurrency("USD").WithAmount(100).Build(t, db)

		_, err := svc.RecordTrade(portfolio.ID, security.ID, testutil.Date(2025, 6, 10), model.TradeTypeSell, 10, 5)
		if err != nil {
			t.Fatalf("RecordTrade() returned unexpected error: %v", err)
		}

		amount := cashAmount(t, db, portfolio.ID, "USD")
		if math.Abs(amount-150) > 1e-9 {
			t.Errorf("Expected USD balance 150, got %v", amount)
		}
		testutil.AssertRowCount(t, db, "cash_balance", 1)
	})

	t.Run("a rejected insert leaves cash untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradeService(t, db)

		portfolio := testutil.CreatePortfolio(t, db)
		security := testutil.NewSecurity().Build(t, db)
		testutil.NewCashBalance(portfolio.ID).WithCurrency("USD").WithAmount(100).Build(t, db)

		// The ledger schema only admits BUY and SELL; the whole
		// transaction must roll back.
		_, err := svc.RecordTrade(portfolio.ID, security.ID, testutil.Date(2025, 6, 10), "HOLD", 10, 5)
		if err == nil {
			t.Fatal("Expected error for invalid trade type, got nil")
		}

		testutil.AssertRowCount(t, db, "trade", 0)
		amount := cashAmount(t, db, portfolio.ID, "USD")
		if math.Abs(amount-100) > 1e-9 {
			t.Errorf("Expected USD balance unchanged at 100, got %v", amount)
		}
	})

	t.Run("a recorded trade feeds subsequent statements", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		tradeSvc := testutil.NewTestTradeService(t, db)
		statementSvc := testutil.NewTestStatementService(t, db)

		portfolio := testutil.CreatePortfolio(t, db)
		security := testutil.NewSecurity().WithTicker("FEED").Build(t, db)
		testutil.NewDailyPrice(security.ID).
			WithDate(testutil.Date(2025, 6, 10)).
			WithPrice(6).
			Build(t, db)

		_, err := tradeSvc.RecordTrade(portfolio.ID, security.ID, testutil.Date(2025, 6, 10), model.TradeTypeBuy, 10, 5)
		if err != nil {
			t.Fatalf("RecordTrade() returned unexpected error: %v", err)
		}

		statement, err := statementSvc.GenerateStatement(portfolio.ID, testutil.Date(2025, 6, 20))
		if err != nil {
			t.Fatalf("GenerateStatement() returned unexpected error: %v", err)
		}

		if len(statement.Holdings) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(statement.Holdings))
		}
		if statement.Holdings[0].Ticker != "FEED" {
			t.Errorf("Expected ticker FEED, got %s", statement.Holdings[0].Ticker)
		}
		// 10 units at 6, less the 50 cash debit from the buy.
		if statement.TotalPortfolioValue != 10 {
			t.Errorf("Expected total value 10, got %v", statement.TotalPortfolioValue)
		}
	})
}

// cashAmount reads a portfolio's cash balance in one currency straight
// from the database.
func cashAmount(t *testing.T, db *sql.DB, portfolioID, currency string) float64 {
	t.Helper()

	var amount float64
	err := db.QueryRow(
		`SELECT amount FROM cash_balance WHERE portfolio_id = ? AND currency = ?`,
		portfolioID, currency,
	).Scan(&amount)
	if err != nil {
		t.Fatalf("Failed to read cash balance: %v", err)
	}
	return amount
}
