package repository_test

import (
	"testing"

	"github.com/rdevries/portfolio-statement-backend/internal/repository"
	"github.com/rdevries/portfolio-statement-backend/internal/testutil"
)

// TestPriceRepository_GetPriceOnOrBefore tests the on-or-before price
// lookup.
//
// WHY: Statement valuation depends on picking the latest observation at
// or before the report date and never looking forward. A missing history
// must come back as the zero sentinel, not an error.
func TestPriceRepository_GetPriceOnOrBefore(t *testing.T) {
	t.Run("picks the observation on the exact date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)

		security := testutil.NewSecurity().Build(t, db)
		testutil.NewDailyPrice(security.ID).WithDate(testutil.Date(2025, 6, 10)).WithPrice(100).Build(t, db)
		testutil.NewDailyPrice(security.ID).WithDate(testutil.Date(2025, 6, 11)).WithPrice(105).Build(t, db)

		price, err := repo.GetPriceOnOrBefore(security.ID, testutil.Date(2025, 6, 10))
		if err != nil {
			t.Fatalf("GetPriceOnOrBefore() returned unexpected error: %v", err)
		}
		if price != 100 {
			t.Errorf("Expected price 100, got %v", price)
		}
	})

	t.Run("falls back to the latest earlier observation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)

		security := testutil.NewSecurity().Build(t, db)
		testutil.NewDailyPrice(security.ID).WithDate(testutil.Date(2025, 6, 5)).WithPrice(90).Build(t, db)
		testutil.NewDailyPrice(security.ID).WithDate(testutil.Date(2025, 6, 8)).WithPrice(95).Build(t, db)
		// Future observation must never be picked.
		testutil.NewDailyPrice(security.ID).WithDate(testutil.Date(2025, 6, 20)).WithPrice(200).Build(t, db)

		price, err := repo.GetPriceOnOrBefore(security.ID, testutil.Date(2025, 6, 15))
		if err != nil {
			t.Fatalf("GetPriceOnOrBefore() returned unexpected error: %v", err)
		}
		if price != 95 {
			t.Errorf("Expected price 95, got %v", price)
		}
	})

	t.Run("returns zero when no observation exists", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)

		security := testutil.NewSecurity().Build(t, db)

		price, err := repo.GetPriceOnOrBefore(security.ID, testutil.Date(2025, 6, 15))
		if err != nil {
			t.Fatalf("GetPriceOnOrBefore() returned unexpected error: %v", err)
		}
		if price != 0 {
			t.Errorf("Expected sentinel 0, got %v", price)
		}
	})
}

// TestPriceRepository_GetPricesForSecurities tests bulk window loading.
func TestPriceRepository_GetPricesForSecurities(t *testing.T) {
	t.Run("groups observations by security within the window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)

		s1 := testutil.NewSecurity().Build(t, db)
		s2 := testutil.NewSecurity().Build(t, db)

		testutil.CreatePriceSeries(t, db, s1.ID, testutil.Date(2025, 6, 10), 10, 11, 12)
		testutil.NewDailyPrice(s2.ID).WithDate(testutil.Date(2025, 6, 11)).WithPrice(50).Build(t, db)
		// Outside the window.
		testutil.NewDailyPrice(s2.ID).WithDate(testutil.Date(2025, 7, 1)).WithPrice(60).Build(t, db)

		prices, err := repo.GetPricesForSecurities([]string{s1.ID, s2.ID}, testutil.Date(2025, 6, 1), testutil.Date(2025, 6, 30))
		if err != nil {
			t.Fatalf("GetPricesForSecurities() returned unexpected error: %v", err)
		}

		if len(prices[s1.ID]) != 3 {
			t.Errorf("Expected 3 observations for first security, got %d", len(prices[s1.ID]))
		}
		if len(prices[s2.ID]) != 1 {
			t.Errorf("Expected 1 observation for second security, got %d", len(prices[s2.ID]))
		}

		// Ascending by date.
		series := prices[s1.ID]
		for i := 1; i < len(series); i++ {
			if series[i].PriceDate.Before(series[i-1].PriceDate) {
				t.Error("Expected observations sorted ascending by date")
			}
		}
	})

	t.Run("empty ID list returns an empty map", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)

		prices, err := repo.GetPricesForSecurities(nil, testutil.Date(2025, 6, 1), testutil.Date(2025, 6, 30))
		if err != nil {
			t.Fatalf("GetPricesForSecurities() returned unexpected error: %v", err)
		}
		if len(prices) != 0 {
			t.Errorf("Expected empty map, got %d entries", len(prices))
		}
	})
}
