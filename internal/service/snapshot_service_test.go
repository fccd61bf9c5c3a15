package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rdevries/portfolio-statement-backend/internal/apperrors"
	"github.com/rdevries/portfolio-statement-backend/internal/testutil"
)

// TestSnapshotService_CaptureAll tests the nightly snapshot job.
//
// WHY: The value-history endpoint serves whatever this job recorded, and
// the job must be idempotent so a re-run for the same date does not
// duplicate rows.
func TestSnapshotService_CaptureAll(t *testing.T) {
	t.Run("records one snapshot per portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		p1 := testutil.CreatePortfolio(t, db)
		p2 := testutil.CreatePortfolio(t, db)

		testutil.NewCashBalance(p1.ID).WithAmount(1000).Build(t, db)
		testutil.NewCashBalance(p2.ID).WithAmount(2500).Build(t, db)

		date := testutil.Date(2025, 6, 30)
		if err := svc.CaptureAll(context.Background(), date); err != nil {
			t.Fatalf("CaptureAll() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "portfolio_value_snapshot", 2)

		history, err := svc.History(p1.ID, testutil.Date(2025, 1, 1), date)
		if err != nil {
			t.Fatalf("History() returned unexpected error: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("Expected 1 snapshot, got %d", len(history))
		}
		if history[0].TotalValue != 1000 {
			t.Errorf("Expected total value 1000, got %v", history[0].TotalValue)
		}
		if !history[0].SnapshotDate.Equal(date) {
			t.Errorf("Expected snapshot date %s, got %s", date.Format("2006-01-02"), history[0].SnapshotDate.Format("2006-01-02"))
		}
		if history[0].CalculatedAt.IsZero() {
			t.Error("Expected a recorded calculation timestamp")
		}
	})

	t.Run("re-running the same date overwrites instead of duplicating", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		portfolio := testutil.CreatePortfolio(t, db)
		testutil.NewCashBalance(portfolio.ID).WithAmount(1000).Build(t, db)

		date := testutil.Date(2025, 6, 30)
		if err := svc.CaptureAll(context.Background(), date); err != nil {
			t.Fatalf("CaptureAll() returned unexpected error: %v", err)
		}
		if err := svc.CaptureAll(context.Background(), date); err != nil {
			t.Fatalf("Second CaptureAll() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "portfolio_value_snapshot", 1)
	})

	t.Run("no portfolios is a no-op", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		if err := svc.CaptureAll(context.Background(), testutil.Date(2025, 6, 30)); err != nil {
			t.Fatalf("CaptureAll() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "portfolio_value_snapshot", 0)
	})
}

// TestSnapshotService_History tests snapshot retrieval.
//
// WHY: History must reject unknown portfolios and honor the requested
// date range, since it backs a public endpoint.
func TestSnapshotService_History(t *testing.T) {
	t.Run("returns not-found for unknown portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		_, err := svc.History(testutil.MakeID(), testutil.Date(2025, 1, 1), testutil.Date(2025, 6, 30))

		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Fatalf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})

	t.Run("filters snapshots to the requested range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		portfolio := testutil.CreatePortfolio(t, db)
		testutil.NewCashBalance(portfolio.ID).WithAmount(1000).Build(t, db)

		for _, day := range []int{10, 20, 30} {
			if err := svc.CaptureAll(context.Background(), testutil.Date(2025, 6, day)); err != nil {
				t.Fatalf("CaptureAll() returned unexpected error: %v", err)
			}
		}

		history, err := svc.History(portfolio.ID, testutil.Date(2025, 6, 15), testutil.Date(2025, 6, 25))
		if err != nil {
			t.Fatalf("History() returned unexpected error: %v", err)
		}

		if len(history) != 1 {
			t.Fatalf("Expected 1 snapshot in range, got %d", len(history))
		}
		if !history[0].SnapshotDate.Equal(testutil.Date(2025, 6, 20)) {
			t.Errorf("Expected snapshot dated 2025-06-20, got %s", history[0].SnapshotDate.Format("2006-01-02"))
		}
	})
}
