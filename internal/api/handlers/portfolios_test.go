package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rdevries/portfolio-statement-backend/internal/api/handlers"
	"github.com/rdevries/portfolio-statement-backend/internal/api/response"
	"github.com/rdevries/portfolio-statement-backend/internal/apperrors"
	"github.com/rdevries/portfolio-statement-backend/internal/model"
	"github.com/rdevries/portfolio-statement-backend/internal/testutil"
)

// TestPortfolioHandler_Portfolios tests GET /api/portfolios.
//
// WHY: The listing is the entry point of the frontend; it must return a
// JSON array (empty included) with client names attached.
func TestPortfolioHandler_Portfolios(t *testing.T) {
	t.Run("returns 200 with empty array", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(
			testutil.NewTestPortfolioService(t, db),
			testutil.NewTestSnapshotService(t, db),
		)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolios", nil)
		w := httptest.NewRecorder()

		handler.Portfolios(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var portfolios []model.Portfolio
		if err := json.NewDecoder(w.Body).Decode(&portfolios); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(portfolios) != 0 {
			t.Errorf("Expected empty array, got %d items", len(portfolios))
		}
	})

	t.Run("returns all portfolios with client names", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(
			testutil.NewTestPortfolioService(t, db),
			testutil.NewTestSnapshotService(t, db),
		)

		client := testutil.NewClient().WithName("Alice Example").Build(t, db)
		testutil.NewPortfolio(client.ID).WithName("Growth").Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolios", nil)
		w := httptest.NewRecorder()

		handler.Portfolios(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var portfolios []model.Portfolio
		if err := json.NewDecoder(w.Body).Decode(&portfolios); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(portfolios) != 1 {
			t.Fatalf("Expected 1 portfolio, got %d", len(portfolios))
		}
		if portfolios[0].ClientName != "Alice Example" {
			t.Errorf("Expected client name Alice Example, got %s", portfolios[0].ClientName)
		}
	})

	t.Run("returns 500 with the retrieval error message when the database is gone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(
			testutil.NewTestPortfolioService(t, db),
			testutil.NewTestSnapshotService(t, db),
		)

		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/portfolios", nil)
		w := httptest.NewRecorder()

		handler.Portfolios(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("Expected status 500, got %d", w.Code)
		}

		var errResp response.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if errResp.Error != apperrors.ErrFailedToRetrievePortfolios.Error() {
			t.Errorf("Expected %q, got %q", apperrors.ErrFailedToRetrievePortfolios, errResp.Error)
		}
	})
}

// TestPortfolioHandler_ValueHistory tests GET /api/portfolio/{id}/value-history.
func TestPortfolioHandler_ValueHistory(t *testing.T) {
	t.Run("returns 400 for a malformed range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(
			testutil.NewTestPortfolioService(t, db),
			testutil.NewTestSnapshotService(t, db),
		)

		portfolio := testutil.CreatePortfolio(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/portfolio/"+portfolio.ID+"/value-history?start_date=2025-07-01&end_date=2025-06-01",
			map[string]string{"portfolioId": portfolio.ID},
		)
		w := httptest.NewRecorder()

		handler.ValueHistory(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 404 for an unknown portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(
			testutil.NewTestPortfolioService(t, db),
			testutil.NewTestSnapshotService(t, db),
		)

		unknownID := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/portfolio/"+unknownID+"/value-history",
			map[string]string{"portfolioId": unknownID},
		)
		w := httptest.NewRecorder()

		handler.ValueHistory(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("returns recorded snapshots as dated values", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		snapshotService := testutil.NewTestSnapshotService(t, db)
		handler := handlers.NewPortfolioHandler(
			testutil.NewTestPortfolioService(t, db),
			snapshotService,
		)

		portfolio := testutil.CreatePortfolio(t, db)
		testutil.NewCashBalance(portfolio.ID).WithAmount(1000).Build(t, db)

		if err := snapshotService.CaptureAll(context.Background(), testutil.Date(2025, 6, 30)); err != nil {
			t.Fatalf("CaptureAll() returned unexpected error: %v", err)
		}

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/portfolio/"+portfolio.ID+"/value-history?start_date=2025-06-01&end_date=2025-07-01",
			map[string]string{"portfolioId": portfolio.ID},
		)
		w := httptest.NewRecorder()

		handler.ValueHistory(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var history []handlers.ValueHistoryResponse
		if err := json.NewDecoder(w.Body).Decode(&history); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(history))
		}
		if history[0].Date != "2025-06-30" {
			t.Errorf("Expected date 2025-06-30, got %s", history[0].Date)
		}
		if history[0].TotalValue != 1000 {
			t.Errorf("Expected total value 1000, got %v", history[0].TotalValue)
		}
	})
}
