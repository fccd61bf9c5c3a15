package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rdevries/portfolio-statement-backend/internal/api/response"
	"github.com/rdevries/portfolio-statement-backend/internal/apperrors"
	"github.com/rdevries/portfolio-statement-backend/internal/service"
	"github.com/rdevries/portfolio-statement-backend/internal/validation"
)

// PortfolioHandler handles portfolio listing and history requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	snapshotService  *service.SnapshotService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService, snapshotService *service.SnapshotService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		snapshotService:  snapshotService,
	}
}

// Portfolios lists all portfolios with their client names
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.portfolioService.GetAllPortfolios()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// ValueHistoryResponse is one recorded end-of-day value for a portfolio.
type ValueHistoryResponse struct {
	Date       string  `json:"date"`
	TotalValue float64 `json:"total_value"`
}

// ValueHistory returns the recorded end-of-day value snapshots for a
// portfolio within an optional start_date/end_date range.
func (h *PortfolioHandler) ValueHistory(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "portfolioId")
	if err := validation.ValidateUUID(portfolioID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid portfolio ID", err.Error())
		return
	}

	start, end, err := validation.ParseDateRange(
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
	)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date range", err.Error())
		return
	}

	snapshots, err := h.snapshotService.History(portfolioID, start, end)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) {
		response.RespondError(w, http.StatusNotFound, "portfolio not found", nil)
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve value history", err.Error())
		return
	}

	history := make([]ValueHistoryResponse, len(snapshots))
	for i, s := range snapshots {
		history[i] = ValueHistoryResponse{
			Date:       s.SnapshotDate.Format("2006-01-02"),
			TotalValue: s.TotalValue,
		}
	}

	response.RespondJSON(w, http.StatusOK, history)
}
