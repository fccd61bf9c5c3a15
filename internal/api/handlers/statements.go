// Package handlers contains the HTTP handlers for the API.
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

// StatementHandler handles statement generation requests
type StatementHandler struct {
	statementService *service.StatementService
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(statementService *service.StatementService) *StatementHandler {
	return &StatementHandler{statementService: statementService}
}

// Statement generates and returns the portfolio statement for the report
// date in the `date` query parameter (default: today, UTC).
func (h *StatementHandler) Statement(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "portfolioId")
	if err := validation.ValidateUUID(portfolioID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid portfolio ID", err.Error())
		return
	}

	reportDate, err := validation.ParseReportDate(r.URL.Query().Get("date"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date format, please use YYYY-MM-DD", err.Error())
		return
	}

	statement, err := h.statementService.GenerateStatement(portfolioID, reportDate)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) {
		response.RespondError(w, http.StatusNotFound, "portfolio not found", nil)
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGenerateStatement.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, statement)
}
