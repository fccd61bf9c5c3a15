package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rdevries/portfolio-statement-backend/internal/api/request"
	"github.com/rdevries/portfolio-statement-backend/internal/api/response"
	"github.com/rdevries/portfolio-statement-backend/internal/apperrors"
	"github.com/rdevries/portfolio-statement-backend/internal/service"
	"github.com/rdevries/portfolio-statement-backend/internal/validation"
)

// TradeHandler handles trade entry requests
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// CreateTradeResponse is returned after a trade has been committed.
type CreateTradeResponse struct {
	Message string `json:"message"`
	TradeID string `json:"trade_id"`
}

// CreateTrade appends a trade to the ledger and adjusts the portfolio's
// cash balance atomically.
func (h *TradeHandler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON payload", err.Error())
		return
	}

	if err := validation.ValidateCreateTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	// Validated above
	tradeDate, _ := time.Parse("2006-01-02", req.TradeDate)
	tradeType := strings.ToUpper(strings.TrimSpace(req.TradeType))

	trade, err := h.tradeService.RecordTrade(
		req.PortfolioID,
		req.SecurityID,
		tradeDate,
		tradeType,
		req.Quantity,
		req.PricePerUnit,
	)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) || errors.Is(err, apperrors.ErrSecurityNotFound) {
		response.RespondError(w, http.StatusNotFound, "portfolio or security not found", nil)
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRecordTrade.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, CreateTradeResponse{
		Message: "trade added successfully",
		TradeID: trade.ID,
	})
}
