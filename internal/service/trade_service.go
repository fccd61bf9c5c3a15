package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
	"github.com/rdevries/portfolio-statement-backend/internal/repository"
)

// TradeService handles the only write path in the system: appending a
// trade to the ledger together with the matching cash balance adjustment.
type TradeService struct {
	db            *sql.DB
	portfolioRepo *repository.PortfolioRepository
	securityRepo  *repository.SecurityRepository
	tradeRepo     *repository.TradeRepository
	cashRepo      *repository.CashRepository
	log           zerolog.Logger
}

// NewTradeService creates a new TradeService. The service owns the
// database handle because trade entry spans multiple statements that must
// commit in one transaction.
func NewTradeService(
	db *sql.DB,
	portfolioRepo *repository.PortfolioRepository,
	securityRepo *repository.SecurityRepository,
	tradeRepo *repository.TradeRepository,
	cashRepo *repository.CashRepository,
	log zerolog.Logger,
) *TradeService {
	return &TradeService{
		db:            db,
		portfolioRepo: portfolioRepo,
		securityRepo:  securityRepo,
		tradeRepo:     tradeRepo,
		cashRepo:      cashRepo,
		log:           log.With().Str("service", "trade").Logger(),
	}
}

// RecordTrade appends a trade to the ledger and adjusts the portfolio's
// cash balance in the security's currency: a BUY debits quantity x price,
// a SELL credits it. The insert and the adjustment commit atomically or
// not at all, so readers never observe a partially-applied trade.
//
// Returns apperrors.ErrPortfolioNotFound or apperrors.ErrSecurityNotFound
// when the referenced entities do not exist.
func (s *TradeService) RecordTrade(portfolioID, securityID string, tradeDate time.Time, tradeType string, quantity, pricePerUnit float64) (model.Trade, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return model.Trade{}, err
	}

	security, err := s.securityRepo.GetSecurityOnID(securityID)
	if err != nil {
		return model.Trade{}, err
	}

	trade := model.Trade{
		ID:           uuid.NewString(),
		PortfolioID:  portfolio.ID,
		SecurityID:   security.ID,
		TradeDate:    tradeDate,
		TradeType:    tradeType,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.Trade{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := s.tradeRepo.InsertTradeTx(tx, trade); err != nil {
		return model.Trade{}, err
	}

	delta := quantity * pricePerUnit
	if tradeType == model.TradeTypeBuy {
		delta = -delta
	}

	if err := s.cashRepo.AdjustCashBalanceTx(tx, portfolio.ID, security.Currency, delta); err != nil {
		return model.Trade{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Trade{}, fmt.Errorf("failed to commit trade: %w", err)
	}

	s.log.Info().
		Str("trade_id", trade.ID).
		Str("portfolio_id", portfolio.ID).
		Str("ticker", security.Ticker).
		Str("type", tradeType).
		Float64("quantity", quantity).
		Msg("trade recorded")

	return trade, nil
}
