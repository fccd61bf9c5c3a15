package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
	"github.com/rdevries/portfolio-statement-backend/internal/repository"
)

// StatementService is the valuation and risk engine. It turns the
// append-only trade ledger plus daily price observations into a complete
// point-in-time statement: reconstructed holdings, mark-to-market
// valuation, risk measures and benchmark comparisons.
//
// Every statement is rebuilt fresh from persisted state; the service
// holds no mutable state of its own, so concurrent requests are safe.
type StatementService struct {
	portfolioRepo *repository.PortfolioRepository
	securityRepo  *repository.SecurityRepository
	tradeRepo     *repository.TradeRepository
	priceRepo     *repository.PriceRepository
	indexRepo     *repository.IndexRepository
	cashRepo      *repository.CashRepository
	riskFreeRate  float64
	log           zerolog.Logger
}

// NewStatementService creates a new StatementService with the provided
// repository dependencies and annual risk-free rate.
func NewStatementService(
	portfolioRepo *repository.PortfolioRepository,
	securityRepo *repository.SecurityRepository,
	tradeRepo *repository.TradeRepository,
	priceRepo *repository.PriceRepository,
	indexRepo *repository.IndexRepository,
	cashRepo *repository.CashRepository,
	riskFreeRate float64,
	log zerolog.Logger,
) *StatementService {
	return &StatementService{
		portfolioRepo: portfolioRepo,
		securityRepo:  securityRepo,
		tradeRepo:     tradeRepo,
		priceRepo:     priceRepo,
		indexRepo:     indexRepo,
		cashRepo:      cashRepo,
		riskFreeRate:  riskFreeRate,
		log:           log.With().Str("service", "statement").Logger(),
	}
}

// GenerateStatement produces the complete statement for a portfolio as of
// the report date. Returns apperrors.ErrPortfolioNotFound when the
// portfolio does not exist; no partial statement is ever returned.
//
// All internal computation runs at full precision. Monetary and ratio
// fields are rounded only here, at the presentation boundary.
func (s *StatementService) GenerateStatement(portfolioID string, reportDate time.Time) (model.Statement, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return model.Statement{}, err
	}

	trades, err := s.tradeRepo.GetTradesForPortfolio(portfolioID, reportDate)
	if err != nil {
		return model.Statement{}, fmt.Errorf("failed to load trade ledger: %w", err)
	}

	positions, order := buildHoldings(trades)

	securities, err := s.securityRepo.GetSecuritiesOnIDs(order)
	if err != nil {
		return model.Statement{}, fmt.Errorf("failed to load securities: %w", err)
	}

	var valued []valuedHolding
	var totalValue float64

	for _, securityID := range order {
		position := positions[securityID]
		if !position.reportable() {
			continue
		}

		security, ok := securities[securityID]
		if !ok {
			return model.Statement{}, fmt.Errorf("trade references unknown security %s", securityID)
		}

		currentPrice, err := s.priceRepo.GetPriceOnOrBefore(securityID, reportDate)
		if err != nil {
			return model.Statement{}, fmt.Errorf("failed to look up price: %w", err)
		}

		buyValue := position.averageBuyPrice() * position.netQuantity
		currentValue := currentPrice * position.netQuantity
		totalValue += currentValue

		valued = append(valued, valuedHolding{
			security:     security,
			position:     position,
			currentPrice: currentPrice,
			buyValue:     buyValue,
			currentValue: currentValue,
		})
	}

	cashBalances, err := s.cashRepo.GetCashBalances(portfolioID)
	if err != nil {
		return model.Statement{}, fmt.Errorf("failed to load cash balances: %w", err)
	}

	cashList := make([]model.StatementCash, 0, len(cashBalances))
	for _, cb := range cashBalances {
		totalValue += cb.Amount
		cashList = append(cashList, model.StatementCash{
			Currency: cb.Currency,
			Amount:   round2(cb.Amount),
		})
	}

	dailyReturns, err := s.DailyReturns(portfolioID, reportDate)
	if err != nil {
		return model.Statement{}, err
	}

	returnValues := make([]float64, len(dailyReturns))
	for i, dr := range dailyReturns {
		returnValues[i] = dr.Return
	}

	riskMeasures := s.riskMeasures(valued, totalValue, returnValues)

	benchmarks, err := s.benchmarkPerformance(dailyReturns, reportDate)
	if err != nil {
		return model.Statement{}, err
	}

	holdingsList := make([]model.StatementHolding, 0, len(valued))
	for _, v := range valued {
		holdingsList = append(holdingsList, model.StatementHolding{
			Ticker:            v.security.Ticker,
			Name:              v.security.Name,
			Quantity:          v.position.netQuantity,
			AverageBuyPrice:   round2(v.position.averageBuyPrice()),
			BuyValue:          round2(v.buyValue),
			CurrentPrice:      round2(v.currentPrice),
			CurrentValue:      round2(v.currentValue),
			GainLoss:          round2(v.currentValue - v.buyValue),
			HoldingPeriodDays: dayIndex(v.position.firstTradeDate, reportDate),
			Beta:              v.security.BetaOrZero(),
		})
	}

	s.log.Debug().
		Str("portfolio_id", portfolioID).
		Str("report_date", reportDate.Format("2006-01-02")).
		Int("holdings", len(holdingsList)).
		Int("return_samples", len(dailyReturns)).
		Msg("statement generated")

	return model.Statement{
		PortfolioID:           portfolio.ID,
		PortfolioName:         portfolio.Name,
		ClientName:            portfolio.ClientName,
		ReportDate:            reportDate.Format("2006-01-02"),
		BaseCurrency:          portfolio.BaseCurrency,
		TotalPortfolioValue:   round2(totalValue),
		Holdings:              holdingsList,
		CashBalances:          cashList,
		RiskMeasures:          riskMeasures,
		PerformanceBenchmarks: benchmarks,
	}, nil
}
