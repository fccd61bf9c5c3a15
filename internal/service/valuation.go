package service

import (
	"fmt"
	"math"
	"time"
)

// trailingWindowDays is the length of the trailing valuation window: the
// daily value series covers [reportDate-365d, reportDate].
const trailingWindowDays = 365

// DatedReturn is one entry of the daily return series: the
// period-over-period percentage change of total portfolio value on Date.
type DatedReturn struct {
	Date   time.Time
	Return float64
}

// DailyReturns reconstructs the portfolio's daily mark-to-market value
// over the trailing window and derives its daily return series.
//
// The computation is a pure function of the trade ledger, the price
// history and the window: no state survives the call.
//
// Algorithm:
//  1. Replay every trade up to the report date; trades before the window
//     start still establish opening positions.
//  2. Build one forward-filled price column per traded security over the
//     window. Days before a security's first observation stay undefined.
//  3. Build a step-function holdings column per security (signed trade
//     deltas followed by a prefix sum).
//  4. Daily total value = sum over securities of quantity x price, with
//     undefined prices contributing zero.
//  5. Daily returns are period-over-period changes; entries with a zero
//     previous value or a non-finite ratio are dropped, not zero-filled.
//
// Returns an empty series when the portfolio has no trades at or before
// the report date.
func (s *StatementService) DailyReturns(portfolioID string, reportDate time.Time) ([]DatedReturn, error) {
	start := reportDate.AddDate(0, 0, -trailingWindowDays)

	trades, err := s.tradeRepo.GetTradesForPortfolio(portfolioID, reportDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load trades for valuation: %w", err)
	}
	if len(trades) == 0 {
		return []DatedReturn{}, nil
	}

	securityIDs := []string{}
	seen := make(map[string]bool)
	for _, t := range trades {
		if !seen[t.SecurityID] {
			seen[t.SecurityID] = true
			securityIDs = append(securityIDs, t.SecurityID)
		}
	}

	pricesBySecurity, err := s.priceRepo.GetPricesForSecurities(securityIDs, start, reportDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load prices for valuation: %w", err)
	}

	days := dayIndex(start, reportDate) + 1

	// Price grid: one forward-filled column per security. NaN marks days
	// before the first observation; the scan never extrapolates backward.
	priceGrid := make(map[string][]float64, len(securityIDs))
	for _, securityID := range securityIDs {
		col := make([]float64, days)
		for i := range col {
			col[i] = math.NaN()
		}
		for _, p := range pricesBySecurity[securityID] {
			if idx := dayIndex(start, p.PriceDate); idx >= 0 && idx < days {
				col[idx] = p.ClosingPrice
			}
		}
		for i := 1; i < days; i++ {
			if math.IsNaN(col[i]) {
				col[i] = col[i-1]
			}
		}
		priceGrid[securityID] = col
	}

	// Holdings grid: net quantity held as of each day. Each trade applies
	// its signed quantity from its trade date onward; trades before the
	// window start apply from day zero.
	holdingsGrid := make(map[string][]float64, len(securityIDs))
	for _, securityID := range securityIDs {
		holdingsGrid[securityID] = make([]float64, days)
	}
	for _, t := range trades {
		idx := dayIndex(start, t.TradeDate)
		if idx < 0 {
			idx = 0
		}
		if idx < days {
			holdingsGrid[t.SecurityID][idx] += t.SignedQuantity()
		}
	}
	for _, col := range holdingsGrid {
		for i := 1; i < days; i++ {
			col[i] += col[i-1]
		}
	}

	values := make([]float64, days)
	for d := 0; d < days; d++ {
		var total float64
		for _, securityID := range securityIDs {
			price := priceGrid[securityID][d]
			if math.IsNaN(price) {
				continue
			}
			total += holdingsGrid[securityID][d] * price
		}
		values[d] = total
	}

	returns := make([]DatedReturn, 0, days-1)
	for d := 1; d < days; d++ {
		prev := values[d-1]
		if prev == 0 {
			continue
		}
		r := (values[d] - prev) / prev
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		returns = append(returns, DatedReturn{
			Date:   start.AddDate(0, 0, d),
			Return: r,
		})
	}

	return returns, nil
}

// dayIndex returns the number of whole days from start to d. Both are UTC
// midnight times, so the division is exact.
func dayIndex(start, d time.Time) int {
	return int(d.Sub(start) / (24 * time.Hour))
}
