package service

import (
	"time"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
)

// holding accumulates the position state for one security while replaying
// the trade ledger. TotalCost and TotalQuantityBought accumulate on buys
// only and are never reduced by sells: the average buy price is an
// average-cost basis that deliberately does not re-base on partial
// disposals.
type holding struct {
	securityID          string
	netQuantity         float64
	totalCost           float64
	totalQuantityBought float64
	firstTradeDate      time.Time
}

// averageBuyPrice returns the average cost of all historical buys.
// Callers must check totalQuantityBought > 0 first.
func (h *holding) averageBuyPrice() float64 {
	return h.totalCost / h.totalQuantityBought
}

// buildHoldings replays trades (already in replay order: trade date, then
// ledger insertion order) into per-security holdings. The returned order
// slice preserves the first-touch order of securities in the ledger,
// which is the order holdings appear on the statement.
//
// Every trade contributes to its security's net quantity, including
// sell-side netting on positions that later drop off the report.
func buildHoldings(trades []model.Trade) (map[string]*holding, []string) {
	holdings := make(map[string]*holding)
	order := []string{}

	for _, t := range trades {
		h, ok := holdings[t.SecurityID]
		if !ok {
			h = &holding{
				securityID:     t.SecurityID,
				firstTradeDate: t.TradeDate,
			}
			holdings[t.SecurityID] = h
			order = append(order, t.SecurityID)
		}

		switch t.TradeType {
		case model.TradeTypeBuy:
			h.netQuantity += t.Quantity
			h.totalCost += t.Quantity * t.PricePerUnit
			h.totalQuantityBought += t.Quantity
			if t.TradeDate.Before(h.firstTradeDate) {
				h.firstTradeDate = t.TradeDate
			}
		case model.TradeTypeSell:
			h.netQuantity -= t.Quantity
		}
	}

	return holdings, order
}

// reportable reports whether the holding appears on a statement: the net
// quantity must be positive and at least one buy must have occurred so
// the average buy price is defined.
func (h *holding) reportable() bool {
	return h.netQuantity > 0 && h.totalQuantityBought > 0
}
