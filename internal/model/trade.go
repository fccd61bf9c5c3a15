package model

import "time"

// Trade types for the append-only trade ledger.
const (
	TradeTypeBuy  = "BUY"
	TradeTypeSell = "SELL"
)

// Trade is an immutable ledger entry. The ledger is append-only: trades
// are never mutated or deleted once committed.
type Trade struct {
	ID           string    `json:"id"`
	PortfolioID  string    `json:"portfolio_id"`
	SecurityID   string    `json:"security_id"`
	TradeDate    time.Time `json:"trade_date"`
	TradeType    string    `json:"trade_type"`
	Quantity     float64   `json:"quantity"`
	PricePerUnit float64   `json:"price_per_unit"`
}

// SignedQuantity returns the trade's effect on the position: positive for
// buys, negative for sells.
func (t Trade) SignedQuantity() float64 {
	if t.TradeType == TradeTypeSell {
		return -t.Quantity
	}
	return t.Quantity
}
