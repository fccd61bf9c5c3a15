// Package request defines the JSON request bodies accepted by the API.
package request

// CreateTradeRequest is the body of POST /api/trades.
type CreateTradeRequest struct {
	PortfolioID  string  `json:"portfolio_id"`
	SecurityID   string  `json:"security_id"`
	TradeDate    string  `json:"trade_date"`
	TradeType    string  `json:"trade_type"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
}
