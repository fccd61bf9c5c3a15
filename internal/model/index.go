package model

import "time"

// MarketIndex is static data for a benchmark index
type MarketIndex struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
}

// IndexPrice is a sparse end-of-day closing value observation for a
// benchmark index.
type IndexPrice struct {
	ID           string    `json:"id"`
	IndexID      string    `json:"index_id"`
	PriceDate    time.Time `json:"price_date"`
	ClosingValue float64   `json:"closing_value"`
}

// PortfolioValueSnapshot is a pre-calculated end-of-day total value for a
// portfolio, written by the nightly snapshot job.
type PortfolioValueSnapshot struct {
	ID           string    `json:"id"`
	PortfolioID  string    `json:"portfolio_id"`
	SnapshotDate time.Time `json:"snapshot_date"`
	TotalValue   float64   `json:"total_value"`
	CalculatedAt time.Time `json:"calculated_at"`
}
