package model

import "time"

// Security represents a tradable asset from the security master table.
// Beta is nullable in storage; a missing beta is treated as 0 in all
// risk calculations.
type Security struct {
	ID               string   `json:"id"`
	Ticker           string   `json:"ticker"`
	Name             string   `json:"name"`
	SecurityType     string   `json:"security_type"`
	Currency         string   `json:"currency"`
	Exchange         string   `json:"exchange"`
	Beta             *float64 `json:"beta,omitempty"`
	BenchmarkIndexID *string  `json:"benchmark_index_id,omitempty"`
}

// BetaOrZero returns the security's beta, defaulting to 0 when unset.
func (s Security) BetaOrZero() float64 {
	if s.Beta == nil {
		return 0
	}
	return *s.Beta
}

// DailyPrice is a sparse end-of-day closing price observation.
// Observations are not guaranteed for every calendar day.
type DailyPrice struct {
	ID           string    `json:"id"`
	SecurityID   string    `json:"security_id"`
	PriceDate    time.Time `json:"price_date"`
	ClosingPrice float64   `json:"closing_price"`
}
