package model

// Client represents an account owner from the database
type Client struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Portfolio represents a portfolio from the database.
// ClientName is populated when the portfolio is loaded joined to its client.
type Portfolio struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BaseCurrency string `json:"base_currency"`
	ClientID     string `json:"client_id"`
	ClientName   string `json:"client_name,omitempty"`
}

// CashBalance is a per-portfolio, per-currency running cash amount.
// It is mutated only by the trade entry path and read-only everywhere else.
type CashBalance struct {
	ID          string  `json:"id"`
	PortfolioID string  `json:"portfolio_id"`
	Currency    string  `json:"currency"`
	Amount      float64 `json:"amount"`
}
