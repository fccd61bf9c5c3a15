package testutil

import (
	"database/sql"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
)

// ClientBuilder provides a fluent interface for creating test clients.
//
// Example usage:
//
//	client := testutil.NewClient().WithName("Jane Doe").Build(t, db)
type ClientBuilder struct {
	ID    string
	Name  string
	Email string
}

// NewClient creates a ClientBuilder with sensible defaults.
func NewClient() *ClientBuilder {
	return &ClientBuilder{
		ID:    MakeID(),
		Name:  MakeName("Test Client"),
		Email: MakeEmail(),
	}
}

// WithName sets a custom name.
func (b *ClientBuilder) WithName(name string) *ClientBuilder {
	b.Name = name
	return b
}

// Build creates the client in the database and returns it.
func (b *ClientBuilder) Build(t *testing.T, db *sql.DB) model.Client {
	t.Helper()

	query := `
		INSERT INTO client (id, name, email)
		VALUES (?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Email)
	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}

	return model.Client{
		ID:    b.ID,
		Name:  b.Name,
		Email: b.Email,
	}
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	client := testutil.NewClient().Build(t, db)
//	portfolio := testutil.NewPortfolio(client.ID).
//	    WithName("Growth Portfolio").
//	    WithBaseCurrency("EUR").
//	    Build(t, db)
type PortfolioBuilder struct {
	ID           string
	Name         string
	BaseCurrency string
	ClientID     string
	clientName   string
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio(clientID string) *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:           MakeID(),
		Name:         MakeName("Test Portfolio"),
		BaseCurrency: "USD",
		ClientID:     clientID,
	}
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithBaseCurrency sets the base currency.
func (b *PortfolioBuilder) WithBaseCurrency(currency string) *PortfolioBuilder {
	b.BaseCurrency = currency
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	query := `
		INSERT INTO portfolio (id, name, base_currency, client_id)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.BaseCurrency, b.ClientID)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:           b.ID,
		Name:         b.Name,
		BaseCurrency: b.BaseCurrency,
		ClientID:     b.ClientID,
		ClientName:   b.clientName,
	}
}

// CreatePortfolio creates a client plus portfolio pair in one call.
//
// Example usage:
//
//	portfolio := testutil.CreatePortfolio(t, db)
func CreatePortfolio(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	client := NewClient().Build(t, db)
	builder := NewPortfolio(client.ID)
	builder.clientName = client.Name
	return builder.Build(t, db)
}

// MarketIndexBuilder provides a fluent interface for creating benchmark
// indices.
type MarketIndexBuilder struct {
	ID     string
	Name   string
	Ticker string
}

// NewMarketIndex creates a MarketIndexBuilder with sensible defaults.
func NewMarketIndex() *MarketIndexBuilder {
	return &MarketIndexBuilder{
		ID:     MakeID(),
		Name:   MakeName("Test Index"),
		Ticker: MakeTicker("^IDX"),
	}
}

// WithName sets a custom name.
func (b *MarketIndexBuilder) WithName(name string) *MarketIndexBuilder {
	b.Name = name
	return b
}

// WithTicker sets a custom ticker.
func (b *MarketIndexBuilder) WithTicker(ticker string) *MarketIndexBuilder {
	b.Ticker = ticker
	return b
}

// Build creates the market index in the database and returns it.
func (b *MarketIndexBuilder) Build(t *testing.T, db *sql.DB) model.MarketIndex {
	t.Helper()

	query := `
		INSERT INTO market_index (id, name, ticker)
		VALUES (?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Ticker)
	if err != nil {
		t.Fatalf("Failed to create test market index: %v", err)
	}

	return model.MarketIndex{
		ID:     b.ID,
		Name:   b.Name,
		Ticker: b.Ticker,
	}
}

// SecurityBuilder provides a fluent interface for creating test securities.
//
// Example usage:
//
//	security := testutil.NewSecurity().
//	    WithTicker("AAPL").
//	    WithBeta(1.29).
//	    Build(t, db)
type SecurityBuilder struct {
	ID               string
	Ticker           string
	Name             string
	SecurityType     string
	Currency         string
	Exchange         string
	Beta             *float64
	BenchmarkIndexID *string
}

// NewSecurity creates a SecurityBuilder with sensible defaults.
func NewSecurity() *SecurityBuilder {
	return &SecurityBuilder{
		ID:           MakeID(),
		Ticker:       MakeTicker("TEST"),
		Name:         MakeName("Test Security"),
		SecurityType: "Stock",
		Currency:     "USD",
		Exchange:     "NASDAQ",
	}
}

// WithTicker sets a custom ticker.
func (b *SecurityBuilder) WithTicker(ticker string) *SecurityBuilder {
	b.Ticker = ticker
	return b
}

// WithName sets a custom name.
func (b *SecurityBuilder) WithName(name string) *SecurityBuilder {
	b.Name = name
	return b
}

// WithCurrency sets the trading currency.
func (b *SecurityBuilder) WithCurrency(currency string) *SecurityBuilder {
	b.Currency = currency
	return b
}

// WithBeta sets the security's beta.
func (b *SecurityBuilder) WithBeta(beta float64) *SecurityBuilder {
	b.Beta = &beta
	return b
}

// WithBenchmarkIndex links the security to a benchmark index.
func (b *SecurityBuilder) WithBenchmarkIndex(indexID string) *SecurityBuilder {
	b.BenchmarkIndexID = &indexID
	return b
}

// Build creates the security in the database and returns it.
func (b *SecurityBuilder) Build(t *testing.T, db *sql.DB) model.Security {
	t.Helper()

	query := `
		INSERT INTO security (id, ticker, name, security_type, currency, exchange, beta, benchmark_index_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var beta any
	if b.Beta != nil {
		beta = *b.Beta
	}

	var benchmarkIndexID any
	if b.BenchmarkIndexID != nil {
		benchmarkIndexID = *b.BenchmarkIndexID
	}

	_, err := db.Exec(query, b.ID, b.Ticker, b.Name, b.SecurityType, b.Currency, b.Exchange, beta, benchmarkIndexID)
	if err != nil {
		t.Fatalf("Failed to create test security: %v", err)
	}

	return model.Security{
		ID:               b.ID,
		Ticker:           b.Ticker,
		Name:             b.Name,
		SecurityType:     b.SecurityType,
		Currency:         b.Currency,
		Exchange:         b.Exchange,
		Beta:             b.Beta,
		BenchmarkIndexID: b.BenchmarkIndexID,
	}
}

// tradeSeq makes created_at strictly increasing across trades built in a
// test, so same-day trades replay in the order they were created.
var tradeSeq atomic.Int64

// TradeBuilder provides a fluent interface for creating ledger entries.
//
// Example usage:
//
//	testutil.NewTrade(portfolio.ID, security.ID).
//	    WithDate(testutil.Date(2025, 1, 10)).
//	    WithQuantity(100).
//	    WithPrice(10).
//	    Build(t, db)
type TradeBuilder struct {
	ID           string
	PortfolioID  string
	SecurityID   string
	TradeDate    time.Time
	TradeType    string
	Quantity     float64
	PricePerUnit float64
}

// NewTrade creates a TradeBuilder with defaults (a BUY of 100 at 10).
func NewTrade(portfolioID, securityID string) *TradeBuilder {
	return &TradeBuilder{
		ID:           MakeID(),
		PortfolioID:  portfolioID,
		SecurityID:   securityID,
		TradeDate:    time.Now().UTC(),
		TradeType:    model.TradeTypeBuy,
		Quantity:     100.0,
		PricePerUnit: 10.0,
	}
}

// WithDate sets the trade date.
func (b *TradeBuilder) WithDate(date time.Time) *TradeBuilder {
	b.TradeDate = date
	return b
}

// WithType sets the trade type.
func (b *TradeBuilder) WithType(tradeType string) *TradeBuilder {
	b.TradeType = tradeType
	return b
}

// Sell marks the trade as a SELL.
func (b *TradeBuilder) Sell() *TradeBuilder {
	b.TradeType = model.TradeTypeSell
	return b
}

// WithQuantity sets the traded quantity.
func (b *TradeBuilder) WithQuantity(quantity float64) *TradeBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets the price per unit.
func (b *TradeBuilder) WithPrice(price float64) *TradeBuilder {
	b.PricePerUnit = price
	return b
}

// Build creates the trade in the database and returns it.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	createdAt := time.Unix(tradeSeq.Add(1), 0).UTC().Format(time.RFC3339)

	query := `
		INSERT INTO trade (id, portfolio_id, security_id, trade_date, trade_type, quantity, price_per_unit, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.PortfolioID, b.SecurityID,
		b.TradeDate.Format("2006-01-02"),
		b.TradeType, b.Quantity, b.PricePerUnit, createdAt)
	if err != nil {
		t.Fatalf("Failed to create test trade: %v", err)
	}

	return model.Trade{
		ID:           b.ID,
		PortfolioID:  b.PortfolioID,
		SecurityID:   b.SecurityID,
		TradeDate:    b.TradeDate,
		TradeType:    b.TradeType,
		Quantity:     b.Quantity,
		PricePerUnit: b.PricePerUnit,
	}
}

// DailyPriceBuilder provides a fluent interface for creating price
// observations.
type DailyPriceBuilder struct {
	ID           string
	SecurityID   string
	PriceDate    time.Time
	ClosingPrice float64
}

// NewDailyPrice creates a DailyPriceBuilder.
func NewDailyPrice(securityID string) *DailyPriceBuilder {
	return &DailyPriceBuilder{
		ID:           MakeID(),
		SecurityID:   securityID,
		PriceDate:    time.Now().UTC(),
		ClosingPrice: 12.0,
	}
}

// WithDate sets the observation date.
func (b *DailyPriceBuilder) WithDate(date time.Time) *DailyPriceBuilder {
	b.PriceDate = date
	return b
}

// WithPrice sets the closing price.
func (b *DailyPriceBuilder) WithPrice(price float64) *DailyPriceBuilder {
	b.ClosingPrice = price
	return b
}

// Build creates the price observation in the database and returns it.
func (b *DailyPriceBuilder) Build(t *testing.T, db *sql.DB) model.DailyPrice {
	t.Helper()

	query := `
		INSERT INTO daily_price (id, security_id, price_date, closing_price)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.SecurityID, b.PriceDate.Format("2006-01-02"), b.ClosingPrice)
	if err != nil {
		t.Fatalf("Failed to create test daily price: %v", err)
	}

	return model.DailyPrice{
		ID:           b.ID,
		SecurityID:   b.SecurityID,
		PriceDate:    b.PriceDate,
		ClosingPrice: b.ClosingPrice,
	}
}

// CreatePriceSeries inserts one closing price per consecutive day starting
// at start. Handy for building dense observation windows.
//
// Example usage:
//
//	testutil.CreatePriceSeries(t, db, security.ID, testutil.Date(2025, 1, 1), 100, 110, 99)
func CreatePriceSeries(t *testing.T, db *sql.DB, securityID string, start time.Time, prices ...float64) {
	t.Helper()

	for i, price := range prices {
		NewDailyPrice(securityID).
			WithDate(start.AddDate(0, 0, i)).
			WithPrice(price).
			Build(t, db)
	}
}

// IndexPriceBuilder provides a fluent interface for creating index closing
// values.
type IndexPriceBuilder struct {
	ID           string
	IndexID      string
	PriceDate    time.Time
	ClosingValue float64
}

// NewIndexPrice creates an IndexPriceBuilder.
func NewIndexPrice(indexID string) *IndexPriceBuilder {
	return &IndexPriceBuilder{
		ID:           MakeID(),
		IndexID:      indexID,
		PriceDate:    time.Now().UTC(),
		ClosingValue: 5000.0,
	}
}

// WithDate sets the observation date.
func (b *IndexPriceBuilder) WithDate(date time.Time) *IndexPriceBuilder {
	b.PriceDate = date
	return b
}

// WithValue sets the closing value.
func (b *IndexPriceBuilder) WithValue(value float64) *IndexPriceBuilder {
	b.ClosingValue = value
	return b
}

// Build creates the index price in the database and returns it.
func (b *IndexPriceBuilder) Build(t *testing.T, db *sql.DB) model.IndexPrice {
	t.Helper()

	query := `
		INSERT INTO index_price (id, index_id, price_date, closing_value)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.IndexID, b.PriceDate.Format("2006-01-02"), b.ClosingValue)
	if err != nil {
		t.Fatalf("Failed to create test index price: %v", err)
	}

	return model.IndexPrice{
		ID:           b.ID,
		IndexID:      b.IndexID,
		PriceDate:    b.PriceDate,
		ClosingValue: b.ClosingValue,
	}
}

// CreateIndexSeries inserts one closing value per consecutive day starting
// at start.
func CreateIndexSeries(t *testing.T, db *sql.DB, indexID string, start time.Time, values ...float64) {
	t.Helper()

	for i, value := range values {
		NewIndexPrice(indexID).
			WithDate(start.AddDate(0, 0, i)).
			WithValue(value).
			Build(t, db)
	}
}

// CashBalanceBuilder provides a fluent interface for creating cash rows.
type CashBalanceBuilder struct {
	ID          string
	PortfolioID string
	Currency    string
	Amount      float64
}

// NewCashBalance creates a CashBalanceBuilder.
func NewCashBalance(portfolioID string) *CashBalanceBuilder {
	return &CashBalanceBuilder{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		Currency:    "USD",
		Amount:      1000.0,
	}
}

// WithCurrency sets the currency.
func (b *CashBalanceBuilder) WithCurrency(currency string) *CashBalanceBuilder {
	b.Currency = currency
	return b
}

// WithAmount sets the amount.
func (b *CashBalanceBuilder) WithAmount(amount float64) *CashBalanceBuilder {
	b.Amount = amount
	return b
}

// Build creates the cash balance in the database and returns it.
func (b *CashBalanceBuilder) Build(t *testing.T, db *sql.DB) model.CashBalance {
	t.Helper()

	query := `
		INSERT INTO cash_balance (id, portfolio_id, currency, amount)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.PortfolioID, b.Currency, b.Amount)
	if err != nil {
		t.Fatalf("Failed to create test cash balance: %v", err)
	}

	return model.CashBalance{
		ID:          b.ID,
		PortfolioID: b.PortfolioID,
		Currency:    b.Currency,
		Amount:      b.Amount,
	}
}
