package model

// StatementHolding is one reportable position on a statement. All
// monetary fields are rounded to two decimal places at assembly; holdings
// with a non-positive net quantity never appear here.
type StatementHolding struct {
	Ticker            string  `json:"ticker"`
	Name              string  `json:"name"`
	Quantity          float64 `json:"quantity"`
	AverageBuyPrice   float64 `json:"average_buy_price"`
	BuyValue          float64 `json:"buy_value"`
	CurrentPrice      float64 `json:"current_price"`
	CurrentValue      float64 `json:"current_value"`
	GainLoss          float64 `json:"gain_loss"`
	HoldingPeriodDays int     `json:"holding_period_days"`
	Beta              float64 `json:"beta"`
}

// StatementCash is one cash balance line on a statement.
type StatementCash struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// RiskMeasures carries the portfolio-level risk figures. Beta and Sharpe
// may be undefined; delta is always defined (0 for an empty portfolio).
type RiskMeasures struct {
	Beta        Metric `json:"beta"`
	SharpeRatio Metric `json:"sharpe_ratio"`
	Delta       Metric `json:"delta"`
}

// BenchmarkComparison compares compounded portfolio return against one
// market index over one trailing period.
type BenchmarkComparison struct {
	VsIndex            string `json:"vs_index"`
	Period             string `json:"period"`
	PortfolioReturnPct Metric `json:"portfolio_return_pct"`
	BenchmarkReturnPct Metric `json:"benchmark_return_pct"`
}

// Statement is the complete point-in-time report for a portfolio. It is
// rebuilt from the trade ledger and price history on every request and
// never persisted.
type Statement struct {
	PortfolioID           string                `json:"portfolio_id"`
	PortfolioName         string                `json:"portfolio_name"`
	ClientName            string                `json:"client_name"`
	ReportDate            string                `json:"report_date"`
	BaseCurrency          string                `json:"base_currency"`
	TotalPortfolioValue   float64               `json:"total_portfolio_value"`
	Holdings              []StatementHolding    `json:"holdings"`
	CashBalances          []StatementCash       `json:"cash_balances"`
	RiskMeasures          RiskMeasures          `json:"risk_measures"`
	PerformanceBenchmarks []BenchmarkComparison `json:"performance_benchmarks"`
}
