// The seed command wipes the database and repopulates it with a
// synthetic demo dataset: market indices, securities, clients with
// portfolios and cash, a year of random-walk price history, and a random
// trade ledger.
package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rdevries/portfolio-statement-backend/internal/config"
	"github.com/rdevries/portfolio-statement-backend/internal/database"
	"github.com/rdevries/portfolio-statement-backend/internal/model"
	"github.com/rdevries/portfolio-statement-backend/pkg/logger"
)

const (
	numClients       = 10
	priceHistoryDays = 365
	maxTradesPerBook = 12
	dateLayout       = "2006-01-02"
)

type seedIndex struct {
	id     string
	name   string
	ticker string
}

type seedSecurity struct {
	id         string
	ticker     string
	name       string
	currency   string
	exchange   string
	beta       float64
	indexPos   int // position into the index list for the benchmark reference
	startPrice float64
}

func main() {
	log := logger.New(logger.Config{Level: "info", Pretty: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	log.Warn().Msg("deleting all data from all tables")
	if err := clearAll(db); err != nil {
		log.Fatal().Err(err).Msg("failed to clear tables")
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if err := seed(db, today, log); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	log.Info().Msg("seed complete")
}

// clearAll wipes all tables. The order matters to satisfy foreign key
// constraints.
func clearAll(db *sql.DB) error {
	tables := []string{
		"portfolio_value_snapshot",
		"index_price",
		"daily_price",
		"cash_balance",
		"trade",
		"security",
		"market_index",
		"portfolio",
		"client",
	}
	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

func seed(db *sql.DB, today time.Time, log zerolog.Logger) error {
	log.Info().Msg("creating master data (indices and securities)")

	indices := []seedIndex{
		{uuid.NewString(), "NASDAQ Composite", "^IXIC"},
		{uuid.NewString(), "FTSE 100", "^FTSE"},
		{uuid.NewString(), "S&P 500", "^GSPC"},
		{uuid.NewString(), "NIFTY 50", "^NSEI"},
		{uuid.NewString(), "DAX", "^GDAXI"},
	}
	for _, idx := range indices {
		_, err := db.Exec(
			`INSERT INTO market_index (id, name, ticker) VALUES (?, ?, ?)`,
			idx.id, idx.name, idx.ticker,
		)
		if err != nil {
			return fmt.Errorf("failed to insert market index: %w", err)
		}
	}

	securities := []seedSecurity{
		{uuid.NewString(), "AAPL", "Apple Inc.", "USD", "NASDAQ", 1.29, 0, 190},
		{uuid.NewString(), "GOOGL", "Alphabet Inc.", "USD", "NASDAQ", 1.05, 0, 140},
		{uuid.NewString(), "MSFT", "Microsoft Corporation", "USD", "NASDAQ", 0.92, 2, 410},
		{uuid.NewString(), "HSBC", "HSBC Holdings PLC", "GBP", "LSE", 0.85, 1, 6.5},
		{uuid.NewString(), "INFY", "Infosys Ltd", "INR", "NSE", 0.95, 3, 1500},
		{uuid.NewString(), "TCS", "Tata Consultancy Services", "INR", "NSE", 0.88, 3, 3800},
		{uuid.NewString(), "SAP", "SAP SE", "EUR", "XETRA", 1.10, 4, 170},
		{uuid.NewString(), "SIE", "Siemens AG", "EUR", "XETRA", 1.02, 4, 175},
		{uuid.NewString(), "BARC", "Barclays PLC", "GBP", "LSE", 1.20, 1, 2.1},
		{uuid.NewString(), "AMZN", "Amazon.com Inc.", "USD", "NASDAQ", 1.30, 0, 180},
	}
	for _, sec := range securities {
		_, err := db.Exec(
			`INSERT INTO security (id, ticker, name, security_type, currency, exchange, beta, benchmark_index_id)
			 VALUES (?, ?, ?, 'Stock', ?, ?, ?, ?)`,
			sec.id, sec.ticker, sec.name, sec.currency, sec.exchange, sec.beta, indices[sec.indexPos].id,
		)
		if err != nil {
			return fmt.Errorf("failed to insert security: %w", err)
		}
	}

	log.Info().Int("days", priceHistoryDays).Msg("generating price history")

	start := today.AddDate(0, 0, -priceHistoryDays)
	for _, sec := range securities {
		if err := insertRandomWalk(db,
			`INSERT INTO daily_price (id, security_id, price_date, closing_price) VALUES (?, ?, ?, ?)`,
			sec.id, sec.startPrice, start, today); err != nil {
			return err
		}
	}
	for _, idx := range indices {
		startValue := 5000 + rand.Float64()*10000
		if err := insertRandomWalk(db,
			`INSERT INTO index_price (id, index_id, price_date, closing_value) VALUES (?, ?, ?, ?)`,
			idx.id, startValue, start, today); err != nil {
			return err
		}
	}

	log.Info().Int("clients", numClients).Msg("creating clients, portfolios and trades")

	for i := 0; i < numClients; i++ {
		clientID := uuid.NewString()
		_, err := db.Exec(
			`INSERT INTO client (id, name, email) VALUES (?, ?, ?)`,
			clientID, gofakeit.Name(), gofakeit.Email(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert client: %w", err)
		}

		portfolioID := uuid.NewString()
		_, err = db.Exec(
			`INSERT INTO portfolio (id, name, base_currency, client_id) VALUES (?, ?, 'USD', ?)`,
			portfolioID, gofakeit.LastName()+" Family Portfolio", clientID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert portfolio: %w", err)
		}

		_, err = db.Exec(
			`INSERT INTO cash_balance (id, portfolio_id, currency, amount) VALUES (?, ?, 'USD', ?)`,
			uuid.NewString(), portfolioID, 10000+rand.Float64()*90000,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cash balance: %w", err)
		}

		numTrades := 3 + rand.Intn(maxTradesPerBook-3)
		for t := 0; t < numTrades; t++ {
			sec := securities[rand.Intn(len(securities))]
			tradeDate := start.AddDate(0, 0, rand.Intn(priceHistoryDays))
			tradeType := model.TradeTypeBuy
			// Sells are rarer, and the demo ledger tolerates short
			// positions; the engine drops them from the report anyway.
			if rand.Float64() < 0.25 {
				tradeType = model.TradeTypeSell
			}
			quantity := float64(1 + rand.Intn(100))
			price := sec.startPrice * (0.8 + rand.Float64()*0.4)

			_, err = db.Exec(
				`INSERT INTO trade (id, portfolio_id, security_id, trade_date, trade_type, quantity, price_per_unit)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				uuid.NewString(), portfolioID, sec.id, tradeDate.Format(dateLayout), tradeType, quantity, price,
			)
			if err != nil {
				return fmt.Errorf("failed to insert trade: %w", err)
			}
		}
	}

	return nil
}

// insertRandomWalk writes a daily closing series from start to end using
// a small random walk around the starting level. Weekends are skipped so
// the series is sparse, like real market data.
func insertRandomWalk(db *sql.DB, query, ownerID string, startLevel float64, start, end time.Time) error {
	level := startLevel
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		level *= 1 + (rand.Float64()-0.48)/100
		if _, err := db.Exec(query, uuid.NewString(), ownerID, d.Format(dateLayout), level); err != nil {
			return fmt.Errorf("failed to insert price observation: %w", err)
		}
	}
	return nil
}
