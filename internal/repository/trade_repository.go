package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
)

// TradeRepository provides data access methods for the append-only trade
// ledger. Trades are inserted once and never updated or deleted.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// GetTradesForPortfolio retrieves every trade for the portfolio with
// trade_date on or before upTo, in replay order. Trade date alone is not
// unique, so ties are broken by ledger insertion order (created_at, then
// id) to keep position reconstruction deterministic.
//
// Returns an empty slice when the portfolio has no trades in range.
func (r *TradeRepository) GetTradesForPortfolio(portfolioID string, upTo time.Time) ([]model.Trade, error) {
	query := `
		SELECT id, portfolio_id, security_id, trade_date, trade_type, quantity, price_per_unit
		FROM trade
		WHERE portfolio_id = ?
		AND trade_date <= ?
		ORDER BY trade_date ASC, created_at ASC, id ASC
	`

	rows, err := r.db.Query(query, portfolioID, upTo.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}

	for rows.Next() {
		var t model.Trade
		var dateStr string

		err := rows.Scan(
			&t.ID,
			&t.PortfolioID,
			&t.SecurityID,
			&dateStr,
			&t.TradeType,
			&t.Quantity,
			&t.PricePerUnit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade table results: %w", err)
		}

		t.TradeDate, err = parseDate(dateStr)
		if err != nil {
			return nil, err
		}

		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}

// InsertTradeTx inserts a trade inside an existing transaction. The trade
// entry path requires the ledger insert and the cash balance adjustment
// to commit atomically, so the caller owns the transaction.
func (r *TradeRepository) InsertTradeTx(tx *sql.Tx, t model.Trade) error {
	query := `
		INSERT INTO trade (id, portfolio_id, security_id, trade_date, trade_type, quantity, price_per_unit)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.Exec(query,
		t.ID,
		t.PortfolioID,
		t.SecurityID,
		t.TradeDate.Format(dateLayout),
		t.TradeType,
		t.Quantity,
		t.PricePerUnit,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}
