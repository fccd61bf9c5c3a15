package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
)

// CashRepository provides data access methods for the cash_balance table.
// Balances are read-only to the statement engine; only the trade entry
// path adjusts them, inside the caller's transaction.
type CashRepository struct {
	db *sql.DB
}

// NewCashRepository creates a new CashRepository with the provided database connection.
func NewCashRepository(db *sql.DB) *CashRepository {
	return &CashRepository{db: db}
}

// GetCashBalances retrieves all cash balances for the portfolio, ordered
// by currency. Returns an empty slice when the portfolio holds no cash rows.
func (r *CashRepository) GetCashBalances(portfolioID string) ([]model.CashBalance, error) {
	query := `
		SELECT id, portfolio_id, currency, amount
		FROM cash_balance
		WHERE portfolio_id = ?
		ORDER BY currency
	`

	rows, err := r.db.Query(query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash_balance table: %w", err)
	}
	defer rows.Close()

	balances := []model.CashBalance{}

	for rows.Next() {
		var cb model.CashBalance

		err := rows.Scan(&cb.ID, &cb.PortfolioID, &cb.Currency, &cb.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash_balance table results: %w", err)
		}

		balances = append(balances, cb)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash_balance table: %w", err)
	}

	return balances, nil
}

// AdjustCashBalanceTx adds delta to the portfolio's balance in the given
// currency inside an existing transaction, creating the balance row at 0
// first when it does not exist yet.
func (r *CashRepository) AdjustCashBalanceTx(tx *sql.Tx, portfolioID, currency string, delta float64) error {
	var id string

	query := `SELECT id FROM cash_balance WHERE portfolio_id = ? AND currency = ?`

	err := tx.QueryRow(query, portfolioID, currency).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		id = uuid.NewString()
		_, err = tx.Exec(
			`INSERT INTO cash_balance (id, portfolio_id, currency, amount) VALUES (?, ?, ?, 0)`,
			id, portfolioID, currency,
		)
		if err != nil {
			return fmt.Errorf("failed to create cash balance: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to query cash_balance table: %w", err)
	}

	_, err = tx.Exec(`UPDATE cash_balance SET amount = amount + ? WHERE id = ?`, delta, id)
	if err != nil {
		return fmt.Errorf("failed to update cash balance: %w", err)
	}

	return nil
}
