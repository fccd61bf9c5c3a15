package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
)

// PriceRepository provides data access methods for the daily_price table.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetPriceOnOrBefore returns the closing price of the latest observation
// for the security with price_date <= date. It never interpolates or
// extrapolates forward.
//
// Returns 0 when no observation exists at or before the date. Callers
// must treat 0 as "unknown", not "worthless".
func (r *PriceRepository) GetPriceOnOrBefore(securityID string, date time.Time) (float64, error) {
	query := `
		SELECT closing_price
		FROM daily_price
		WHERE security_id = ?
		AND price_date <= ?
		ORDER BY price_date DESC
		LIMIT 1
	`

	var price float64

	err := r.db.QueryRow(query, securityID, date.Format(dateLayout)).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query daily_price table: %w", err)
	}

	return price, nil
}

// GetPricesForSecurities retrieves all price observations for the given
// securities within [start, end], sorted ascending by date and grouped by
// security ID. Returns an empty map when securityIDs is empty.
func (r *PriceRepository) GetPricesForSecurities(securityIDs []string, start, end time.Time) (map[string][]model.DailyPrice, error) {
	pricesBySecurity := make(map[string][]model.DailyPrice)
	if len(securityIDs) == 0 {
		return pricesBySecurity, nil
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT id, security_id, price_date, closing_price
		FROM daily_price
		WHERE security_id IN (` + placeholders(len(securityIDs)) + `)
		AND price_date >= ?
		AND price_date <= ?
		ORDER BY price_date ASC
	`

	args := make([]any, 0, len(securityIDs)+2)
	for _, id := range securityIDs {
		args = append(args, id)
	}
	args = append(args, start.Format(dateLayout), end.Format(dateLayout))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily_price table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.DailyPrice
		var dateStr string

		err := rows.Scan(
			&p.ID,
			&p.SecurityID,
			&dateStr,
			&p.ClosingPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily_price table results: %w", err)
		}

		p.PriceDate, err = parseDate(dateStr)
		if err != nil {
			return nil, err
		}

		pricesBySecurity[p.SecurityID] = append(pricesBySecurity[p.SecurityID], p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily_price table: %w", err)
	}

	return pricesBySecurity, nil
}
