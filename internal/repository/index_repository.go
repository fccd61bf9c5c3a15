package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
)

// IndexRepository provides data access methods for the market_index and
// index_price tables.
type IndexRepository struct {
	db *sql.DB
}

// NewIndexRepository creates a new IndexRepository with the provided database connection.
func NewIndexRepository(db *sql.DB) *IndexRepository {
	return &IndexRepository{db: db}
}

// GetMarketIndices retrieves all known benchmark indices, ordered by name.
// Returns an empty slice when none are configured.
func (r *IndexRepository) GetMarketIndices() ([]model.MarketIndex, error) {
	query := `SELECT id, name, ticker FROM market_index ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query market_index table: %w", err)
	}
	defer rows.Close()

	indices := []model.MarketIndex{}

	for rows.Next() {
		var idx model.MarketIndex

		if err := rows.Scan(&idx.ID, &idx.Name, &idx.Ticker); err != nil {
			return nil, fmt.Errorf("failed to scan market_index table results: %w", err)
		}

		indices = append(indices, idx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market_index table: %w", err)
	}

	return indices, nil
}

// GetIndexPrices retrieves all observations for the index within
// [start, end], sorted ascending by date.
func (r *IndexRepository) GetIndexPrices(indexID string, start, end time.Time) ([]model.IndexPrice, error) {
	query := `
		SELECT id, index_id, price_date, closing_value
		FROM index_price
		WHERE index_id = ?
		AND price_date >= ?
		AND price_date <= ?
		ORDER BY price_date ASC
	`

	rows, err := r.db.Query(query, indexID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query index_price table: %w", err)
	}
	defer rows.Close()

	prices := []model.IndexPrice{}

	for rows.Next() {
		var p model.IndexPrice
		var dateStr string

		err := rows.Scan(&p.ID, &p.IndexID, &dateStr, &p.ClosingValue)
		if err != nil {
			return nil, fmt.Errorf("failed to scan index_price table results: %w", err)
		}

		p.PriceDate, err = parseDate(dateStr)
		if err != nil {
			return nil, err
		}

		prices = append(prices, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating index_price table: %w", err)
	}

	return prices, nil
}
