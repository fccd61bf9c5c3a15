package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rdevries/portfolio-statement-backend/internal/apperrors"
	"github.com/rdevries/portfolio-statement-backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio and
// client tables.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetPortfolioOnID retrieves a single portfolio joined to its owning
// client. Returns apperrors.ErrPortfolioNotFound if no row matches.
func (r *PortfolioRepository) GetPortfolioOnID(portfolioID string) (model.Portfolio, error) {
	query := `
		SELECT p.id, p.name, p.base_currency, p.client_id, c.name
		FROM portfolio p
		JOIN client c ON c.id = p.client_id
		WHERE p.id = ?
	`

	var p model.Portfolio

	err := r.db.QueryRow(query, portfolioID).Scan(
		&p.ID,
		&p.Name,
		&p.BaseCurrency,
		&p.ClientID,
		&p.ClientName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	return p, nil
}

// GetPortfolios retrieves all portfolios joined to their owning clients,
// ordered by name. Returns an empty slice when none exist.
func (r *PortfolioRepository) GetPortfolios() ([]model.Portfolio, error) {
	query := `
		SELECT p.id, p.name, p.base_currency, p.client_id, c.name
		FROM portfolio p
		JOIN client c ON c.id = p.client_id
		ORDER BY p.name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		var p model.Portfolio

		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.BaseCurrency,
			&p.ClientID,
			&p.ClientName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}

		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}
