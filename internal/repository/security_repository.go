package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rdevries/portfolio-statement-backend/internal/apperrors"
	"github.com/rdevries/portfolio-statement-backend/internal/model"
)

// SecurityRepository provides data access methods for the security master table.
type SecurityRepository struct {
	db *sql.DB
}

// NewSecurityRepository creates a new SecurityRepository with the provided database connection.
func NewSecurityRepository(db *sql.DB) *SecurityRepository {
	return &SecurityRepository{db: db}
}

const securityColumns = `id, ticker, name, security_type, currency, exchange, beta, benchmark_index_id`

// GetSecurityOnID retrieves a single security. Returns
// apperrors.ErrSecurityNotFound if no row matches.
func (r *SecurityRepository) GetSecurityOnID(securityID string) (model.Security, error) {
	query := `SELECT ` + securityColumns + ` FROM security WHERE id = ?`

	s, err := scanSecurity(r.db.QueryRow(query, securityID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Security{}, apperrors.ErrSecurityNotFound
	}
	if err != nil {
		return model.Security{}, fmt.Errorf("failed to query security: %w", err)
	}

	return s, nil
}

// GetSecuritiesOnIDs retrieves the securities with the given IDs, keyed by
// ID. Missing IDs are silently absent from the result. Returns an empty
// map when ids is empty.
func (r *SecurityRepository) GetSecuritiesOnIDs(ids []string) (map[string]model.Security, error) {
	securities := make(map[string]model.Security)
	if len(ids) == 0 {
		return securities, nil
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `SELECT ` + securityColumns + ` FROM security WHERE id IN (` + placeholders(len(ids)) + `)`

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query security table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSecurity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan security table results: %w", err)
		}
		securities[s.ID] = s
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating security table: %w", err)
	}

	return securities, nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSecurity(row rowScanner) (model.Security, error) {
	var s model.Security
	var exchange sql.NullString
	var beta sql.NullFloat64
	var benchmarkIndexID sql.NullString

	err := row.Scan(
		&s.ID,
		&s.Ticker,
		&s.Name,
		&s.SecurityType,
		&s.Currency,
		&exchange,
		&beta,
		&benchmarkIndexID,
	)
	if err != nil {
		return model.Security{}, err
	}

	s.Exchange = exchange.String
	if beta.Valid {
		b := beta.Float64
		s.Beta = &b
	}
	if benchmarkIndexID.Valid {
		id := benchmarkIndexID.String
		s.BenchmarkIndexID = &id
	}

	return s, nil
}
