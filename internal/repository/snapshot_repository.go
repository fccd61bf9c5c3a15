package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
)

// SnapshotRepository provides data access methods for the
// portfolio_value_snapshot table written by the nightly snapshot job.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshot records the total portfolio value for a date, replacing
// any earlier snapshot for the same portfolio and date so re-runs of the
// job are idempotent.
func (r *SnapshotRepository) UpsertSnapshot(portfolioID string, date time.Time, totalValue float64) error {
	query := `
		INSERT INTO portfolio_value_snapshot (id, portfolio_id, snapshot_date, total_value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (portfolio_id, snapshot_date)
		DO UPDATE SET total_value = excluded.total_value, calculated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query, uuid.NewString(), portfolioID, date.Format(dateLayout), totalValue)
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio value snapshot: %w", err)
	}

	return nil
}

// GetSnapshots retrieves all recorded snapshots for the portfolio within
// [start, end], sorted ascending by date.
func (r *SnapshotRepository) GetSnapshots(portfolioID string, start, end time.Time) ([]model.PortfolioValueSnapshot, error) {
	query := `
		SELECT id, portfolio_id, snapshot_date, total_value, calculated_at
		FROM portfolio_value_snapshot
		WHERE portfolio_id = ?
		AND snapshot_date >= ?
		AND snapshot_date <= ?
		ORDER BY snapshot_date ASC
	`

	rows, err := r.db.Query(query, portfolioID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_value_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.PortfolioValueSnapshot{}

	for rows.Next() {
		var s model.PortfolioValueSnapshot
		var dateStr, calculatedStr string

		err := rows.Scan(&s.ID, &s.PortfolioID, &dateStr, &s.TotalValue, &calculatedStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_value_snapshot table results: %w", err)
		}

		s.SnapshotDate, err = parseDate(dateStr)
		if err != nil {
			return nil, err
		}
		s.CalculatedAt, err = parseTimestamp(calculatedStr)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_value_snapshot table: %w", err)
	}

	return snapshots, nil
}
