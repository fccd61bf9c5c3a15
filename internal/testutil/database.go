package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every pooled connection would get its own private in-memory
	// database, so pin the pool to a single connection.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE client (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL UNIQUE
		);

		CREATE TABLE portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL DEFAULT 'Default Portfolio',
			base_currency VARCHAR(3) NOT NULL DEFAULT 'USD',
			client_id VARCHAR(36) NOT NULL REFERENCES client (id)
		);

		CREATE TABLE market_index (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			ticker VARCHAR(20) NOT NULL UNIQUE
		);

		CREATE TABLE security (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(20) NOT NULL UNIQUE,
			name VARCHAR(150) NOT NULL,
			security_type VARCHAR(50) NOT NULL,
			currency VARCHAR(3) NOT NULL,
			exchange VARCHAR(50),
			beta REAL,
			benchmark_index_id VARCHAR(36) REFERENCES market_index (id)
		);

		CREATE TABLE trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL REFERENCES portfolio (id),
			security_id VARCHAR(36) NOT NULL REFERENCES security (id),
			trade_date DATE NOT NULL,
			trade_type VARCHAR(4) NOT NULL CHECK (trade_type IN ('BUY', 'SELL')),
			quantity REAL NOT NULL CHECK (quantity > 0),
			price_per_unit REAL NOT NULL CHECK (price_per_unit > 0),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX idx_trade_portfolio_date ON trade (portfolio_id, trade_date);

		CREATE TABLE cash_balance (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL REFERENCES portfolio (id),
			currency VARCHAR(3) NOT NULL,
			amount REAL NOT NULL DEFAULT 0.0,
			UNIQUE (portfolio_id, currency)
		);

		CREATE TABLE daily_price (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			security_id VARCHAR(36) NOT NULL REFERENCES security (id),
			price_date DATE NOT NULL,
			closing_price REAL NOT NULL,
			UNIQUE (security_id, price_date)
		);

		CREATE INDEX idx_daily_price_security_date ON daily_price (security_id, price_date);

		CREATE TABLE index_price (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			index_id VARCHAR(36) NOT NULL REFERENCES market_index (id),
			price_date DATE NOT NULL,
			closing_value REAL NOT NULL,
			UNIQUE (index_id, price_date)
		);

		CREATE TABLE portfolio_value_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL REFERENCES portfolio (id),
			snapshot_date DATE NOT NULL,
			total_value REAL NOT NULL,
			calculated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (portfolio_id, snapshot_date)
		);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
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
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
//
// Example usage:
//
//	count := testutil.CountRows(t, db, "trade")
//	assert.Equal(t, 2, count)
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "trade", 2)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
