// Package apperrors defines the sentinel error values shared across the
// repository, service and API layers.
package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrSecurityNotFound indicates that a security with the given ID does not exist.
	ErrSecurityNotFound = errors.New("security not found")
)

// Business logic errors represent validation failures or constraint violations.
// These are rejected before any computation begins.
var (
	// ErrInvalidDate indicates that a provided date is missing or not in YYYY-MM-DD format.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidTradeType indicates a trade type other than BUY or SELL.
	ErrInvalidTradeType = errors.New("trade type must be BUY or SELL")

	// ErrInvalidQuantity indicates a zero or negative trade quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidPrice indicates a zero or negative trade price.
	ErrInvalidPrice = errors.New("price per unit must be positive")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidDateRange indicates that a start date is after its end date.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Operation failure errors represent system-level failures when retrieving
// or processing data, but not due to missing entities or validation issues.
var (
	ErrFailedToGenerateStatement  = errors.New("failed to generate statement")
	ErrFailedToRecordTrade        = errors.New("failed to record trade")
	ErrFailedToRetrievePortfolios = errors.New("failed to retrieve portfolios")
)
