package validation

import (
	"strings"
	"time"

	"github.com/rdevries/portfolio-statement-backend/internal/api/request"
	"github.com/rdevries/portfolio-statement-backend/internal/apperrors"
	"github.com/rdevries/portfolio-statement-backend/internal/model"
)

// ValidateCreateTrade validates a trade creation request.
//
// Required fields:
//   - portfolio_id, security_id: valid UUIDs
//   - trade_date: YYYY-MM-DD
//   - trade_type: BUY or SELL (case-insensitive)
//   - quantity, price_per_unit: positive
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidateCreateTrade(req request.CreateTradeRequest) error {
	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}
	if err := ValidateUUID(req.SecurityID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.TradeDate) == "" {
		errors["tradeDate"] = "trade_date is required"
	} else if _, err := time.Parse(dateLayout, req.TradeDate); err != nil {
		errors["tradeDate"] = err.Error()
	}

	tradeType := strings.ToUpper(strings.TrimSpace(req.TradeType))
	if tradeType != model.TradeTypeBuy && tradeType != model.TradeTypeSell {
		errors["tradeType"] = apperrors.ErrInvalidTradeType.Error()
	}

	if req.Quantity <= 0 {
		errors["quantity"] = apperrors.ErrInvalidQuantity.Error()
	}

	if req.PricePerUnit <= 0 {
		errors["pricePerUnit"] = apperrors.ErrInvalidPrice.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
