package accounting

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ParseAmount parses a caller supplied amount. Non-numeric, non-positive and
// over-precise values are rejected with ErrInvalidAmount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", apperrors.ErrInvalidAmount)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidAmount, raw)
	}
	return amount, ValidateAmount(amount)
}

// MaxAmountScale is the number of decimal places a stored amount keeps. It
// matches the NUMERIC(20, 4) amount columns.
const MaxAmountScale = 4

// ValidateAmount rejects zero and negative amounts, and amounts with more
// than MaxAmountScale significant decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}
	if !amount.Equal(amount.Truncate(MaxAmountScale)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", apperrors.ErrInvalidAmount, amount, MaxAmountScale)
	}
	return nil
}
