package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the active role may not perform the requested action.
var ErrForbidden = errors.New("action not allowed for the active role")

// ErrInvalidAmount indicates a non-positive, non-numeric or over-precise amount.
var ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)

// ErrUnsupportedCurrency indicates a currency code outside the configured rate table.
var ErrUnsupportedCurrency = fmt.Errorf("%w: unsupported currency", ErrValidation)

// ErrInsufficientFunds indicates that an expense exceeds the balance of its scope.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrUnsupportedAction indicates an intent category the core does not know how to apply.
var ErrUnsupportedAction = errors.New("unsupported action")

// InsufficientFundsError carries the attempted and available amounts, both expressed
// in Currency (the display currency of the scope that rejected the expense).
type InsufficientFundsError struct {
	Attempted decimal.Decimal
	Available decimal.Decimal
	Currency  string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: attempted %s %s, available %s %s",
		e.Attempted.StringFixed(2), e.Currency, e.Available.StringFixed(2), e.Currency)
}

// Unwrap lets errors.Is(err, ErrInsufficientFunds) match.
func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}
