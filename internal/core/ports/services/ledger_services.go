package services

import (
	"context"
	"iter"
	"time"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseRequest is an expense that already passed input validation.
type ExpenseRequest struct {
	Amount       decimal.Decimal
	CurrencyCode domain.CurrencyCode
	Reason       string
	AuthorID     string
	CreatedAt    time.Time
}

// CreditRequest is a budget credit that already passed input validation.
type CreditRequest struct {
	Amount       decimal.Decimal
	CurrencyCode domain.CurrencyCode
	Reason       string
	AuthorID     string
	CreatedAt    time.Time
}

// LedgerReaderSvc computes figures over an already filtered transaction scope.
type LedgerReaderSvc interface {
	Summary(ctx context.Context, scope []domain.Transaction, display domain.CurrencyCode) (domain.LedgerSummary, error)
	Series(ctx context.Context, scope []domain.Transaction, display domain.CurrencyCode) (iter.Seq[domain.SeriesPoint], error)
	SupportedCurrencies() []domain.CurrencyCode

	// Rate returns the rate of code against the base currency.
	Rate(code domain.CurrencyCode) (decimal.Decimal, error)
}

// LedgerWriterSvc admits new transactions into the entity store.
type LedgerWriterSvc interface {
	// RecordExpense rejects with *apperrors.InsufficientFundsError when the
	// converted amount exceeds the scope balance in display.
	RecordExpense(ctx context.Context, req ExpenseRequest, scope []domain.Transaction, display domain.CurrencyCode) (*domain.Transaction, error)

	// RecordBudgetCredit is always admitted. Role checks live in the controller.
	RecordBudgetCredit(ctx context.Context, req CreditRequest) (*domain.Transaction, error)
}

// LedgerSvcFacade combines the ledger interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
