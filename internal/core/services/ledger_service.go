package services

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/ops_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/SscSPs/ops_tracker/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService admits transactions and computes the figures of a scope.
type LedgerService struct {
	BaseService
	store portsrepo.EntityWriter
	rates *accounting.RateTable
	newID func() string
}

// LedgerOption configures a LedgerService.
type LedgerOption func(*LedgerService)

// WithLedgerIDGenerator replaces the uuid generator used for transaction ids.
func WithLedgerIDGenerator(fn func() string) LedgerOption {
	return func(s *LedgerService) {
		s.newID = fn
	}
}

// NewLedgerService creates a ledger service writing to store.
func NewLedgerService(store portsrepo.EntityWriter, rates *accounting.RateTable, options ...LedgerOption) *LedgerService {
	svc := &LedgerService{
		store: store,
		rates: rates,
		newID: uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

func (s *LedgerService) Summary(ctx context.Context, scope []domain.Transaction, display domain.CurrencyCode) (domain.LedgerSummary, error) {
	summary, err := s.rates.Summarize(scope, display)
	if err != nil {
		s.LogDebug(ctx, "Failed to summarize ledger", slog.String("display_currency", string(display)), slog.String("error", err.Error()))
		return domain.LedgerSummary{}, err
	}
	return summary, nil
}

func (s *LedgerService) Series(_ context.Context, scope []domain.Transaction, display domain.CurrencyCode) (iter.Seq[domain.SeriesPoint], error) {
	if !s.rates.Supports(display) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, display)
	}
	return s.rates.Series(scope, display), nil
}

func (s *LedgerService) SupportedCurrencies() []domain.CurrencyCode {
	return s.rates.Codes()
}

func (s *LedgerService) Rate(code domain.CurrencyCode) (decimal.Decimal, error) {
	return s.rates.Rate(code)
}

func (s *LedgerService) RecordExpense(ctx context.Context, req portssvc.ExpenseRequest, scope []domain.Transaction, display domain.CurrencyCode) (*domain.Transaction, error) {
	if err := s.validate(req.Amount, req.CurrencyCode, req.AuthorID); err != nil {
		return nil, err
	}

	attempted, err := s.rates.Convert(req.Amount, req.CurrencyCode, display)
	if err != nil {
		return nil, err
	}
	available, err := s.rates.Balance(scope, display)
	if err != nil {
		return nil, err
	}
	if attempted.GreaterThan(available) {
		s.LogInfo(ctx, "Expense refused for insufficient funds",
			slog.String("author_id", req.AuthorID),
			slog.String("attempted", attempted.StringFixed(2)),
			slog.String("available", available.StringFixed(2)),
			slog.String("currency", string(display)))
		return nil, &apperrors.InsufficientFundsError{
			Attempted: attempted,
			Available: available,
			Currency:  string(display),
		}
	}

	return s.append(ctx, domain.Transaction{
		Amount:       req.Amount,
		Reason:       req.Reason,
		Kind:         domain.Expense,
		CurrencyCode: req.CurrencyCode,
		Authorship:   domain.Authorship{AuthorID: req.AuthorID, CreatedAt: req.CreatedAt},
	})
}

func (s *LedgerService) RecordBudgetCredit(ctx context.Context, req portssvc.CreditRequest) (*domain.Transaction, error) {
	if err := s.validate(req.Amount, req.CurrencyCode, req.AuthorID); err != nil {
		return nil, err
	}
	return s.append(ctx, domain.Transaction{
		Amount:       req.Amount,
		Reason:       req.Reason,
		Kind:         domain.BudgetCredit,
		CurrencyCode: req.CurrencyCode,
		Authorship:   domain.Authorship{AuthorID: req.AuthorID, CreatedAt: req.CreatedAt},
	})
}

func (s *LedgerService) validate(amount decimal.Decimal, code domain.CurrencyCode, authorID string) error {
	if err := accounting.ValidateAmount(amount); err != nil {
		return err
	}
	if !s.rates.Supports(code) {
		return fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, code)
	}
	if authorID == "" {
		return fmt.Errorf("%w: transaction author is required", apperrors.ErrValidation)
	}
	return nil
}

func (s *LedgerService) append(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	txn.TransactionID = s.newID()
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	txn.CreatedAt = txn.CreatedAt.UTC()

	if err := s.store.AppendTransaction(txn); err != nil {
		s.LogError(ctx, err, "Failed to append transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}
	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)),
		slog.String("author_id", txn.AuthorID))
	return &txn, nil
}
