package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/SscSPs/ops_tracker/internal/core/services"
	"github.com/SscSPs/ops_tracker/internal/repositories/memory"
	"github.com/SscSPs/ops_tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) (*services.LedgerService, *memory.EntityStore) {
	t.Helper()
	store := memory.NewEntityStore()
	return services.NewLedgerService(store, accounting.MustDefaultRateTable(), services.WithLedgerIDGenerator(sequentialIDs("txn"))), store
}

func TestLedgerService_RecordExpenseAdmission(t *testing.T) {
	ctx := context.Background()
	ledger, store := newLedger(t)

	credit, err := ledger.RecordBudgetCredit(ctx, portssvc.CreditRequest{
		Amount: decimal.NewFromInt(109), CurrencyCode: domain.USD, AuthorID: "m1", CreatedAt: baseTime,
	})
	require.NoError(t, err)
	assert.Equal(t, "txn-1", credit.TransactionID)

	scope := store.ListTransactions()
	_, err = ledger.RecordExpense(ctx, portssvc.ExpenseRequest{
		Amount: decimal.RequireFromString("100.01"), CurrencyCode: domain.EUR, AuthorID: "m1", CreatedAt: baseTime,
	}, scope, domain.EUR)
	var ife *apperrors.InsufficientFundsError
	require.True(t, errors.As(err, &ife))
	assert.Equal(t, "EUR", ife.Currency)
	assert.True(t, ife.Available.Equal(decimal.NewFromInt(100)), "available %s", ife.Available)
	assert.Len(t, store.ListTransactions(), 1)

	expense, err := ledger.RecordExpense(ctx, portssvc.ExpenseRequest{
		Amount: decimal.NewFromInt(100), CurrencyCode: domain.EUR, AuthorID: "m1", CreatedAt: baseTime,
	}, scope, domain.EUR)
	require.NoError(t, err)
	assert.Equal(t, domain.Expense, expense.Kind)

	summary, err := ledger.Summary(ctx, store.ListTransactions(), domain.EUR)
	require.NoError(t, err)
	assert.True(t, summary.Balance.IsZero(), "balance %s", summary.Balance)
}

func TestLedgerService_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	ledger, store := newLedger(t)

	tests := []struct {
		name    string
		req     portssvc.CreditRequest
		wantErr error
	}{
		{"zero amount", portssvc.CreditRequest{Amount: decimal.Zero, CurrencyCode: domain.EUR, AuthorID: "m1"}, apperrors.ErrInvalidAmount},
		{"negative amount", portssvc.CreditRequest{Amount: decimal.NewFromInt(-3), CurrencyCode: domain.EUR, AuthorID: "m1"}, apperrors.ErrInvalidAmount},
		{"unknown currency", portssvc.CreditRequest{Amount: decimal.NewFromInt(3), CurrencyCode: "GBP", AuthorID: "m1"}, apperrors.ErrUnsupportedCurrency},
		{"missing author", portssvc.CreditRequest{Amount: decimal.NewFromInt(3), CurrencyCode: domain.EUR}, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.RecordBudgetCredit(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, store.ListTransactions())
}

func TestLedgerService_SeriesUnsupportedDisplay(t *testing.T) {
	ledger, _ := newLedger(t)
	_, err := ledger.Series(context.Background(), nil, "GBP")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency)
	assert.Equal(t, []domain.CurrencyCode{domain.EUR, domain.USD, domain.XOF}, ledger.SupportedCurrencies())
}
