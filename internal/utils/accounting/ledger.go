package accounting

import (
	"iter"
	"slices"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TotalBudget sums the BudgetCredit transactions converted to display.
func (t *RateTable) TotalBudget(txns []domain.Transaction, display domain.CurrencyCode) (decimal.Decimal, error) {
	return t.totalOf(txns, domain.BudgetCredit, display)
}

// TotalExpenses sums the Expense transactions converted to display.
func (t *RateTable) TotalExpenses(txns []domain.Transaction, display domain.CurrencyCode) (decimal.Decimal, error) {
	return t.totalOf(txns, domain.Expense, display)
}

func (t *RateTable) totalOf(txns []domain.Transaction, kind domain.TransactionKind, display domain.CurrencyCode) (decimal.Decimal, error) {
	if _, err := t.Rate(display); err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, txn := range txns {
		if txn.Kind != kind {
			continue
		}
		converted, err := t.Convert(txn.Amount, txn.CurrencyCode, display)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(converted)
	}
	return sum, nil
}

// Balance is TotalBudget - TotalExpenses.
func (t *RateTable) Balance(txns []domain.Transaction, display domain.CurrencyCode) (decimal.Decimal, error) {
	s, err := t.Summarize(txns, display)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Balance, nil
}

// UtilizationPercent returns expenses / budget * 100, or zero without budget.
func UtilizationPercent(budget, expenses decimal.Decimal) decimal.Decimal {
	if !budget.IsPositive() {
		return decimal.Zero
	}
	return expenses.DivRound(budget, divisionPrecision).Mul(hundred)
}

// Summarize computes all ledger figures of txns in display.
func (t *RateTable) Summarize(txns []domain.Transaction, display domain.CurrencyCode) (domain.LedgerSummary, error) {
	budget, err := t.TotalBudget(txns, display)
	if err != nil {
		return domain.LedgerSummary{}, err
	}
	expenses, err := t.TotalExpenses(txns, display)
	if err != nil {
		return domain.LedgerSummary{}, err
	}
	return domain.LedgerSummary{
		DisplayCurrency:    display,
		TotalBudget:        budget,
		TotalExpenses:      expenses,
		Balance:            budget.Sub(expenses),
		UtilizationPercent: UtilizationPercent(budget, expenses),
	}, nil
}

// Series yields one point per transaction in ascending creation order. Expense
// amounts are negated before conversion. The sequence can be ranged over more
// than once; transactions with an unsupported currency are skipped.
func (t *RateTable) Series(txns []domain.Transaction, display domain.CurrencyCode) iter.Seq[domain.SeriesPoint] {
	sorted := slices.Clone(txns)
	slices.SortStableFunc(sorted, func(a, b domain.Transaction) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return func(yield func(domain.SeriesPoint) bool) {
		for _, txn := range sorted {
			converted, err := t.Convert(txn.SignedAmount(), txn.CurrencyCode, display)
			if err != nil {
				continue
			}
			p := domain.SeriesPoint{
				Date:             txn.CreatedAt,
				Amount:           converted,
				OriginalAmount:   txn.Amount,
				OriginalCurrency: txn.CurrencyCode,
				Kind:             txn.Kind,
			}
			if !yield(p) {
				return
			}
		}
	}
}
