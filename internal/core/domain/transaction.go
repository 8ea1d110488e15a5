package domain

import "github.com/shopspring/decimal"

// TransactionKind decides the sign of a transaction amount.
type TransactionKind string

const (
	BudgetCredit TransactionKind = "BUDGET_CREDIT" // increases available funds
	Expense      TransactionKind = "EXPENSE"       // decreases available funds
)

// IsValid reports whether k is a known transaction kind.
func (k TransactionKind) IsValid() bool {
	return k == BudgetCredit || k == Expense
}

// Transaction is an immutable ledger line. Amount is always positive; the sign is
// derived from Kind.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason"`
	Kind          TransactionKind `json:"kind"`
	CurrencyCode  CurrencyCode    `json:"currencyCode"`
	Authorship
}

// SignedAmount returns Amount for credits and -Amount for expenses.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
