package mapping

import (
	"fmt"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/models"
	"github.com/SscSPs/ops_tracker/internal/utils/accounting"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Amount:        d.Amount.String(),
		Reason:        d.Reason,
		Kind:          string(d.Kind),
		CurrencyCode:  string(d.CurrencyCode),
		AuditFields:   ToModelAuditFields(d.Authorship),
	}
}

// ToDomainTransaction coerces a model Transaction into a domain Transaction.
// The amount must parse as a positive decimal and the kind must be known.
// Whether the currency is supported is decided by the caller's rate table.
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	if err := requireID("transaction", m.TransactionID); err != nil {
		return domain.Transaction{}, err
	}
	kind := domain.TransactionKind(m.Kind)
	if !kind.IsValid() {
		return domain.Transaction{}, fmt.Errorf("%w: transaction %s has unknown kind %q", apperrors.ErrValidation, m.TransactionID, m.Kind)
	}
	amount, err := accounting.ParseAmount(m.Amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", m.TransactionID, err)
	}
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Amount:        amount,
		Reason:        m.Reason,
		Kind:          kind,
		CurrencyCode:  domain.NormalizeCurrencyCode(m.CurrencyCode),
		Authorship:    ToDomainAuthorship(m.AuditFields),
	}, nil
}
