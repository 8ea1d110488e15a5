package models

// Transaction is the persisted ledger row. Amount is kept as the decimal text
// of a NUMERIC column so no precision is lost on the way in or out.
type Transaction struct {
	TransactionID string `json:"transaction_id" db:"transaction_id"`
	Amount        string `json:"amount" db:"amount"`
	Reason        string `json:"reason" db:"reason"`
	Kind          string `json:"kind" db:"kind"`
	CurrencyCode  string `json:"currency_code" db:"currency_code"`
	AuditFields
}
