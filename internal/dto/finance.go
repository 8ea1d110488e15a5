package dto

import (
	"time"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is shared by expenses and budget credits. Amount is
// kept as text so malformed numbers surface as invalid amounts.
type CreateTransactionRequest struct {
	Amount       string `json:"amount" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required"`
	Reason       string `json:"reason"`
}

// SummaryParams defines query parameters for ledger figures.
type SummaryParams struct {
	Currency string `form:"currency"`
}

// LedgerSummaryResponse defines the ledger figures of the active scope.
type LedgerSummaryResponse struct {
	DisplayCurrency    domain.CurrencyCode `json:"displayCurrency"`
	TotalBudget        string              `json:"totalBudget"`
	TotalExpenses      string              `json:"totalExpenses"`
	Balance            string              `json:"balance"`
	UtilizationPercent string              `json:"utilizationPercent"`
}

// ToLedgerSummaryResponse rounds the figures to the minor unit of the display currency.
func ToLedgerSummaryResponse(s domain.LedgerSummary) LedgerSummaryResponse {
	return LedgerSummaryResponse{
		DisplayCurrency:    s.DisplayCurrency,
		TotalBudget:        utils.FormatWithCurrencyPrecision(s.TotalBudget, s.DisplayCurrency),
		TotalExpenses:      utils.FormatWithCurrencyPrecision(s.TotalExpenses, s.DisplayCurrency),
		Balance:            utils.FormatWithCurrencyPrecision(s.Balance, s.DisplayCurrency),
		UtilizationPercent: s.UtilizationPercent.StringFixed(2),
	}
}

// SeriesPointResponse is one chart point.
type SeriesPointResponse struct {
	Date             time.Time              `json:"date"`
	Amount           decimal.Decimal        `json:"amount"`
	OriginalAmount   decimal.Decimal        `json:"originalAmount"`
	OriginalCurrency domain.CurrencyCode    `json:"originalCurrency"`
	Kind             domain.TransactionKind `json:"kind"`
}

// SeriesResponse wraps the chart projection.
type SeriesResponse struct {
	DisplayCurrency domain.CurrencyCode   `json:"displayCurrency"`
	Points          []SeriesPointResponse `json:"points"`
}

// ToSeriesPointResponse converts a domain.SeriesPoint to its DTO
func ToSeriesPointResponse(p domain.SeriesPoint) SeriesPointResponse {
	return SeriesPointResponse{
		Date:             p.Date,
		Amount:           p.Amount,
		OriginalAmount:   p.OriginalAmount,
		OriginalCurrency: p.OriginalCurrency,
		Kind:             p.Kind,
	}
}

// ListTransactionsResponse wraps visible transactions, newest first.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	NextToken    string               `json:"nextToken,omitempty"`
}

// ListCurrenciesResponse lists the supported currencies.
type ListCurrenciesResponse struct {
	Base       domain.CurrencyCode `json:"base"`
	Currencies []CurrencyResponse  `json:"currencies"`
}

// CurrencyResponse describes one supported currency.
type CurrencyResponse struct {
	CurrencyCode domain.CurrencyCode `json:"currencyCode"`
	Symbol       string              `json:"symbol,omitempty"`
	Name         string              `json:"name,omitempty"`
	Rate         decimal.Decimal     `json:"rate"`
}

// InsufficientFundsResponse is returned with 409 when an expense is refused.
type InsufficientFundsResponse struct {
	Error     string `json:"error"`
	Attempted string `json:"attempted"`
	Available string `json:"available"`
	Currency  string `json:"currency"`
}
