package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSummary holds the aggregate figures of a scope in one display currency.
type LedgerSummary struct {
	DisplayCurrency    CurrencyCode    `json:"displayCurrency"`
	TotalBudget        decimal.Decimal `json:"totalBudget"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	Balance            decimal.Decimal `json:"balance"`
	UtilizationPercent decimal.Decimal `json:"utilizationPercent"`
}

// SeriesPoint is one entry of the chart projection.
type SeriesPoint struct {
	Date             time.Time       `json:"date"`
	Amount           decimal.Decimal `json:"amount"` // signed, converted
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency CurrencyCode    `json:"originalCurrency"`
	Kind             TransactionKind `json:"kind"`
}

// Dashboard is the landing projection for the active viewing context.
type Dashboard struct {
	LatestRecap      *Recap         `json:"latestRecap,omitempty"`
	NextEvent        *CalendarEvent `json:"nextEvent,omitempty"`
	Summary          LedgerSummary  `json:"summary"`
	RecapCount       int            `json:"recapCount"`
	EventCount       int            `json:"eventCount"`
	DocumentCount    int            `json:"documentCount"`
	TransactionCount int            `json:"transactionCount"`
}
