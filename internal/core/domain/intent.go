package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntentKind is the category the NL classifier assigned to an utterance fragment.
type IntentKind string

const (
	IntentCreateRecap   IntentKind = "RECAP"
	IntentCreateEvent   IntentKind = "EVENT"
	IntentCreateExpense IntentKind = "EXPENSE"
)

// Intent is one typed action extracted from an utterance. The set of
// implementations is closed to this package.
type Intent interface {
	Kind() IntentKind
	isIntent()
}

// CreateRecapIntent asks for a new recap.
type CreateRecapIntent struct {
	Title       string
	Description string
	RecapKind   RecapKind
}

// CreateEventIntent asks for a new calendar event.
type CreateEventIntent struct {
	Title       string
	Description string
	EventDate   time.Time
}

// CreateExpenseIntent asks for a new expense. It still goes through the
// funds admission check.
type CreateExpenseIntent struct {
	Amount       decimal.Decimal
	CurrencyCode CurrencyCode
	Reason       string
}

// UnsupportedIntent is a classifier item that could not be turned into an
// action. Applying it always fails with an unsupported action.
type UnsupportedIntent struct {
	Category string
	Reason   string
}

func (CreateRecapIntent) Kind() IntentKind   { return IntentCreateRecap }
func (CreateEventIntent) Kind() IntentKind   { return IntentCreateEvent }
func (CreateExpenseIntent) Kind() IntentKind { return IntentCreateExpense }
func (u UnsupportedIntent) Kind() IntentKind { return IntentKind(u.Category) }

func (CreateRecapIntent) isIntent()   {}
func (CreateEventIntent) isIntent()   {}
func (CreateExpenseIntent) isIntent() {}
func (UnsupportedIntent) isIntent()   {}

// IntentOutcome reports what applying a single intent produced.
type IntentOutcome struct {
	Kind        IntentKind     `json:"kind"`
	Recap       *Recap         `json:"recap,omitempty"`
	Event       *CalendarEvent `json:"event,omitempty"`
	Transaction *Transaction   `json:"transaction,omitempty"`
	Error       string         `json:"error,omitempty"`
}
