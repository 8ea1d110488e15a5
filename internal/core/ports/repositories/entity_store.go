package repositories

import (
	"github.com/SscSPs/ops_tracker/internal/core/domain"
)

// UserRoster holds the users of the tenant.
type UserRoster interface {
	// AddUser appends a user. A second owner or a duplicate id is rejected.
	AddUser(user domain.User) error

	// FindUserByID returns apperrors.ErrNotFound for unknown ids.
	FindUserByID(userID string) (*domain.User, error)

	// ListUsers returns the roster in insertion order.
	ListUsers() []domain.User
}

// EntityReader lists each collection in insertion order. Returned slices are
// copies and may be modified by the caller.
type EntityReader interface {
	ListRecaps() []domain.Recap
	ListEvents() []domain.CalendarEvent
	ListDocuments() []domain.Document
	ListTransactions() []domain.Transaction
}

// EntityWriter appends and removes entities. There is no update in place
// except comment append.
type EntityWriter interface {
	AppendRecap(recap domain.Recap) error
	AppendEvent(event domain.CalendarEvent) error
	AppendDocument(doc domain.Document) error
	AppendTransaction(txn domain.Transaction) error

	// AppendComment returns apperrors.ErrNotFound when recapID does not resolve
	// and leaves every recap unchanged in that case.
	AppendComment(recapID string, comment domain.Comment) (*domain.Recap, error)

	// RemoveEvent returns apperrors.ErrNotFound when eventID does not resolve.
	RemoveEvent(eventID string) error
}

// EntityStoreFacade combines all entity store interfaces.
type EntityStoreFacade interface {
	UserRoster
	EntityReader
	EntityWriter
}
