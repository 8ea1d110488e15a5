package repositories

import (
	"context"

	"github.com/SscSPs/ops_tracker/internal/models"
)

// PersistenceReader lists persisted records per kind, ordered by creation time.
type PersistenceReader interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	// ListRecaps returns recaps with their comments in insertion order.
	ListRecaps(ctx context.Context) ([]models.Recap, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListDocuments(ctx context.Context) ([]models.Document, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
}

// PersistenceWriter stores records keyed by id.
type PersistenceWriter interface {
	InsertUser(ctx context.Context, user models.User) error
	InsertRecap(ctx context.Context, recap models.Recap) error
	InsertComment(ctx context.Context, recapID string, comment models.Comment) error
	InsertEvent(ctx context.Context, event models.Event) error
	DeleteEvent(ctx context.Context, eventID string) error
	InsertDocument(ctx context.Context, doc models.Document) error
	InsertTransaction(ctx context.Context, txn models.Transaction) error
}

// PersistenceFacade combines the persistence collaborator interfaces.
type PersistenceFacade interface {
	PersistenceReader
	PersistenceWriter
}
