package services

import (
	"context"
	"iter"
	"time"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/dto"
)

// ContextSvc manages the viewing context of the session.
type ContextSvc interface {
	State(ctx context.Context) domain.AppState

	// SwitchRole changes the active role and resets the view to the default one.
	SwitchRole(ctx context.Context, role domain.UserRole) (domain.AppState, error)

	// SelectSubject picks the manager in scope. Unknown ids and non-managers
	// return apperrors.ErrNotFound.
	SelectSubject(ctx context.Context, subjectID string) (domain.AppState, error)

	SetDisplayCurrency(ctx context.Context, code string) (domain.AppState, error)
	SetActiveView(ctx context.Context, view domain.View) (domain.AppState, error)
	ViewingContext(ctx context.Context) domain.ViewingContext
}

// RosterSvc manages the users of the tenant.
type RosterSvc interface {
	// AddManager is only allowed to the owner. The first manager becomes the
	// selected subject.
	AddManager(ctx context.Context, req dto.AddManagerRequest) (*domain.User, error)
	ListUsers(ctx context.Context) []domain.User
	Owner(ctx context.Context) (*domain.User, error)
	Managers(ctx context.Context) []domain.User
}

// FeedReaderSvc serves the projections of the active viewing context. Every
// method sees only what the visibility filter lets through.
type FeedReaderSvc interface {
	FilteredData(ctx context.Context) domain.AppData

	// LedgerSummary uses the session display currency when display is empty.
	LedgerSummary(ctx context.Context, display domain.CurrencyCode) (domain.LedgerSummary, error)
	Series(ctx context.Context, display domain.CurrencyCode) (iter.Seq[domain.SeriesPoint], domain.CurrencyCode, error)
	Dashboard(ctx context.Context, now time.Time) (domain.Dashboard, error)
	EventsOn(ctx context.Context, day time.Time) []domain.CalendarEvent
	UpcomingEvents(ctx context.Context, now time.Time) []domain.CalendarEvent
	SearchDocuments(ctx context.Context, query string) []domain.Document
	SupportedCurrencies() []domain.CurrencyCode
}

// EntityWriterSvc mediates every mutation and stamps authorship.
type EntityWriterSvc interface {
	CreateRecap(ctx context.Context, req dto.CreateRecapRequest) (*domain.Recap, error)
	AddComment(ctx context.Context, recapID string, req dto.CreateCommentRequest) (*domain.Recap, error)
	CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, eventID string) error
	AddDocument(ctx context.Context, req dto.CreateDocumentRequest) (*domain.Document, error)
	RecordExpense(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	RecordBudgetCredit(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// ApplyUtterance classifies text and applies each intent through the
	// regular write paths, reporting one outcome per intent.
	ApplyUtterance(ctx context.Context, text string) ([]domain.IntentOutcome, error)
}

// ContextControllerFacade combines all controller interfaces.
type ContextControllerFacade interface {
	ContextSvc
	RosterSvc
	FeedReaderSvc
	EntityWriterSvc
}

// ServiceContainer holds instances of all the application services.
type ServiceContainer struct {
	Controller   ContextControllerFacade
	Ledger       LedgerSvcFacade
	BaseCurrency domain.CurrencyCode
}
