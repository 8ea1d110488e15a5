package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	portsrepo "github.com/SscSPs/ops_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/ops_tracker/internal/models"
)

// Persistence is a process-local persistence collaborator used when no
// database is configured. Records live only as long as the process.
type Persistence struct {
	mu           sync.Mutex
	users        []models.User
	recaps       []models.Recap
	events       []models.Event
	documents    []models.Document
	transactions []models.Transaction
}

// NewPersistence returns an empty collaborator.
func NewPersistence() *Persistence {
	return &Persistence{}
}

var _ portsrepo.PersistenceFacade = (*Persistence)(nil)

func (p *Persistence) InsertUser(_ context.Context, user models.User) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users = append(p.users, user)
	return nil
}

func (p *Persistence) InsertRecap(_ context.Context, recap models.Recap) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	recap.Comments = slices.Clone(recap.Comments)
	p.recaps = append(p.recaps, recap)
	return nil
}

func (p *Persistence) InsertComment(_ context.Context, recapID string, comment models.Comment) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := slices.IndexFunc(p.recaps, func(r models.Recap) bool { return r.RecapID == recapID })
	if i < 0 {
		return fmt.Errorf("%w: recap %s", apperrors.ErrNotFound, recapID)
	}
	comment.RecapID = recapID
	p.recaps[i].Comments = append(p.recaps[i].Comments, comment)
	return nil
}

func (p *Persistence) InsertEvent(_ context.Context, event models.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *Persistence) DeleteEvent(_ context.Context, eventID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := slices.IndexFunc(p.events, func(e models.Event) bool { return e.EventID == eventID })
	if i < 0 {
		return fmt.Errorf("%w: event %s", apperrors.ErrNotFound, eventID)
	}
	p.events = slices.Delete(p.events, i, i+1)
	return nil
}

func (p *Persistence) InsertDocument(_ context.Context, doc models.Document) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.documents = append(p.documents, doc)
	return nil
}

func (p *Persistence) InsertTransaction(_ context.Context, txn models.Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transactions = append(p.transactions, txn)
	return nil
}

func (p *Persistence) ListUsers(_ context.Context) ([]models.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.users), nil
}

func (p *Persistence) ListRecaps(_ context.Context) ([]models.Recap, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Recap, len(p.recaps))
	for i, r := range p.recaps {
		r.Comments = slices.Clone(r.Comments)
		out[i] = r
	}
	return out, nil
}

func (p *Persistence) ListEvents(_ context.Context) ([]models.Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.events), nil
}

func (p *Persistence) ListDocuments(_ context.Context) ([]models.Document, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.documents), nil
}

func (p *Persistence) ListTransactions(_ context.Context) ([]models.Transaction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.transactions), nil
}
