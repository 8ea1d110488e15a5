package memory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/ops_tracker/internal/core/ports/repositories"
)

// EntityStore keeps every collection in memory, in insertion order.
type EntityStore struct {
	mu           sync.RWMutex
	users        []domain.User
	recaps       []domain.Recap
	events       []domain.CalendarEvent
	documents    []domain.Document
	transactions []domain.Transaction
}

// NewEntityStore returns an empty store.
func NewEntityStore() *EntityStore {
	return &EntityStore{}
}

var _ portsrepo.EntityStoreFacade = (*EntityStore)(nil)

func (s *EntityStore) AddUser(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UserID == user.UserID {
			return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, user.UserID)
		}
		if user.Role == domain.RoleOwner && u.Role == domain.RoleOwner {
			return fmt.Errorf("%w: tenant already has an owner", apperrors.ErrDuplicate)
		}
	}
	s.users = append(s.users, user)
	return nil
}

func (s *EntityStore) FindUserByID(userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.UserID == userID {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
}

func (s *EntityStore) ListUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

func (s *EntityStore) ListRecaps() []domain.Recap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Recap, len(s.recaps))
	for i, r := range s.recaps {
		out[i] = r.Clone()
	}
	return out
}

func (s *EntityStore) ListEvents() []domain.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

func (s *EntityStore) ListDocuments() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.documents)
}

func (s *EntityStore) ListTransactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transactions)
}

func (s *EntityStore) AppendRecap(recap domain.Recap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.recaps, func(r domain.Recap) bool { return r.RecapID == recap.RecapID }) {
		return fmt.Errorf("%w: recap %s", apperrors.ErrDuplicate, recap.RecapID)
	}
	s.recaps = append(s.recaps, recap.Clone())
	return nil
}

func (s *EntityStore) AppendEvent(event domain.CalendarEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.events, func(e domain.CalendarEvent) bool { return e.EventID == event.EventID }) {
		return fmt.Errorf("%w: event %s", apperrors.ErrDuplicate, event.EventID)
	}
	s.events = append(s.events, event)
	return nil
}

func (s *EntityStore) AppendDocument(doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.documents, func(d domain.Document) bool { return d.DocumentID == doc.DocumentID }) {
		return fmt.Errorf("%w: document %s", apperrors.ErrDuplicate, doc.DocumentID)
	}
	s.documents = append(s.documents, doc)
	return nil
}

func (s *EntityStore) AppendTransaction(txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.transactions, func(t domain.Transaction) bool { return t.TransactionID == txn.TransactionID }) {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	s.transactions = append(s.transactions, txn)
	return nil
}

func (s *EntityStore) AppendComment(recapID string, comment domain.Comment) (*domain.Recap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.recaps, func(r domain.Recap) bool { return r.RecapID == recapID })
	if i < 0 {
		return nil, fmt.Errorf("%w: recap %s", apperrors.ErrNotFound, recapID)
	}
	s.recaps[i].Comments = append(s.recaps[i].Comments, comment)
	updated := s.recaps[i].Clone()
	return &updated, nil
}

func (s *EntityStore) RemoveEvent(eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.events, func(e domain.CalendarEvent) bool { return e.EventID == eventID })
	if i < 0 {
		return fmt.Errorf("%w: event %s", apperrors.ErrNotFound, eventID)
	}
	s.events = slices.Delete(s.events, i, i+1)
	return nil
}
