package services

import (
	"github.com/SscSPs/ops_tracker/internal/core/domain"
)

// VisibilityFilter derives what a viewing context may see. Recaps and
// transactions belong to their author alone. Events and documents authored by
// the owner are broadcast to every manager.
type VisibilityFilter struct{}

// Visible reports whether an entity of kind written by authorID is in scope.
// Without a subject nothing is visible.
func (VisibilityFilter) Visible(vc domain.ViewingContext, kind domain.EntityKind, authorID string) bool {
	subject := vc.SubjectID()
	if subject == "" {
		return false
	}
	switch kind {
	case domain.KindRecap, domain.KindTransaction:
		return authorID == subject
	case domain.KindEvent, domain.KindDocument:
		return authorID == subject || (vc.OwnerID != "" && authorID == vc.OwnerID)
	}
	return false
}

// Filter returns the visible subset of data. Collections keep their input order
// and are never nil.
func (f VisibilityFilter) Filter(vc domain.ViewingContext, data domain.AppData) domain.AppData {
	out := domain.AppData{
		Recaps:       []domain.Recap{},
		Events:       []domain.CalendarEvent{},
		Documents:    []domain.Document{},
		Transactions: []domain.Transaction{},
	}
	if vc.SubjectID() == "" {
		return out
	}
	for _, r := range data.Recaps {
		if f.Visible(vc, domain.KindRecap, r.AuthorID) {
			out.Recaps = append(out.Recaps, r)
		}
	}
	for _, e := range data.Events {
		if f.Visible(vc, domain.KindEvent, e.AuthorID) {
			out.Events = append(out.Events, e)
		}
	}
	for _, d := range data.Documents {
		if f.Visible(vc, domain.KindDocument, d.AuthorID) {
			out.Documents = append(out.Documents, d)
		}
	}
	for _, t := range data.Transactions {
		if f.Visible(vc, domain.KindTransaction, t.AuthorID) {
			out.Transactions = append(out.Transactions, t)
		}
	}
	return out
}
