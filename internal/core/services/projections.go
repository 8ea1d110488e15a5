package services

import (
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
)

// newestFirst orders filtered data for display: recaps, documents and
// transactions by creation descending, events by event date ascending.
func newestFirst(data domain.AppData) domain.AppData {
	slices.SortStableFunc(data.Recaps, func(a, b domain.Recap) int { return b.CreatedAt.Compare(a.CreatedAt) })
	slices.SortStableFunc(data.Documents, func(a, b domain.Document) int { return b.CreatedAt.Compare(a.CreatedAt) })
	slices.SortStableFunc(data.Transactions, func(a, b domain.Transaction) int { return b.CreatedAt.Compare(a.CreatedAt) })
	slices.SortStableFunc(data.Events, func(a, b domain.CalendarEvent) int { return a.EventDate.Compare(b.EventDate) })
	return data
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// eventsOn expects events sorted by date.
func eventsOn(events []domain.CalendarEvent, day time.Time) []domain.CalendarEvent {
	out := []domain.CalendarEvent{}
	for _, e := range events {
		if sameDay(e.EventDate, day) {
			out = append(out, e)
		}
	}
	return out
}

// upcomingEvents expects events sorted by date.
func upcomingEvents(events []domain.CalendarEvent, now time.Time) []domain.CalendarEvent {
	out := []domain.CalendarEvent{}
	for _, e := range events {
		if !e.EventDate.Before(now) {
			out = append(out, e)
		}
	}
	return out
}

func searchDocuments(docs []domain.Document, query string) []domain.Document {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return docs
	}
	out := []domain.Document{}
	for _, d := range docs {
		if strings.Contains(strings.ToLower(d.Name), query) {
			out = append(out, d)
		}
	}
	return out
}

// dashboard expects data ordered by newestFirst.
func dashboard(data domain.AppData, summary domain.LedgerSummary, now time.Time) domain.Dashboard {
	d := domain.Dashboard{
		Summary:          summary,
		RecapCount:       len(data.Recaps),
		EventCount:       len(data.Events),
		DocumentCount:    len(data.Documents),
		TransactionCount: len(data.Transactions),
	}
	if len(data.Recaps) > 0 {
		latest := data.Recaps[0].Clone()
		d.LatestRecap = &latest
	}
	for _, e := range data.Events {
		if e.EventDate.After(now) {
			next := e
			d.NextEvent = &next
			break
		}
	}
	return d
}
