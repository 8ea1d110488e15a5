package services

import (
	"context"
	"iter"
	"time"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
)

// filtered must be called with mu held.
func (c *ContextController) filtered() domain.AppData {
	all := domain.AppData{
		Recaps:       c.store.ListRecaps(),
		Events:       c.store.ListEvents(),
		Documents:    c.store.ListDocuments(),
		Transactions: c.store.ListTransactions(),
	}
	return newestFirst(c.visibility.Filter(c.viewingContext(), all))
}

func (c *ContextController) displayOrDefault(display domain.CurrencyCode) domain.CurrencyCode {
	if display == "" {
		return c.state.DisplayCurrency
	}
	return domain.NormalizeCurrencyCode(string(display))
}

func (c *ContextController) FilteredData(_ context.Context) domain.AppData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filtered()
}

func (c *ContextController) LedgerSummary(ctx context.Context, display domain.CurrencyCode) (domain.LedgerSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Summary(ctx, c.filtered().Transactions, c.displayOrDefault(display))
}

func (c *ContextController) Series(ctx context.Context, display domain.CurrencyCode) (iter.Seq[domain.SeriesPoint], domain.CurrencyCode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	code := c.displayOrDefault(display)
	seq, err := c.ledger.Series(ctx, c.filtered().Transactions, code)
	if err != nil {
		return nil, "", err
	}
	return seq, code, nil
}

func (c *ContextController) Dashboard(ctx context.Context, now time.Time) (domain.Dashboard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data := c.filtered()
	summary, err := c.ledger.Summary(ctx, data.Transactions, c.state.DisplayCurrency)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return dashboard(data, summary, now), nil
}

func (c *ContextController) EventsOn(_ context.Context, day time.Time) []domain.CalendarEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return eventsOn(c.filtered().Events, day)
}

func (c *ContextController) UpcomingEvents(_ context.Context, now time.Time) []domain.CalendarEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return upcomingEvents(c.filtered().Events, now)
}

func (c *ContextController) SearchDocuments(_ context.Context, query string) []domain.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return searchDocuments(c.filtered().Documents, query)
}

func (c *ContextController) SupportedCurrencies() []domain.CurrencyCode {
	return c.ledger.SupportedCurrencies()
}
