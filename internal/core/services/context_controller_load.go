package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/models"
	"github.com/SscSPs/ops_tracker/internal/utils/mapping"
	"golang.org/x/sync/errgroup"
)

// Load hydrates the entity store from the persistence collaborator. Records
// that cannot be coerced into the domain are skipped with a warning. It is a
// no-op without persistence.
func (c *ContextController) Load(ctx context.Context) error {
	if c.persistence == nil {
		return nil
	}

	var (
		users        []models.User
		recaps       []models.Recap
		events       []models.Event
		documents    []models.Document
		transactions []models.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = c.persistence.ListUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		recaps, err = c.persistence.ListRecaps(gctx)
		return err
	})
	g.Go(func() (err error) {
		events, err = c.persistence.ListEvents(gctx)
		return err
	})
	g.Go(func() (err error) {
		documents, err = c.persistence.ListDocuments(gctx)
		return err
	})
	g.Go(func() (err error) {
		transactions, err = c.persistence.ListTransactions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		c.LogError(ctx, err, "Failed to read persisted records")
		return fmt.Errorf("failed to load persisted records: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	loaded := 0
	for _, m := range users {
		u, err := mapping.ToDomainUser(m)
		if err == nil {
			err = c.store.AddUser(u)
		}
		if c.skipped(ctx, "USER", m.UserID, err) {
			continue
		}
		if u.Role == domain.RoleOwner {
			c.state.OwnerID = u.UserID
		}
		loaded++
	}
	for _, m := range recaps {
		r, err := mapping.ToDomainRecap(m)
		if err == nil {
			err = c.store.AppendRecap(r)
		}
		if !c.skipped(ctx, string(domain.KindRecap), m.RecapID, err) {
			loaded++
		}
	}
	for _, m := range events {
		e, err := mapping.ToDomainEvent(m)
		if err == nil {
			err = c.store.AppendEvent(e)
		}
		if !c.skipped(ctx, string(domain.KindEvent), m.EventID, err) {
			loaded++
		}
	}
	for _, m := range documents {
		d, err := mapping.ToDomainDocument(m)
		if err == nil {
			err = c.store.AppendDocument(d)
		}
		if !c.skipped(ctx, string(domain.KindDocument), m.DocumentID, err) {
			loaded++
		}
	}
	for _, m := range transactions {
		t, err := mapping.ToDomainTransaction(m)
		if err == nil && !c.rates.Supports(t.CurrencyCode) {
			err = fmt.Errorf("unsupported currency %s", t.CurrencyCode)
		}
		if err == nil {
			err = c.store.AppendTransaction(t)
		}
		if !c.skipped(ctx, string(domain.KindTransaction), m.TransactionID, err) {
			loaded++
		}
	}

	c.selectFirstManager()
	c.LogInfo(ctx, "Entity store hydrated", slog.Int("records", loaded))
	return nil
}

func (c *ContextController) skipped(ctx context.Context, kind, id string, err error) bool {
	if err == nil {
		return false
	}
	c.LogWarn(ctx, "Skipping persisted record",
		slog.String("kind", kind),
		slog.String("id", id),
		slog.String("error", err.Error()))
	return true
}
