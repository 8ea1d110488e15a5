package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/ops_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/SscSPs/ops_tracker/internal/dto"
	"github.com/SscSPs/ops_tracker/internal/utils/accounting"
	"github.com/SscSPs/ops_tracker/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

func (c *ContextController) CreateRecap(ctx context.Context, req dto.CreateRecapRequest) (*domain.Recap, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createRecap(ctx, req)
}

func (c *ContextController) createRecap(ctx context.Context, req dto.CreateRecapRequest) (*domain.Recap, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: recap title is required", apperrors.ErrValidation)
	}
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown recap kind %q", apperrors.ErrValidation, req.Kind)
	}
	authorID, err := c.actorID()
	if err != nil {
		return nil, err
	}

	recap := domain.Recap{
		RecapID:     c.newID(),
		Title:       title,
		Kind:        req.Kind,
		Description: req.Description,
		MediaURLs:   append([]string{}, req.MediaURLs...),
		Comments:    []domain.Comment{},
		Authorship:  c.stamp(authorID),
	}
	if err := c.store.AppendRecap(recap); err != nil {
		c.LogError(ctx, err, "Failed to append recap", slog.String("recap_id", recap.RecapID))
		return nil, fmt.Errorf("failed to create recap: %w", err)
	}
	c.sync(ctx, "insert", string(domain.KindRecap), recap.RecapID, func(ctx context.Context, w portsrepo.PersistenceWriter) error {
		return w.InsertRecap(ctx, mapping.ToModelRecap(recap))
	})
	c.LogInfo(ctx, "Recap created", slog.String("recap_id", recap.RecapID), slog.String("author_id", authorID))
	return &recap, nil
}

// AddComment appends to a visible recap. A recap outside the viewing context is
// reported as not found.
func (c *ContextController) AddComment(ctx context.Context, recapID string, req dto.CreateCommentRequest) (*domain.Recap, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", apperrors.ErrValidation)
	}
	authorID, err := c.actorID()
	if err != nil {
		return nil, err
	}
	if !c.recapVisible(recapID) {
		return nil, fmt.Errorf("recap %q: %w", recapID, apperrors.ErrNotFound)
	}

	comment := domain.Comment{
		CommentID: c.newID(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: c.now().UTC(),
	}
	recap, err := c.store.AppendComment(recapID, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	c.sync(ctx, "insert", "COMMENT", comment.CommentID, func(ctx context.Context, w portsrepo.PersistenceWriter) error {
		return w.InsertComment(ctx, recapID, mapping.ToModelComment(recapID, comment))
	})
	return recap, nil
}

func (c *ContextController) recapVisible(recapID string) bool {
	vc := c.viewingContext()
	for _, r := range c.store.ListRecaps() {
		if r.RecapID == recapID {
			return c.visibility.Visible(vc, domain.KindRecap, r.AuthorID)
		}
	}
	return false
}

func (c *ContextController) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*domain.CalendarEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createEvent(ctx, req)
}

func (c *ContextController) createEvent(ctx context.Context, req dto.CreateEventRequest) (*domain.CalendarEvent, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: event title is required", apperrors.ErrValidation)
	}
	if req.EventDate.IsZero() {
		return nil, fmt.Errorf("%w: event date is required", apperrors.ErrValidation)
	}
	authorID, err := c.actorID()
	if err != nil {
		return nil, err
	}

	event := domain.CalendarEvent{
		EventID:     c.newID(),
		Title:       title,
		Description: req.Description,
		EventDate:   req.EventDate.UTC(),
		Authorship:  c.stamp(authorID),
	}
	if err := c.store.AppendEvent(event); err != nil {
		c.LogError(ctx, err, "Failed to append event", slog.String("event_id", event.EventID))
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	c.sync(ctx, "insert", string(domain.KindEvent), event.EventID, func(ctx context.Context, w portsrepo.PersistenceWriter) error {
		return w.InsertEvent(ctx, mapping.ToModelEvent(event))
	})
	return &event, nil
}

// DeleteEvent removes a visible event. Managers may only remove their own
// events; the owner may remove any event in view.
func (c *ContextController) DeleteEvent(ctx context.Context, eventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	vc := c.viewingContext()
	var target *domain.CalendarEvent
	for _, e := range c.store.ListEvents() {
		if e.EventID == eventID {
			target = &e
			break
		}
	}
	if target == nil || !c.visibility.Visible(vc, domain.KindEvent, target.AuthorID) {
		return fmt.Errorf("event %q: %w", eventID, apperrors.ErrNotFound)
	}
	if vc.ActorRole != domain.RoleOwner && target.AuthorID != vc.ActorID {
		return fmt.Errorf("%w: only the author or the owner can delete event %q", apperrors.ErrForbidden, eventID)
	}

	if err := c.store.RemoveEvent(eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	c.sync(ctx, "delete", string(domain.KindEvent), eventID, func(ctx context.Context, w portsrepo.PersistenceWriter) error {
		return w.DeleteEvent(ctx, eventID)
	})
	c.LogInfo(ctx, "Event deleted", slog.String("event_id", eventID), slog.String("actor_id", vc.ActorID))
	return nil
}

func (c *ContextController) AddDocument(ctx context.Context, req dto.CreateDocumentRequest) (*domain.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: document name is required", apperrors.ErrValidation)
	}
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown document category %q", apperrors.ErrValidation, req.Category)
	}
	if req.SizeBytes < 0 {
		return nil, fmt.Errorf("%w: document size cannot be negative", apperrors.ErrValidation)
	}
	authorID, err := c.actorID()
	if err != nil {
		return nil, err
	}

	doc := domain.Document{
		DocumentID: c.newID(),
		Name:       name,
		Category:   req.Category,
		Size:       domain.SizeDescriptor(req.SizeBytes),
		Authorship: c.stamp(authorID),
	}
	if err := c.store.AppendDocument(doc); err != nil {
		c.LogError(ctx, err, "Failed to append document", slog.String("document_id", doc.DocumentID))
		return nil, fmt.Errorf("failed to add document: %w", err)
	}
	c.sync(ctx, "insert", string(domain.KindDocument), doc.DocumentID, func(ctx context.Context, w portsrepo.PersistenceWriter) error {
		return w.InsertDocument(ctx, mapping.ToModelDocument(doc))
	})
	return &doc, nil
}

// RecordExpense is checked against the balance of the subject in scope,
// expressed in the session display currency.
func (c *ContextController) RecordExpense(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	amount, code, err := c.parseMoney(req.Amount, req.CurrencyCode)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recordExpense(ctx, amount, code, req.Reason)
}

func (c *ContextController) recordExpense(ctx context.Context, amount decimal.Decimal, code domain.CurrencyCode, reason string) (*domain.Transaction, error) {
	if err := accounting.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if !c.rates.Supports(code) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, code)
	}
	authorID, err := c.financialAuthorID()
	if err != nil {
		return nil, err
	}

	txn, err := c.ledger.RecordExpense(ctx, portssvc.ExpenseRequest{
		Amount:       amount,
		CurrencyCode: code,
		Reason:       strings.TrimSpace(reason),
		AuthorID:     authorID,
		CreatedAt:    c.now(),
	}, c.filtered().Transactions, c.state.DisplayCurrency)
	if err != nil {
		return nil, err
	}
	c.syncTransaction(ctx, *txn)
	return txn, nil
}

// RecordBudgetCredit credits the selected manager. Only the owner may do this.
func (c *ContextController) RecordBudgetCredit(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.ActiveRole != domain.RoleOwner {
		return nil, fmt.Errorf("%w: only the owner can credit a budget", apperrors.ErrForbidden)
	}
	amount, code, err := c.parseMoney(req.Amount, req.CurrencyCode)
	if err != nil {
		return nil, err
	}
	authorID, err := c.financialAuthorID()
	if err != nil {
		return nil, err
	}

	txn, err := c.ledger.RecordBudgetCredit(ctx, portssvc.CreditRequest{
		Amount:       amount,
		CurrencyCode: code,
		Reason:       strings.TrimSpace(req.Reason),
		AuthorID:     authorID,
		CreatedAt:    c.now(),
	})
	if err != nil {
		return nil, err
	}
	c.syncTransaction(ctx, *txn)
	return txn, nil
}

func (c *ContextController) parseMoney(rawAmount, rawCode string) (decimal.Decimal, domain.CurrencyCode, error) {
	amount, err := accounting.ParseAmount(rawAmount)
	if err != nil {
		return decimal.Zero, "", err
	}
	code := domain.NormalizeCurrencyCode(rawCode)
	if !c.rates.Supports(code) {
		return decimal.Zero, "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedCurrency, rawCode)
	}
	return amount, code, nil
}

func (c *ContextController) syncTransaction(ctx context.Context, txn domain.Transaction) {
	c.sync(ctx, "insert", string(domain.KindTransaction), txn.TransactionID, func(ctx context.Context, w portsrepo.PersistenceWriter) error {
		return w.InsertTransaction(ctx, mapping.ToModelTransaction(txn))
	})
}

func (c *ContextController) stamp(authorID string) domain.Authorship {
	return domain.Authorship{AuthorID: authorID, CreatedAt: c.now().UTC()}
}
