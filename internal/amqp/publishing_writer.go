package amqp

import (
	"context"
	"log/slog"

	portsrepo "github.com/SscSPs/ops_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/ops_tracker/internal/middleware"
	"github.com/SscSPs/ops_tracker/internal/models"
)

// Publisher sends change messages.
type Publisher interface {
	PublishChange(ctx context.Context, msg *ChangeMessage) error
}

// PublishingWriter forwards writes to the wrapped persistence writer and, once
// a write succeeds, announces it. Publishing is best effort: a failed publish
// is logged and never turns a successful write into an error.
type PublishingWriter struct {
	portsrepo.PersistenceReader
	next      portsrepo.PersistenceWriter
	publisher Publisher
}

// NewPublishingWriter decorates inner.
func NewPublishingWriter(inner portsrepo.PersistenceFacade, publisher Publisher) *PublishingWriter {
	return &PublishingWriter{PersistenceReader: inner, next: inner, publisher: publisher}
}

var _ portsrepo.PersistenceFacade = (*PublishingWriter)(nil)

func (w *PublishingWriter) InsertUser(ctx context.Context, user models.User) error {
	if err := w.next.InsertUser(ctx, user); err != nil {
		return err
	}
	w.publish(ctx, OpInsert, "user", user.UserID, "", user)
	return nil
}

func (w *PublishingWriter) InsertRecap(ctx context.Context, recap models.Recap) error {
	if err := w.next.InsertRecap(ctx, recap); err != nil {
		return err
	}
	w.publish(ctx, OpInsert, "recap", recap.RecapID, "", recap)
	return nil
}

func (w *PublishingWriter) InsertComment(ctx context.Context, recapID string, comment models.Comment) error {
	if err := w.next.InsertComment(ctx, recapID, comment); err != nil {
		return err
	}
	w.publish(ctx, OpInsert, "comment", comment.CommentID, recapID, comment)
	return nil
}

func (w *PublishingWriter) InsertEvent(ctx context.Context, event models.Event) error {
	if err := w.next.InsertEvent(ctx, event); err != nil {
		return err
	}
	w.publish(ctx, OpInsert, "event", event.EventID, "", event)
	return nil
}

func (w *PublishingWriter) DeleteEvent(ctx context.Context, eventID string) error {
	if err := w.next.DeleteEvent(ctx, eventID); err != nil {
		return err
	}
	w.publish(ctx, OpDelete, "event", eventID, "", nil)
	return nil
}

func (w *PublishingWriter) InsertDocument(ctx context.Context, doc models.Document) error {
	if err := w.next.InsertDocument(ctx, doc); err != nil {
		return err
	}
	w.publish(ctx, OpInsert, "document", doc.DocumentID, "", doc)
	return nil
}

func (w *PublishingWriter) InsertTransaction(ctx context.Context, txn models.Transaction) error {
	if err := w.next.InsertTransaction(ctx, txn); err != nil {
		return err
	}
	w.publish(ctx, OpInsert, "transaction", txn.TransactionID, "", txn)
	return nil
}

func (w *PublishingWriter) publish(ctx context.Context, op Operation, kind, id, parentID string, record any) {
	logger := middleware.GetLoggerFromCtx(ctx)
	msg, err := NewChangeMessage(op, kind, id, record)
	if err != nil {
		logger.Error("Failed to build change message", slog.String("kind", kind), slog.String("id", id), slog.String("error", err.Error()))
		return
	}
	msg.ParentID = parentID
	if err := w.publisher.PublishChange(ctx, msg); err != nil {
		logger.Warn("Failed to publish change message", slog.String("kind", kind), slog.String("id", id), slog.String("error", err.Error()))
	}
}
