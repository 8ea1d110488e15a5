package pgsql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/models"
	"github.com/jackc/pgx/v5"
)

func insertEventQuery(m models.Event) sqlizer {
	return psql.Insert("events").
		Columns("event_id", "title", "description", "event_date", "author_id", "created_at").
		Values(m.EventID, m.Title, m.Description, m.EventDate, m.AuthorID, m.CreatedAt)
}

func deleteEventQuery(eventID string) sqlizer {
	return psql.Delete("events").Where(sq.Eq{"event_id": eventID})
}

func (r *Persistence) InsertEvent(ctx context.Context, event models.Event) error {
	if _, err := r.exec(ctx, insertEventQuery(event)); err != nil {
		return fmt.Errorf("failed to insert event %s: %w", event.EventID, err)
	}
	return nil
}

func (r *Persistence) DeleteEvent(ctx context.Context, eventID string) error {
	n, err := r.exec(ctx, deleteEventQuery(eventID))
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: event %s", apperrors.ErrNotFound, eventID)
	}
	return nil
}

func (r *Persistence) ListEvents(ctx context.Context) ([]models.Event, error) {
	query, args, err := psql.Select("event_id", "title", "description", "event_date", "author_id", "created_at").
		From("events").
		OrderBy("created_at ASC", "event_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Event, error) {
		var m models.Event
		err := row.Scan(&m.EventID, &m.Title, &m.Description, &m.EventDate, &m.AuthorID, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan event rows: %w", err)
	}
	return events, nil
}
