package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/ops_tracker/internal/models"
	"github.com/jackc/pgx/v5"
)

func insertRecapQuery(m models.Recap) sqlizer {
	return psql.Insert("recaps").
		Columns("recap_id", "title", "kind", "description", "media_urls", "author_id", "created_at").
		Values(m.RecapID, m.Title, m.Kind, m.Description, m.MediaURLs, m.AuthorID, m.CreatedAt)
}

func insertCommentQuery(recapID string, c models.Comment) sqlizer {
	return psql.Insert("recap_comments").
		Columns("comment_id", "recap_id", "author_id", "content", "created_at").
		Values(c.CommentID, recapID, c.AuthorID, c.Content, c.CreatedAt)
}

// InsertRecap stores the recap and any comments it already carries in one
// database transaction.
func (r *Persistence) InsertRecap(ctx context.Context, recap models.Recap) error {
	if recap.MediaURLs == nil {
		recap.MediaURLs = []string{}
	}
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := execTx(ctx, tx, insertRecapQuery(recap)); err != nil {
		return fmt.Errorf("failed to insert recap %s: %w", recap.RecapID, err)
	}
	for _, c := range recap.Comments {
		if err := execTx(ctx, tx, insertCommentQuery(recap.RecapID, c)); err != nil {
			return fmt.Errorf("failed to insert comment %s: %w", c.CommentID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *Persistence) InsertComment(ctx context.Context, recapID string, comment models.Comment) error {
	if _, err := r.exec(ctx, insertCommentQuery(recapID, comment)); err != nil {
		return fmt.Errorf("failed to insert comment %s on recap %s: %w", comment.CommentID, recapID, err)
	}
	return nil
}

// ListRecaps returns recaps by creation time, each with its comments in
// insertion order.
func (r *Persistence) ListRecaps(ctx context.Context) ([]models.Recap, error) {
	query, args, err := psql.Select("recap_id", "title", "kind", "description", "media_urls", "author_id", "created_at").
		From("recaps").
		OrderBy("created_at ASC", "recap_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recaps: %w", err)
	}
	defer rows.Close()

	var recaps []models.Recap
	index := make(map[string]int)
	for rows.Next() {
		var m models.Recap
		if err := rows.Scan(&m.RecapID, &m.Title, &m.Kind, &m.Description, &m.MediaURLs, &m.AuthorID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recap row: %w", err)
		}
		index[m.RecapID] = len(recaps)
		recaps = append(recaps, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recap rows: %w", err)
	}

	comments, err := r.listComments(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		if i, ok := index[c.RecapID]; ok {
			recaps[i].Comments = append(recaps[i].Comments, c)
		}
	}
	return recaps, nil
}

func (r *Persistence) listComments(ctx context.Context) ([]models.Comment, error) {
	query, args, err := psql.Select("comment_id", "recap_id", "author_id", "content", "created_at").
		From("recap_comments").
		OrderBy("recap_id ASC", "seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Comment, error) {
		var c models.Comment
		err := row.Scan(&c.CommentID, &c.RecapID, &c.AuthorID, &c.Content, &c.CreatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan comment rows: %w", err)
	}
	return comments, nil
}

func execTx(ctx context.Context, tx pgx.Tx, b sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return mapPgError(err)
	}
	return nil
}
