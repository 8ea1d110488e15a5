package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/ops_tracker/internal/models"
	"github.com/jackc/pgx/v5"
)

func insertDocumentQuery(m models.Document) sqlizer {
	return psql.Insert("documents").
		Columns("document_id", "name", "category", "size", "author_id", "created_at").
		Values(m.DocumentID, m.Name, m.Category, m.Size, m.AuthorID, m.CreatedAt)
}

func (r *Persistence) InsertDocument(ctx context.Context, doc models.Document) error {
	if _, err := r.exec(ctx, insertDocumentQuery(doc)); err != nil {
		return fmt.Errorf("failed to insert document %s: %w", doc.DocumentID, err)
	}
	return nil
}

func (r *Persistence) ListDocuments(ctx context.Context) ([]models.Document, error) {
	query, args, err := psql.Select("document_id", "name", "category", "size", "author_id", "created_at").
		From("documents").
		OrderBy("created_at ASC", "document_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Document, error) {
		var m models.Document
		err := row.Scan(&m.DocumentID, &m.Name, &m.Category, &m.Size, &m.AuthorID, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan document rows: %w", err)
	}
	return docs, nil
}
