package pgsql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SscSPs/ops_tracker/internal/models"
	"github.com/jackc/pgx/v5"
)

func insertTransactionQuery(m models.Transaction) sqlizer {
	return psql.Insert("transactions").
		Columns("transaction_id", "amount", "reason", "kind", "currency_code", "author_id", "created_at").
		Values(m.TransactionID, sq.Expr("?::numeric", m.Amount), m.Reason, m.Kind, m.CurrencyCode, m.AuthorID, m.CreatedAt)
}

func (r *Persistence) InsertTransaction(ctx context.Context, txn models.Transaction) error {
	if _, err := r.exec(ctx, insertTransactionQuery(txn)); err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (r *Persistence) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	query, args, err := psql.Select("transaction_id", "amount::text", "reason", "kind", "currency_code", "author_id", "created_at").
		From("transactions").
		OrderBy("created_at ASC", "transaction_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		var m models.Transaction
		err := row.Scan(&m.TransactionID, &m.Amount, &m.Reason, &m.Kind, &m.CurrencyCode, &m.AuthorID, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction rows: %w", err)
	}
	return txns, nil
}
