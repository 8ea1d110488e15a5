package pgsql

import (
	"testing"
	"time"

	"github.com/SscSPs/ops_tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertTransactionQuery(t *testing.T) {
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	query, args, err := insertTransactionQuery(models.Transaction{
		TransactionID: "t1",
		Amount:        "1000.01",
		Reason:        "fuel",
		Kind:          "EXPENSE",
		CurrencyCode:  "XOF",
		AuditFields:   models.AuditFields{AuthorID: "m1", CreatedAt: at},
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO transactions (transaction_id,amount,reason,kind,currency_code,author_id,created_at) VALUES ($1,$2::numeric,$3,$4,$5,$6,$7)",
		query)
	assert.Equal(t, []any{"t1", "1000.01", "fuel", "EXPENSE", "XOF", "m1", at}, args)
}

func TestDeleteEventQuery(t *testing.T) {
	query, args, err := deleteEventQuery("e1").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM events WHERE event_id = $1", query)
	assert.Equal(t, []any{"e1"}, args)
}

func TestInsertCommentQuery_UsesParentRecap(t *testing.T) {
	query, args, err := insertCommentQuery("r1", models.Comment{CommentID: "c1", RecapID: "ignored", AuthorID: "o", Content: "ok"}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO recap_comments")
	assert.Equal(t, "r1", args[1])
}

func TestInsertUserQuery(t *testing.T) {
	query, args, err := insertUserQuery(models.User{UserID: "u1", Name: "Awa", Role: "MANAGER"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO users (user_id,name,role,avatar_url,contact_handle,created_at) VALUES ($1,$2,$3,$4,$5,$6)",
		query)
	assert.Len(t, args, 6)
}
