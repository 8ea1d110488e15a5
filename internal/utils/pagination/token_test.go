package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id string
	at time.Time
}

func itemKey(i item) (time.Time, string) { return i.at, i.id }

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, "txn-1")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt), "Created at time should match after decode")
	assert.Equal(t, "txn-1", decodedID)
}

func raw(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

func TestDecodeToken_Invalid(t *testing.T) {
	for _, token := range []string{"%%%", raw("no-separator"), raw("not-a-time|id"), raw("2023-05-15T00:00:00Z|")} {
		_, _, err := DecodeToken(token)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "token %q", token)
	}
}

func TestPage(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []item{
		{"e", base.Add(5 * time.Minute)},
		{"d", base.Add(4 * time.Minute)},
		{"c", base.Add(3 * time.Minute)},
		{"b", base.Add(2 * time.Minute)},
		{"a", base.Add(1 * time.Minute)},
	}

	page, next, err := Page(items, itemKey, 2, "")
	require.NoError(t, err)
	assert.Equal(t, []item{items[0], items[1]}, page)
	require.NotEmpty(t, next)

	page, next, err = Page(items, itemKey, 2, next)
	require.NoError(t, err)
	assert.Equal(t, []item{items[2], items[3]}, page)

	page, next, err = Page(items, itemKey, 2, next)
	require.NoError(t, err)
	assert.Equal(t, []item{items[4]}, page)
	assert.Empty(t, next)

	all, next, err := Page(items, itemKey, 0, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Empty(t, next)

	_, _, err = Page(items, itemKey, 2, EncodeToken(base, "gone"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
