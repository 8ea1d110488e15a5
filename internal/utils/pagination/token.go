package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded token from the creation time and id of
// the last item served.
func EncodeToken(createdAt time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", createdAt.UTC().Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into creation time and id.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (base64 decode): %v", apperrors.ErrValidation, err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (split)", apperrors.ErrValidation)
	}
	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (created_at parse): %v", apperrors.ErrValidation, err)
	}
	return createdAt, parts[1], nil
}

// Page returns at most limit items following the item the token points at,
// plus the token of the next page ("" on the last page). items must already
// be in display order. A limit of zero or less disables paging.
func Page[T any](items []T, key func(T) (time.Time, string), limit int, token string) ([]T, string, error) {
	start := 0
	if token != "" {
		createdAt, id, err := DecodeToken(token)
		if err != nil {
			return nil, "", err
		}
		start = -1
		for i, item := range items {
			itemAt, itemID := key(item)
			if itemID == id && itemAt.Equal(createdAt) {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, "", fmt.Errorf("%w: pagination token does not match any item", apperrors.ErrValidation)
		}
	}

	rest := items[start:]
	if limit <= 0 || len(rest) <= limit {
		return rest, "", nil
	}
	page := rest[:limit]
	lastAt, lastID := key(page[len(page)-1])
	return page, EncodeToken(lastAt, lastID), nil
}
