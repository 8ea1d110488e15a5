package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/ops_tracker/internal/models"
)

func insertUserQuery(u models.User) sqlizer {
	return psql.Insert("users").
		Columns("user_id", "name", "role", "avatar_url", "contact_handle", "created_at").
		Values(u.UserID, u.Name, u.Role, u.AvatarURL, u.ContactHandle, u.CreatedAt)
}

func (r *Persistence) InsertUser(ctx context.Context, user models.User) error {
	if _, err := r.exec(ctx, insertUserQuery(user)); err != nil {
		return fmt.Errorf("failed to insert user %s: %w", user.UserID, err)
	}
	return nil
}

func (r *Persistence) ListUsers(ctx context.Context) ([]models.User, error) {
	query, args, err := psql.Select("user_id", "name", "role", "avatar_url", "contact_handle", "created_at").
		From("users").
		OrderBy("created_at ASC", "user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UserID, &u.Name, &u.Role, &u.AvatarURL, &u.ContactHandle, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}
