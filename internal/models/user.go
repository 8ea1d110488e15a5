package models

import "time"

// User is the persisted roster row.
type User struct {
	UserID        string    `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Role          string    `json:"role" db:"role"`
	AvatarURL     string    `json:"avatar_url" db:"avatar_url"`
	ContactHandle string    `json:"contact_handle,omitempty" db:"contact_handle"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
