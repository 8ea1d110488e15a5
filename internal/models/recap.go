package models

import "time"

// Recap is the persisted recap row. Comments are loaded from their own table
// (or embedded, depending on the backend).
type Recap struct {
	RecapID     string    `json:"recap_id" db:"recap_id"`
	Title       string    `json:"title" db:"title"`
	Kind        string    `json:"kind" db:"kind"`
	Description string    `json:"description" db:"description"`
	MediaURLs   []string  `json:"media_urls" db:"media_urls"`
	Comments    []Comment `json:"comments,omitempty" db:"-"`
	AuditFields
}

// Comment is a persisted recap comment.
type Comment struct {
	CommentID string    `json:"comment_id" db:"comment_id"`
	RecapID   string    `json:"recap_id,omitempty" db:"recap_id"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
