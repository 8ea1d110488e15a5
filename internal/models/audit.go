package models

import "time"

// AuditFields holds authorship columns shared by every authored record.
type AuditFields struct {
	AuthorID  string    `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
