package models

import "time"

// Event is the persisted calendar row.
type Event struct {
	EventID     string    `json:"event_id" db:"event_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	EventDate   time.Time `json:"event_date" db:"event_date"`
	AuditFields
}
