package domain

import "time"

// EntityKind names one of the collections held by the entity store.
type EntityKind string

const (
	KindRecap       EntityKind = "RECAP"
	KindEvent       EntityKind = "EVENT"
	KindDocument    EntityKind = "DOCUMENT"
	KindTransaction EntityKind = "TRANSACTION"
)

// Authorship holds the author and creation instant stamped on every entity.
// Both values come from the context controller, never from the caller.
type Authorship struct {
	AuthorID  string    `json:"authorID"`  // FK -> users.user_id
	CreatedAt time.Time `json:"createdAt"` // UTC
}

// AppData groups the four entity collections exposed to the display boundary.
type AppData struct {
	Recaps       []Recap         `json:"recaps"`
	Events       []CalendarEvent `json:"events"`
	Documents    []Document      `json:"documents"`
	Transactions []Transaction   `json:"transactions"`
}
