package domain

import "time"

// CalendarEvent is a dated agenda entry. It is the only entity that can be removed.
type CalendarEvent struct {
	EventID     string    `json:"eventID"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"eventDate"`
	Authorship
}
