package dto

import (
	"time"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
)

// CreateEventRequest defines the data needed to schedule an event.
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"eventDate" binding:"required"`
}

// ListEventsResponse wraps visible events, ordered by event date.
type ListEventsResponse struct {
	Events []domain.CalendarEvent `json:"events"`
}
