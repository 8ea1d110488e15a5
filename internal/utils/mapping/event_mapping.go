package mapping

import (
	"fmt"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/models"
)

// ToModelEvent converts a domain CalendarEvent to a model Event
func ToModelEvent(d domain.CalendarEvent) models.Event {
	return models.Event{
		EventID:     d.EventID,
		Title:       d.Title,
		Description: d.Description,
		EventDate:   d.EventDate.UTC(),
		AuditFields: ToModelAuditFields(d.Authorship),
	}
}

// ToDomainEvent coerces a model Event into a domain CalendarEvent
func ToDomainEvent(m models.Event) (domain.CalendarEvent, error) {
	if err := requireID("event", m.EventID); err != nil {
		return domain.CalendarEvent{}, err
	}
	if m.EventDate.IsZero() {
		return domain.CalendarEvent{}, fmt.Errorf("%w: event %s has no date", apperrors.ErrValidation, m.EventID)
	}
	return domain.CalendarEvent{
		EventID:     m.EventID,
		Title:       m.Title,
		Description: m.Description,
		EventDate:   m.EventDate.UTC(),
		Authorship:  ToDomainAuthorship(m.AuditFields),
	}, nil
}
