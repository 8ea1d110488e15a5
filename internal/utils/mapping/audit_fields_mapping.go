package mapping

import (
	"fmt"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/models"
)

// ToModelAuditFields converts domain authorship to model audit fields
func ToModelAuditFields(d domain.Authorship) models.AuditFields {
	return models.AuditFields{AuthorID: d.AuthorID, CreatedAt: d.CreatedAt.UTC()}
}

// ToDomainAuthorship converts model audit fields to domain authorship
func ToDomainAuthorship(m models.AuditFields) domain.Authorship {
	return domain.Authorship{AuthorID: m.AuthorID, CreatedAt: m.CreatedAt.UTC()}
}

func requireID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s record without id", apperrors.ErrValidation, kind)
	}
	return nil
}
