package mapping

import (
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:  d.DocumentID,
		Name:        d.Name,
		Category:    string(d.Category),
		Size:        d.Size,
		AuditFields: ToModelAuditFields(d.Authorship),
	}
}

// ToDomainDocument coerces a model Document. Unknown categories become OTHER.
func ToDomainDocument(m models.Document) (domain.Document, error) {
	if err := requireID("document", m.DocumentID); err != nil {
		return domain.Document{}, err
	}
	category := domain.DocumentCategory(m.Category)
	if !category.IsValid() {
		category = domain.DocumentOther
	}
	return domain.Document{
		DocumentID: m.DocumentID,
		Name:       m.Name,
		Category:   category,
		Size:       m.Size,
		Authorship: ToDomainAuthorship(m.AuditFields),
	}, nil
}
