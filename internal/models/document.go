package models

// Document is the persisted document metadata row.
type Document struct {
	DocumentID string `json:"document_id" db:"document_id"`
	Name       string `json:"name" db:"name"`
	Category   string `json:"category" db:"category"`
	Size       string `json:"size" db:"size"`
	AuditFields
}
