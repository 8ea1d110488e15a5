package dto

import "github.com/SscSPs/ops_tracker/internal/core/domain"

// CreateDocumentRequest registers the metadata of an uploaded file.
type CreateDocumentRequest struct {
	Name      string                  `json:"name" binding:"required"`
	Category  domain.DocumentCategory `json:"category" binding:"required,oneof=CONTRACT INVOICE QUOTE OTHER"`
	SizeBytes int64                   `json:"sizeBytes" binding:"gte=0"`
}

// ListDocumentsParams defines query parameters for listing documents.
type ListDocumentsParams struct {
	Query string `form:"q"`
}

// ListDocumentsResponse wraps visible documents, newest first.
type ListDocumentsResponse struct {
	Documents []domain.Document `json:"documents"`
}
