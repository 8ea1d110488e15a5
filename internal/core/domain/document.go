package domain

import "fmt"

// DocumentCategory classifies an uploaded file.
type DocumentCategory string

const (
	DocumentContract DocumentCategory = "CONTRACT"
	DocumentInvoice  DocumentCategory = "INVOICE"
	DocumentQuote    DocumentCategory = "QUOTE"
	DocumentOther    DocumentCategory = "OTHER"
)

// IsValid reports whether c is a known category.
func (c DocumentCategory) IsValid() bool {
	switch c {
	case DocumentContract, DocumentInvoice, DocumentQuote, DocumentOther:
		return true
	}
	return false
}

// Document is the metadata of a file kept by an external file store.
type Document struct {
	DocumentID string           `json:"documentID"`
	Name       string           `json:"name"`
	Category   DocumentCategory `json:"category"`
	Size       string           `json:"size"` // e.g. "2.40 MB"
	Authorship
}

// SizeDescriptor renders a byte count the way documents display it.
func SizeDescriptor(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)
}
