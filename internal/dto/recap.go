package dto

import "github.com/SscSPs/ops_tracker/internal/core/domain"

// CreateRecapRequest defines the data needed to file a recap.
type CreateRecapRequest struct {
	Title       string           `json:"title" binding:"required"`
	Kind        domain.RecapKind `json:"kind" binding:"required,oneof=DAILY WEEKLY"`
	Description string           `json:"description"`
	MediaURLs   []string         `json:"mediaURLs" binding:"omitempty,dive,url"`
}

// CreateCommentRequest defines the data needed to comment on a recap.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListRecapsResponse wraps the visible recaps, newest first.
type ListRecapsResponse struct {
	Recaps    []domain.Recap `json:"recaps"`
	NextToken string         `json:"nextToken,omitempty"`
}
