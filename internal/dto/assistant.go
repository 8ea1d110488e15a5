package dto

import "github.com/SscSPs/ops_tracker/internal/core/domain"

// UtteranceRequest carries transcribed voice input.
type UtteranceRequest struct {
	Text string `json:"text" binding:"required"`
}

// UtteranceResponse reports the outcome of every extracted intent.
type UtteranceResponse struct {
	Outcomes []domain.IntentOutcome `json:"outcomes"`
}
