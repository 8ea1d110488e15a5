package services

import (
	"context"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
)

// IntentClassifier turns free text into zero or more typed intents. Output is
// already coerced into the closed intent variants.
type IntentClassifier interface {
	Classify(ctx context.Context, utterance string, actor domain.User) ([]domain.Intent, error)
}
