package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/dto"
)

// ApplyUtterance asks the classifier for intents and applies them in order
// through the same paths as direct writes. A failing intent does not stop the
// ones after it.
func (c *ContextController) ApplyUtterance(ctx context.Context, text string) ([]domain.IntentOutcome, error) {
	if c.classifier == nil {
		return nil, fmt.Errorf("%w: no intent classifier configured", apperrors.ErrUnsupportedAction)
	}

	c.mu.Lock()
	actor, err := c.actingUser()
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	intents, err := c.classifier.Classify(ctx, text, *actor)
	if err != nil {
		c.LogError(ctx, err, "Failed to classify utterance", slog.String("actor_id", actor.UserID))
		return nil, err
	}

	outcomes := make([]domain.IntentOutcome, 0, len(intents))
	for _, intent := range intents {
		c.mu.Lock()
		outcome := c.applyIntent(ctx, intent)
		c.mu.Unlock()
		outcomes = append(outcomes, outcome)
	}
	c.LogInfo(ctx, "Utterance applied", slog.String("actor_id", actor.UserID), slog.Int("intents", len(intents)))
	return outcomes, nil
}

func (c *ContextController) actingUser() (*domain.User, error) {
	id, err := c.actorID()
	if err != nil {
		return nil, err
	}
	return c.store.FindUserByID(id)
}

// applyIntent must be called with mu held.
func (c *ContextController) applyIntent(ctx context.Context, intent domain.Intent) domain.IntentOutcome {
	outcome := domain.IntentOutcome{Kind: intent.Kind()}
	var err error
	switch in := intent.(type) {
	case domain.CreateRecapIntent:
		outcome.Recap, err = c.createRecap(ctx, dto.CreateRecapRequest{
			Title:       in.Title,
			Kind:        in.RecapKind,
			Description: in.Description,
		})
	case domain.CreateEventIntent:
		outcome.Event, err = c.createEvent(ctx, dto.CreateEventRequest{
			Title:       in.Title,
			Description: in.Description,
			EventDate:   in.EventDate,
		})
	case domain.CreateExpenseIntent:
		outcome.Transaction, err = c.recordExpense(ctx, in.Amount, in.CurrencyCode, in.Reason)
	case domain.UnsupportedIntent:
		err = fmt.Errorf("%w: %s", apperrors.ErrUnsupportedAction, in.Reason)
	default:
		err = fmt.Errorf("%w: %s", apperrors.ErrUnsupportedAction, intent.Kind())
	}
	if err != nil {
		c.LogWarn(ctx, "Intent rejected", slog.String("kind", string(intent.Kind())), slog.String("error", err.Error()))
		outcome.Error = err.Error()
	}
	return outcome
}
