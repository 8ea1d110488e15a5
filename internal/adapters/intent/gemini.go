package intent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/SscSPs/ops_tracker/internal/middleware"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const classifyPrompt = `You are the assistant of a small business operations app.
Analyse the utterance below, spoken by %s (%s), and answer with JSON only:
an array of zero or more objects, one per action requested.

1. Work report -> category: "RECAP"
   - title: short
   - description: rewritten professionally
   - type: "DAILY" or "WEEKLY"
2. Appointment or agenda item -> category: "EVENT"
   - title
   - date: ISO 8601 (YYYY-MM-DDTHH:mm:ss). Today is %s.
   - description
3. Money spent or purchase -> category: "EXPENSE"
   - amount: number
   - reason
   - currency: one of %s

Utterance: %q`

// Gemini implements IntentClassifier using Google Gemini.
type Gemini struct {
	client     *genai.Client
	model      *genai.GenerativeModel
	coercer    *Coercer
	currencies []domain.CurrencyCode
}

var _ portssvc.IntentClassifier = (*Gemini)(nil)

// NewGemini creates a classifier. currencies lists the codes the model may answer with.
func NewGemini(ctx context.Context, apiKey, modelName string, base domain.CurrencyCode, currencies []domain.CurrencyCode) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"

	return &Gemini{
		client:     client,
		model:      model,
		coercer:    NewCoercer(base),
		currencies: currencies,
	}, nil
}

// Classify asks the model for intents and coerces its answer.
func (g *Gemini) Classify(ctx context.Context, utterance string, actor domain.User) ([]domain.Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	codes := make([]string, len(g.currencies))
	for i, c := range g.currencies {
		codes[i] = string(c)
	}
	prompt := fmt.Sprintf(classifyPrompt, actor.Name, actor.Role,
		time.Now().UTC().Format("2006-01-02"), strings.Join(codes, ", "), utterance)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	intents, err := g.coercer.Coerce(responseText.String(), utterance)
	if err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Debug("Classified utterance", slog.Int("intents", len(intents)))
	return intents, nil
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}
