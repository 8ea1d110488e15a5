package intent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	defaultRecapTitle   = "Voice report"
	defaultEventTitle   = "Voice appointment"
	defaultExpenseTitle = "Voice expense"
)

// rawIntent is the loosely typed shape the classifier returns.
type rawIntent struct {
	Category    string          `json:"category" validate:"required"`
	Title       string          `json:"title" validate:"max=200"`
	Description string          `json:"description" validate:"max=4000"`
	Type        string          `json:"type" validate:"omitempty,oneof=DAILY WEEKLY"`
	Date        string          `json:"date"`
	Amount      json.RawMessage `json:"amount"`
	Currency    string          `json:"currency" validate:"omitempty,len=3,alpha"`
	Reason      string          `json:"reason" validate:"max=500"`
}

// Coercer turns classifier output into typed intents, filling the defaults
// used by the voice assistant.
type Coercer struct {
	BaseCurrency domain.CurrencyCode
	Now          func() time.Time
	validate     *validator.Validate
}

// NewCoercer returns a Coercer using time.Now.
func NewCoercer(base domain.CurrencyCode) *Coercer {
	return &Coercer{BaseCurrency: base, Now: time.Now, validate: validator.New()}
}

// Coerce parses text as a JSON object, an array of objects, or an object with
// an "intents" array. Items with an unknown category or invalid fields are
// kept in place as domain.UnsupportedIntent so the caller can report them. If
// no item is usable the result is apperrors.ErrUnsupportedAction.
func (c *Coercer) Coerce(text, utterance string) ([]domain.Intent, error) {
	items, err := decodeItems(text)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable classifier output: %v", apperrors.ErrUnsupportedAction, err)
	}

	intents := make([]domain.Intent, 0, len(items))
	var rejected []string
	for _, item := range items {
		item.Category = strings.ToUpper(strings.TrimSpace(item.Category))
		in, err := c.coerceOne(item, utterance)
		if err != nil {
			rejected = append(rejected, err.Error())
			intents = append(intents, domain.UnsupportedIntent{Category: item.Category, Reason: err.Error()})
			continue
		}
		intents = append(intents, in)
	}
	if len(rejected) > 0 && len(rejected) == len(intents) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedAction, strings.Join(rejected, "; "))
	}
	return intents, nil
}

func (c *Coercer) coerceOne(item rawIntent, utterance string) (domain.Intent, error) {
	item.Category = strings.ToUpper(strings.TrimSpace(item.Category))
	item.Type = strings.ToUpper(strings.TrimSpace(item.Type))
	item.Currency = strings.ToUpper(strings.TrimSpace(item.Currency))
	if err := c.validate.Struct(item); err != nil {
		return nil, fmt.Errorf("invalid %s intent: %v", item.Category, err)
	}

	switch domain.IntentKind(item.Category) {
	case domain.IntentCreateRecap:
		kind := domain.RecapKind(item.Type)
		if kind == "" {
			kind = domain.RecapDaily
		}
		return domain.CreateRecapIntent{
			Title:       orDefault(item.Title, defaultRecapTitle),
			Description: orDefault(item.Description, utterance),
			RecapKind:   kind,
		}, nil
	case domain.IntentCreateEvent:
		return domain.CreateEventIntent{
			Title:       orDefault(item.Title, defaultEventTitle),
			Description: orDefault(item.Description, utterance),
			EventDate:   c.parseDate(item.Date),
		}, nil
	case domain.IntentCreateExpense:
		currency := domain.CurrencyCode(item.Currency)
		if currency == "" {
			currency = c.BaseCurrency
		}
		return domain.CreateExpenseIntent{
			// zero when missing or unreadable, rejected later as an invalid amount
			Amount:       parseLooseAmount(item.Amount),
			CurrencyCode: currency,
			Reason:       orDefault(item.Reason, defaultExpenseTitle),
		}, nil
	default:
		return nil, fmt.Errorf("unrecognized category %q", item.Category)
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

func (c *Coercer) parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return c.Now().UTC()
}

func parseLooseAmount(raw json.RawMessage) decimal.Decimal {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func decodeItems(text string) ([]rawIntent, error) {
	text = stripFences(text)
	if text == "" {
		return nil, nil
	}
	data := []byte(text)
	switch {
	case bytes.HasPrefix(data, []byte("[")):
		var items []rawIntent
		err := json.Unmarshal(data, &items)
		return items, err
	case bytes.HasPrefix(data, []byte("{")):
		var wrapper struct {
			Intents []rawIntent `json:"intents"`
		}
		if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Intents != nil {
			return wrapper.Intents, nil
		}
		var item rawIntent
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, err
		}
		return []rawIntent{item}, nil
	default:
		return nil, fmt.Errorf("expected JSON object or array")
	}
}

// stripFences removes markdown code fences and any prose around the JSON body.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" || text[0] == '{' || text[0] == '[' {
		return text
	}
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "}]")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
