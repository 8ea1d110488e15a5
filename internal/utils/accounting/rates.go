package accounting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultRates is the static table used when no CURRENCY_RATES is configured.
// EUR is the reference currency.
const DefaultRates = "EUR=1,USD=1.09,XOF=655.96"

// divisionPrecision is the number of decimal places kept when dividing by a rate.
const divisionPrecision = 16

// RateTable maps each supported currency to its rate against the reference
// currency. Its key set is the closed set of supported currencies.
type RateTable struct {
	rates map[domain.CurrencyCode]decimal.Decimal
}

// NewRateTable builds a table from the given rates. Every rate must be positive.
func NewRateTable(rates map[domain.CurrencyCode]decimal.Decimal) (*RateTable, error) {
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: rate table is empty", apperrors.ErrValidation)
	}
	t := &RateTable{rates: make(map[domain.CurrencyCode]decimal.Decimal, len(rates))}
	for code, rate := range rates {
		if code == "" {
			return nil, fmt.Errorf("%w: empty currency code in rate table", apperrors.ErrValidation)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("%w: rate for %s must be positive, got %s", apperrors.ErrValidation, code, rate)
		}
		t.rates[code] = rate
	}
	return t, nil
}

// ParseRateTable parses "CODE=rate,CODE=rate" into a RateTable.
func ParseRateTable(raw string) (*RateTable, error) {
	rates := make(map[domain.CurrencyCode]decimal.Decimal)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: malformed rate entry %q", apperrors.ErrValidation, pair)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: malformed rate for %s: %v", apperrors.ErrValidation, code, err)
		}
		cc := domain.NormalizeCurrencyCode(code)
		if _, dup := rates[cc]; dup {
			return nil, fmt.Errorf("%w: currency %s listed twice", apperrors.ErrValidation, cc)
		}
		rates[cc] = rate
	}
	return NewRateTable(rates)
}

// MustDefaultRateTable returns the table for DefaultRates.
func MustDefaultRateTable() *RateTable {
	t, err := ParseRateTable(DefaultRates)
	if err != nil {
		panic(err)
	}
	return t
}

// Rate returns the rate of code against the reference currency.
func (t *RateTable) Rate(code domain.CurrencyCode) (decimal.Decimal, error) {
	rate, ok := t.rates[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedCurrency, code)
	}
	return rate, nil
}

// Supports reports whether code is in the closed set.
func (t *RateTable) Supports(code domain.CurrencyCode) bool {
	_, ok := t.rates[code]
	return ok
}

// Codes returns the supported codes in alphabetical order.
func (t *RateTable) Codes() []domain.CurrencyCode {
	codes := make([]domain.CurrencyCode, 0, len(t.rates))
	for code := range t.rates {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Convert returns amount / rate(from) * rate(to).
func (t *RateTable) Convert(amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	fromRate, err := t.Rate(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := t.Rate(to)
	if err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return amount, nil
	}
	return amount.DivRound(fromRate, divisionPrecision).Mul(toRate), nil
}
