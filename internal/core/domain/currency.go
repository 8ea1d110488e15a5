package domain

import "strings"

// CurrencyCode is an ISO-4217 style code. The set of supported codes is the key set
// of the configured rate table.
type CurrencyCode string

const (
	EUR CurrencyCode = "EUR"
	USD CurrencyCode = "USD"
	XOF CurrencyCode = "XOF"
)

// NormalizeCurrencyCode upper-cases and trims a caller supplied code.
func NormalizeCurrencyCode(code string) CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(code)))
}

// Currency describes a supported currency for display.
type Currency struct {
	CurrencyCode CurrencyCode `json:"currencyCode"`
	Symbol       string       `json:"symbol"`
	Name         string       `json:"name"`
}

// KnownCurrencies holds display metadata for the default codes.
var KnownCurrencies = map[CurrencyCode]Currency{
	EUR: {CurrencyCode: EUR, Symbol: "€", Name: "Euro"},
	USD: {CurrencyCode: USD, Symbol: "$", Name: "US Dollar"},
	XOF: {CurrencyCode: XOF, Symbol: "CFA", Name: "CFA Franc"},
}
