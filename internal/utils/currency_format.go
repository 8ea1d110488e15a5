package utils

import (
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// currencyPrecision lists codes that are not displayed with two decimals.
var currencyPrecision = map[domain.CurrencyCode]int32{
	domain.XOF: 0,
}

// CurrencyPrecision returns the number of decimals shown for code.
func CurrencyPrecision(code domain.CurrencyCode) int32 {
	if p, ok := currencyPrecision[code]; ok {
		return p
	}
	return 2
}

// FormatWithCurrencyPrecision formats an amount with the display precision of a currency.
// Example: 12.3456 EUR returns "12.35", 655.96 XOF returns "656"
func FormatWithCurrencyPrecision(amount decimal.Decimal, code domain.CurrencyCode) string {
	return amount.StringFixed(CurrencyPrecision(code))
}

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
