package accounting

import (
	"testing"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRateTable(t *testing.T) {
	table, err := ParseRateTable(" eur=1, USD=1.09 ,XOF=655.96,")
	require.NoError(t, err)
	assert.Equal(t, []domain.CurrencyCode{domain.EUR, domain.USD, domain.XOF}, table.Codes())

	rate, err := table.Rate(domain.USD)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("1.09")))

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"missing separator", "EUR1"},
		{"not a number", "EUR=abc"},
		{"zero rate", "EUR=1,USD=0"},
		{"negative rate", "EUR=-1"},
		{"duplicate", "EUR=1,eur=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRateTable(tt.raw)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestConvert_UnsupportedCurrency(t *testing.T) {
	table := MustDefaultRateTable()

	_, err := table.Convert(decimal.NewFromInt(1), "GBP", domain.EUR)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = table.Convert(decimal.NewFromInt(1), domain.EUR, "GBP")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency)
}

func TestConvert_KnownValues(t *testing.T) {
	table := MustDefaultRateTable()

	got, err := table.Convert(decimal.NewFromInt(100), domain.EUR, domain.XOF)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("65596")), "got %s", got)

	got, err = table.Convert(decimal.RequireFromString("150.50"), domain.EUR, domain.EUR)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("150.50")))

	got, err = table.Convert(decimal.NewFromInt(109), domain.USD, domain.EUR)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(100)), "got %s", got)
}

func TestConvert_RoundTripIsApproximatelyIdentity(t *testing.T) {
	table := MustDefaultRateTable()
	epsilon := decimal.New(1, -9)
	amounts := []string{"0.01", "1", "150.50", "1000.00", "987654.321"}

	for _, a := range table.Codes() {
		for _, b := range table.Codes() {
			for _, raw := range amounts {
				x := decimal.RequireFromString(raw)
				there, err := table.Convert(x, a, b)
				require.NoError(t, err)
				back, err := table.Convert(there, b, a)
				require.NoError(t, err)
				assert.True(t, back.Sub(x).Abs().LessThanOrEqual(epsilon),
					"%s %s -> %s -> %s drifted to %s", raw, a, b, a, back)
			}
		}
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount(" 1000.01 ")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("1000.01")))

	for _, raw := range []string{"", "abc", "0", "-5", "0.00", "0.00001", "100.123456"} {
		_, err := ParseAmount(raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount, "input %q", raw)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "input %q", raw)
	}
}

func TestParseAmount_ScaleLimit(t *testing.T) {
	amount, err := ParseAmount("100.1234")
	require.NoError(t, err)
	assert.Equal(t, "100.1234", amount.String())

	// trailing zeros beyond the limit do not add precision
	amount, err = ParseAmount("2.500000")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("2.5")))

	assert.NoError(t, ValidateAmount(decimal.RequireFromString("0.0001")))
	assert.ErrorIs(t, ValidateAmount(decimal.New(1, -5)), apperrors.ErrInvalidAmount)
}
