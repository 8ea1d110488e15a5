package config

import (
	"log/slog"
	"testing"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, domain.EUR, cfg.BaseCurrency)
	assert.Equal(t, domain.EUR, cfg.DisplayCurrency)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, []domain.CurrencyCode{domain.EUR, domain.USD, domain.XOF}, cfg.Rates.Codes())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PERSISTENCE_BACKEND", "BOLT")
	t.Setenv("CURRENCY_RATES", "EUR=1,GBP=0.85")
	t.Setenv("DISPLAY_CURRENCY", "gbp")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, BackendBolt, cfg.Backend)
	assert.Equal(t, domain.CurrencyCode("GBP"), cfg.DisplayCurrency)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoad_FallbacksAndErrors(t *testing.T) {
	t.Run("unknown backend falls back to memory", func(t *testing.T) {
		t.Setenv("PERSISTENCE_BACKEND", "mongo")
		cfg, err := load(viper.New())
		require.NoError(t, err)
		assert.Equal(t, BackendMemory, cfg.Backend)
	})
	t.Run("unsupported display currency falls back to base", func(t *testing.T) {
		t.Setenv("DISPLAY_CURRENCY", "JPY")
		cfg, err := load(viper.New())
		require.NoError(t, err)
		assert.Equal(t, domain.EUR, cfg.DisplayCurrency)
	})
	t.Run("malformed rate table", func(t *testing.T) {
		t.Setenv("CURRENCY_RATES", "EUR=1,USD=zero")
		_, err := load(viper.New())
		assert.Error(t, err)
	})
	t.Run("base currency outside table", func(t *testing.T) {
		t.Setenv("BASE_CURRENCY", "JPY")
		_, err := load(viper.New())
		assert.Error(t, err)
	})
	t.Run("pgsql without url", func(t *testing.T) {
		t.Setenv("PERSISTENCE_BACKEND", "pgsql")
		_, err := load(viper.New())
		assert.Error(t, err)
	})
}
