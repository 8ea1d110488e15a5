package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/utils/accounting"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// PersistenceBackend selects the persistence collaborator.
type PersistenceBackend string

const (
	BackendMemory PersistenceBackend = "memory"
	BackendPgSQL  PersistenceBackend = "pgsql"
	BackendBolt   PersistenceBackend = "bolt"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level
	JWTSecret    string

	Backend       PersistenceBackend
	DatabaseURL   string
	EnableDBCheck bool
	BoltPath      string

	BaseCurrency    domain.CurrencyCode
	DisplayCurrency domain.CurrencyCode
	Rates           *accounting.RateTable

	OwnerID        string
	OwnerName      string
	OwnerAvatarURL string

	GeminiAPIKey string
	GeminiModel  string

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	RateLimit          string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("PERSISTENCE_BACKEND", string(BackendMemory))
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("BOLT_PATH", "ops_tracker.db")
	v.SetDefault("BASE_CURRENCY", string(domain.EUR))
	v.SetDefault("CURRENCY_RATES", accounting.DefaultRates)
	v.SetDefault("DISPLAY_CURRENCY", string(domain.EUR))
	v.SetDefault("OWNER_ID", "owner")
	v.SetDefault("OWNER_NAME", "Patron")
	v.SetDefault("OWNER_AVATAR_URL", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "ops_tracker")
	v.SetDefault("AMQP_QUEUE", "ops_tracker.changes")
	v.SetDefault("RATE_LIMIT", "120-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")

	v.AutomaticEnv()

	cfg := &Config{
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		DatabaseURL:   v.GetString("PGSQL_URL"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		BoltPath:      v.GetString("BOLT_PATH"),
		OwnerID:       v.GetString("OWNER_ID"),
		OwnerName:     v.GetString("OWNER_NAME"),
		GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		AMQPURL:       v.GetString("AMQP_URL"),
		AMQPExchange:  v.GetString("AMQP_EXCHANGE"),
		AMQPQueue:     v.GetString("AMQP_QUEUE"),
		RateLimit:     v.GetString("RATE_LIMIT"),
		PosthogAPIKey: v.GetString("POSTHOG_API_KEY"),
	}
	cfg.OwnerAvatarURL = v.GetString("OWNER_AVATAR_URL")

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", v.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.Backend = PersistenceBackend(strings.ToLower(v.GetString("PERSISTENCE_BACKEND")))
	switch cfg.Backend {
	case BackendMemory, BackendBolt:
	case BackendPgSQL:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PERSISTENCE_BACKEND is %s but PGSQL_URL is not set", BackendPgSQL)
		}
	default:
		log.Printf("Warning: Invalid value for PERSISTENCE_BACKEND ('%s'). Defaulting to %s.\n", cfg.Backend, BackendMemory)
		cfg.Backend = BackendMemory
	}

	// conversion must be defined for every supported code, so a bad table is fatal
	rates, err := accounting.ParseRateTable(v.GetString("CURRENCY_RATES"))
	if err != nil {
		return nil, fmt.Errorf("invalid CURRENCY_RATES: %w", err)
	}
	cfg.Rates = rates

	cfg.BaseCurrency = domain.NormalizeCurrencyCode(v.GetString("BASE_CURRENCY"))
	if !rates.Supports(cfg.BaseCurrency) {
		return nil, fmt.Errorf("BASE_CURRENCY %q is not in CURRENCY_RATES", cfg.BaseCurrency)
	}
	cfg.DisplayCurrency = domain.NormalizeCurrencyCode(v.GetString("DISPLAY_CURRENCY"))
	if !rates.Supports(cfg.DisplayCurrency) {
		log.Printf("Warning: DISPLAY_CURRENCY ('%s') is not in CURRENCY_RATES. Defaulting to %s.\n", cfg.DisplayCurrency, cfg.BaseCurrency)
		cfg.DisplayCurrency = cfg.BaseCurrency
	}

	if cfg.OwnerID == "" {
		cfg.OwnerID = "owner"
		log.Printf("Warning: OWNER_ID not set. Defaulting to %s.\n", cfg.OwnerID)
	}
	if cfg.OwnerName == "" {
		cfg.OwnerName = "Patron"
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Voice assistant will not function.")
	}

	return cfg, nil
}
