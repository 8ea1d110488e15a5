package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/ops_tracker/internal/adapters/intent"
	"github.com/SscSPs/ops_tracker/internal/amqp"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/ops_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/SscSPs/ops_tracker/internal/core/services"
	"github.com/SscSPs/ops_tracker/internal/handlers"
	"github.com/SscSPs/ops_tracker/internal/middleware"
	"github.com/SscSPs/ops_tracker/internal/platform/config"
	"github.com/SscSPs/ops_tracker/internal/repositories/bolt"
	"github.com/SscSPs/ops_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/ops_tracker/internal/repositories/memory"
	"github.com/SscSPs/ops_tracker/internal/utils"
	"github.com/SscSPs/ops_tracker/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Ops Tracker API
// @version 1.0
// @description Recaps, calendar, documents and multi-currency budgets shared between an owner and managers.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Closers deferred in run execute before exit.
	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	persistence, closePersistence, err := openPersistence(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize %s persistence: %w", cfg.Backend, err)
	}
	defer closePersistence()

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// Change notifications are optional.
			logger.Warn("AMQP unavailable, change notifications disabled", slog.String("error", err.Error()))
		} else {
			defer client.Close()
			persistence = amqp.NewPublishingWriter(persistence, client)
			logger.Info("Publishing changes to AMQP", slog.String("exchange", cfg.AMQPExchange))
		}
	}

	store := memory.NewEntityStore()
	ledger := services.NewLedgerService(store, cfg.Rates)
	options := []services.ControllerOption{
		services.WithPersistence(persistence),
		services.WithDisplayCurrency(cfg.DisplayCurrency),
	}

	if cfg.GeminiAPIKey != "" {
		classifier, err := intent.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.BaseCurrency, cfg.Rates.Codes())
		if err != nil {
			logger.Warn("Gemini unavailable, voice assistant disabled", slog.String("error", err.Error()))
		} else {
			defer classifier.Close()
			options = append(options, services.WithClassifier(classifier))
		}
	} else {
		logger.Info("GEMINI_API_KEY not set, voice assistant disabled")
	}

	controller := services.NewContextController(store, ledger, cfg.Rates, options...)
	if err := controller.Load(ctx); err != nil {
		return fmt.Errorf("failed to hydrate entity store: %w", err)
	}
	owner, err := controller.Bootstrap(ctx, domain.User{
		UserID:    cfg.OwnerID,
		Name:      cfg.OwnerName,
		AvatarURL: cfg.OwnerAvatarURL,
	})
	if err != nil {
		return fmt.Errorf("failed to bootstrap owner: %w", err)
	}
	logger.Info("Owner ready", slog.String("user_id", owner.UserID))

	serviceContainer := &portssvc.ServiceContainer{
		Controller:   controller,
		Ledger:       ledger,
		BaseCurrency: cfg.BaseCurrency,
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid rate limit %q: %w", cfg.RateLimit, err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}

	// Global middleware (cors, logging, recovery, rate limit, analytics)
	r.Use(
		cors.New(corsConfig),
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.RateLimit(rateLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("server failed to run: %w", err)
	}
	return nil
}

// openPersistence returns the configured persistence collaborator and a
// function releasing it.
func openPersistence(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.PersistenceFacade, func(), error) {
	switch cfg.Backend {
	case config.BackendPgSQL:
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, nil, err
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewPersistence(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
	case config.BackendBolt:
		store, err := bolt.Open(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Bolt store opened", slog.String("path", cfg.BoltPath))
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("Error closing bolt store", slog.String("error", err.Error()))
			}
		}, nil
	default:
		return memory.NewPersistence(), func() {}, nil
	}
}
