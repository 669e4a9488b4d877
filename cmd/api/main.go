package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glowmart/ai-product-search/backend/internal/adapters/cache"
	"github.com/glowmart/ai-product-search/backend/internal/adapters/database"
	"github.com/glowmart/ai-product-search/backend/internal/api/handlers"
	"github.com/glowmart/ai-product-search/backend/internal/api/routes"
	"github.com/glowmart/ai-product-search/backend/internal/application/services"
	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	"github.com/glowmart/ai-product-search/backend/internal/domain/providers"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/clients/openai"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/clients/postgres"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/clients/redis"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/observability"
	"github.com/glowmart/ai-product-search/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized successfully")

	// Redis is optional; the pipeline degrades to uncached operation
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Redis client, running without cache")
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Enhancement is optional; with no API key search runs unenhanced
	var completionProvider providers.CompletionProvider
	if cfg.OpenAI.APIKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY is not set; query enhancement disabled")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize OpenAI client, query enhancement disabled")
		} else {
			completionProvider = openaiClient
		}
	}

	// Initialize adapters
	productAdapter := database.NewProductAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)
	clickAdapter := database.NewAffiliateClickAdapter(pgClient)
	analyticsAdapter := database.NewSearchAnalyticsAdapter(pgClient)

	// Initialize services
	enhancer := services.NewQueryEnhancer(
		completionProvider,
		time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second,
	)
	recommendationService := services.NewRecommendationService(productAdapter, clickAdapter)
	searchService := services.NewSearchService(
		productAdapter,
		analyticsAdapter,
		enhancer,
		services.NewIntentClassifier(),
		recommendationService,
		cacheProvider,
		metrics,
		cfg.Search.CacheTTLSeconds,
	)
	detailService := services.NewProductDetailService(productAdapter, reviewAdapter, services.NewSentimentScorer())
	affiliateService := services.NewAffiliateService(clickAdapter)
	suggestionService := services.NewSuggestionService(productAdapter)

	defaultSearchLimit := entities.DefaultSearchLimit
	if cfg.Search.PremiumLimits {
		defaultSearchLimit = entities.PremiumSearchLimit
	}

	// Initialize handlers and router
	router := routes.NewRouter(
		handlers.NewSearchHandler(searchService, suggestionService, defaultSearchLimit),
		handlers.NewProductHandler(detailService),
		handlers.NewRecommendationHandler(recommendationService),
		handlers.NewAffiliateHandler(affiliateService),
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	logger.Info().Msg("Server stopped")
}
