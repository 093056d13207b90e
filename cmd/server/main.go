package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mattkeefer/sports-odds-backend/internal/cache"
	"github.com/mattkeefer/sports-odds-backend/internal/config"
	httpHandler "github.com/mattkeefer/sports-odds-backend/internal/handler/http"
	"github.com/mattkeefer/sports-odds-backend/internal/messaging"
	"github.com/mattkeefer/sports-odds-backend/internal/metrics"
	"github.com/mattkeefer/sports-odds-backend/internal/provider"
	"github.com/mattkeefer/sports-odds-backend/internal/service"
	"github.com/mattkeefer/sports-odds-backend/internal/sources"
	"github.com/mattkeefer/sports-odds-backend/pkg/evaluator"
)

func main() {
	// Pick up SPORTS_ODDS_PROVIDER_API_KEY and friends from .env when present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting sports-odds-backend")

	if cfg.Provider.APIKey == "" {
		logger.Warn().Msg("provider API key is not set, upstream requests will be rejected")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Build the source registry
	registry, err := sources.New(cfg.Sources)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid source registry")
	}
	logger.Info().Int("count", registry.Len()).Str("sources", registry.Joined()).Msg("source registry loaded")

	// Metrics
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(promRegistry)

	// Create Redis cache
	var snapshotCache service.SnapshotCache
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache = cache.NewRedisCache(
			cache.RedisCacheConfig{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
				TTL:      cfg.Redis.TTL,
				Prefix:   cfg.Redis.Prefix,
			},
			logger,
		)
		defer redisCache.Close()

		// Test Redis connection
		if err := redisCache.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		snapshotCache = redisCache
		logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("connected to Redis")
	} else {
		logger.Info().Msg("snapshot cache disabled")
	}

	// Create Kafka publisher
	var publisher service.OpportunityPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher := messaging.NewKafkaPublisher(
			messaging.KafkaPublisherConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.Topic,
			},
			logger,
		)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Kafka publisher initialized")
	}

	providerClient := provider.NewClient(
		provider.Config{
			BaseURL:    cfg.Provider.BaseURL,
			APIKey:     cfg.Provider.APIKey,
			Timeout:    cfg.Provider.Timeout,
			MaxRetries: cfg.Provider.MaxRetries,
			RetryDelay: cfg.Provider.RetryDelay,
		},
		logger,
	)

	eval := evaluator.NewEvaluator(registry, logger)

	// Create opportunity service layer
	opportunityService := service.NewOpportunityService(
		providerClient,
		snapshotCache,
		eval,
		publisher,
		registry,
		m,
		logger,
	)
	logger.Info().Msg("opportunity service initialized")

	// Initialize HTTP handler
	opportunityHandler := httpHandler.NewOpportunityHandler(
		opportunityService,
		httpHandler.Defaults{
			League: cfg.Provider.DefaultLeague,
			Limit:  cfg.Provider.DefaultLimit,
			Params: cfg.Evaluation.ToEvaluationParams(),
		},
		logger,
	)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpHandler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           300,
	}))

	// Health and monitoring endpoints
	r.Get("/health", healthHandler)
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyHandler(w, r, redisCache)
	})
	r.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))

	// Register API routes
	opportunityHandler.RegisterRoutes(r)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set format
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "sports-odds-backend").Logger()
}

// healthHandler returns 200 if service is running
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler returns 200 if service is ready to accept traffic
func readyHandler(w http.ResponseWriter, r *http.Request, redisCache *cache.RedisCache) {
	// Redis is optional
	if redisCache == nil {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
		return
	}

	if err := redisCache.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Redis unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
