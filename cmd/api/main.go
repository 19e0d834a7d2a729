package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/zatekoja/unitycure/backend/internal/adapters/cache"
	"github.com/zatekoja/unitycure/backend/internal/adapters/database"
	"github.com/zatekoja/unitycure/backend/internal/adapters/events"
	"github.com/zatekoja/unitycure/backend/internal/adapters/search"
	"github.com/zatekoja/unitycure/backend/internal/api/handlers"
	"github.com/zatekoja/unitycure/backend/internal/api/middleware"
	"github.com/zatekoja/unitycure/backend/internal/api/routes"
	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
	"github.com/zatekoja/unitycure/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
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
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Exactly one live store for the life of the process
	liveStore, err := store.NewInitializer(cfg, logger).Initialize(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("No data store available")
	}
	defer liveStore.Close()

	// Optional Redis: response cache, hospital read cache, rate limits, events
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, continuing without caching")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient.Client())
			eventBus = events.NewRedisEventBus(redisClient.Client(), logger)
			defer eventBus.Close()
			logger.Info().Msg("Redis client initialized")
		}
	}

	// Optional Typesense provider index
	var providerSearch repositories.ProviderSearchRepository
	if cfg.Typesense.Enabled {
		tsClient, err := typesense.NewClient(ctx, &cfg.Typesense, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Typesense unavailable, provider search uses the store")
		} else {
			adapter := search.NewTypesenseAdapter(tsClient)
			if err := adapter.InitSchema(ctx); err != nil {
				logger.Warn().Err(err).Msg("Failed to init Typesense schema")
			}
			providerSearch = adapter
		}
	}

	// Repositories
	repos := services.Repositories{
		Users:           database.NewUserAdapter(liveStore),
		Hospitals:       database.NewHospitalAdapter(liveStore),
		Appointments:    database.NewAppointmentAdapter(liveStore),
		SosReports:      database.NewSosReportAdapter(liveStore),
		Feedback:        database.NewFeedbackAdapter(liveStore),
		Providers:       database.NewProviderAdapter(liveStore),
		ContactMessages: database.NewContactMessageAdapter(liveStore),
		ChatbotMessages: database.NewChatbotMessageAdapter(liveStore),
	}
	hospitalRepo := repos.Hospitals
	if cacheProvider != nil {
		hospitalRepo = database.NewCachedHospitalAdapter(repos.Hospitals, cacheProvider, logger)
		logger.Info().Msg("Hospital repository wrapped with caching layer")
	}

	// Bring legacy data across, then fill whatever is still empty
	migrationService := services.NewMigrationService(repos, metrics, logger)
	migrationService.SetEventBus(eventBus)
	migrationService.SetImportLog(database.NewLegacyImportAdapter(liveStore))
	if _, err := migrationService.MigrateOnce(ctx, cfg.Storage.LegacyPath); err != nil {
		logger.Error().Err(err).Msg("Legacy migration failed, continuing with current data")
	}
	if _, err := services.NewSeedService(repos.Users, repos.Hospitals, logger).Seed(ctx); err != nil {
		logger.Error().Err(err).Msg("Seeding failed")
	}

	// Services
	feedbackService := services.NewFeedbackService(repos.Feedback, hospitalRepo, logger)
	feedbackService.SetEventBus(eventBus)
	providerService := services.NewProviderService(repos.Providers, providerSearch, logger)
	providerService.SetEventBus(eventBus)
	restoreService := services.NewRestoreService(repos, metrics, logger)
	restoreService.SetEventBus(eventBus)

	var cacheMiddleware *middleware.CacheMiddleware
	afterRestore := []func(context.Context) error{}
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, logger)
		afterRestore = append(afterRestore, cacheMiddleware.InvalidateCache)

		warmingService := services.NewCacheWarmingService(hospitalRepo, cacheProvider, logger)
		afterRestore = append(afterRestore, warmingService.InvalidateCache)
		warmingService.StartPeriodicWarming(ctx, 5*time.Minute)

		if eventBus != nil {
			invalidation := services.NewCacheInvalidationService(cacheProvider, eventBus, logger)
			if err := invalidation.Start(); err != nil {
				logger.Warn().Err(err).Msg("Failed to start cache invalidation service")
			} else {
				defer invalidation.Stop()
			}
		}
	}

	router := routes.NewRouter(routes.Handlers{
		Health:      handlers.NewHealthHandler(liveStore),
		Auth:        handlers.NewAuthHandler(services.NewUserService(repos.Users, logger)),
		Hospital:    handlers.NewHospitalHandler(services.NewHospitalService(hospitalRepo)),
		Appointment: handlers.NewAppointmentHandler(services.NewAppointmentService(repos.Appointments, logger)),
		Sos:         handlers.NewSosHandler(services.NewSosService(repos.SosReports, logger)),
		Feedback:    handlers.NewFeedbackHandler(feedbackService, cacheProvider),
		Provider:    handlers.NewProviderHandler(providerService),
		Contact:     handlers.NewContactHandler(services.NewContactService(repos.ContactMessages, logger)),
		Chatbot:     handlers.NewChatbotHandler(services.NewChatbotService(repos.ChatbotMessages)),
		Admin: handlers.NewAdminHandler(
			services.NewBackupService(cfg.Storage.BackupDir, logger),
			restoreService,
			database.NewLegacyExporter(liveStore),
			cfg.Storage.LegacyPath,
			cfg.Storage.BackupDir,
			logger,
			afterRestore...,
		),
	}, cacheMiddleware, metrics, cfg.Server.AllowedOrigins, logger)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Str("store", string(liveStore.Kind())).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	waitForShutdown(logger)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}
	logger.Info().Msg("Server stopped")
}

func waitForShutdown(logger zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info().Str("signal", sig.String()).Msg("Server shutting down")
}
