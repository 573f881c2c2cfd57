package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpAdapter "github.com/lorrc/support-analytics/internal/adapters/primary/http"
	mw "github.com/lorrc/support-analytics/internal/adapters/primary/http/middleware"
	"github.com/lorrc/support-analytics/internal/adapters/primary/websocket"
	"github.com/lorrc/support-analytics/internal/adapters/secondary/postgres"
	"github.com/lorrc/support-analytics/internal/adapters/secondary/push"
	redisAdapter "github.com/lorrc/support-analytics/internal/adapters/secondary/redis"
	"github.com/lorrc/support-analytics/internal/auth"
	"github.com/lorrc/support-analytics/internal/config"
	"github.com/lorrc/support-analytics/internal/core/domain"
	"github.com/lorrc/support-analytics/internal/core/services"
	"github.com/lorrc/support-analytics/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"config", cfg.String(),
	)

	// Cancelled on SIGINT/SIGTERM; stops the hub and background workers.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Apply migrations when asked to
	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(cfg.Database.MigrationsPath, cfg.Database.URL, logger); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("database migrations applied")
	}

	// 4. Initialize Database Pool
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		URL:             cfg.Database.URL,
		MaxConns:        cfg.Database.MaxOpenConns,
		MinConns:        cfg.Database.MaxIdleConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connection established")

	// 5. Optional analytics cache
	var cache *redisAdapter.ResultCache
	if cfg.Redis.Enabled() {
		cache, err = redisAdapter.NewResultCache(ctx, redisAdapter.Config{
			URL:         cfg.Redis.URL,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		if err != nil {
			// Analytics still works uncached.
			logger.Warn("analytics cache unavailable, continuing without it", "error", err)
			cache = nil
		} else {
			defer cache.Close()
			logger.Info("analytics cache connected", "ttl", cfg.Analytics.CacheTTL)
		}
	}

	// 6. Push provider
	provider, err := push.NewProvider(ctx, push.FCMConfig{
		ProjectID:       cfg.Firebase.ProjectID,
		CredentialsFile: cfg.Firebase.CredentialsFile,
		CredentialsJSON: cfg.Firebase.CredentialsJSON,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize push provider", "error", err)
		os.Exit(1)
	}

	// 7. Initialize Security & Real-time Components
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	var rateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = mw.NewRateLimiter(ctx, mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
			TrustProxy:        cfg.RateLimit.TrustProxy,
		})
	}

	// 8. Dependency Injection (Wiring the Hexagon)
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Repositories (Secondary Adapters)
	ticketRepo := postgres.NewTicketAnalyticsRepository(pool)
	agentRepo := postgres.NewAgentRepository(pool)

	// Services (Core)
	analyticsService := services.NewAnalyticsService(ticketRepo, agentRepo, services.AnalyticsServiceConfig{
		Location: cfg.Analytics.Location,
	})
	if cache != nil && cfg.Analytics.CacheTTL > 0 {
		analyticsService = services.NewCachedAnalyticsService(analyticsService, cache, cfg.Analytics.CacheTTL, logger)
	}
	notificationService := services.NewNotificationService(provider, hub, logger)

	// Handlers (Primary Adapters)
	analyticsHandler := httpAdapter.NewAnalyticsHandler(analyticsService, errorHandler, logger)
	notificationHandler := httpAdapter.NewNotificationHandler(notificationService, logger)
	wsHandler := httpAdapter.NewWebSocketHandler(hub, tokenManager, cfg, logger)

	var cacheChecker httpAdapter.HealthChecker
	if cache != nil {
		cacheChecker = cache
	}
	healthHandler := httpAdapter.NewHealthHandler(pool, cacheChecker, cfg.App.Version)

	// 9. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	if rateLimiter != nil {
		r.Use(rateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	healthHandler.RegisterRoutes(r)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/admin/analytics", func(r chi.Router) {
			r.Use(mw.JWTMiddleware(tokenManager))
			r.Use(mw.RequireRole(domain.RoleAdmin))
			analyticsHandler.RegisterRoutes(r)
		})

		r.Route("/notifications", func(r chi.Router) {
			// Authentication is handled inside the handler; browsers
			// cannot send headers on a websocket upgrade.
			r.Get("/ws", wsHandler.ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(mw.JWTMiddleware(tokenManager))
				notificationHandler.RegisterRoutes(r)
			})
		})
	})

	// 10. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
