package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carbon-bazar/config"
	httpHandler "carbon-bazar/internal/adapter/http/handler"
	memStorage "carbon-bazar/internal/adapter/storage/memory"
	pgStorage "carbon-bazar/internal/adapter/storage/postgres"
	redisStorage "carbon-bazar/internal/adapter/storage/redis"
	"carbon-bazar/internal/core/ports"
	"carbon-bazar/internal/service"
	"carbon-bazar/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Carbon Bazar")

	ctx := context.Background()

	var healthCheckers []ports.HealthChecker

	// Initialize Redis client when any backend needs it
	var rdb *goredis.Client
	if cfg.Redis.Enabled {
		client, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer client.Close()
		rdb = client
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(client))
		log.Info().Msg("Redis connected")
	}

	// Session store: in-process by default, Redis for multi-instance deployments
	var sessionStore ports.SessionStore
	switch cfg.Session.Store {
	case "redis":
		if rdb == nil {
			log.Fatal().Msg("session.store=redis requires redis.enabled=true")
		}
		sessionStore = redisStorage.NewSessionStore(rdb, cfg.Session.TTL)
		log.Info().Dur("ttl", cfg.Session.TTL).Msg("Using Redis session store")
	default:
		sessionStore = memStorage.NewSessionStore()
		log.Info().Msg("Using in-memory session store")
	}

	// Catalog: seeded in-memory by default, PostgreSQL when configured.
	// The settlement journal only exists with a PostgreSQL backend.
	var catalogRepo ports.CatalogRepository
	var journal ports.SettlementJournal
	switch cfg.Catalog.Store {
	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		catalogRepo = pgStorage.NewCatalogRepo(pool)
		journal = pgStorage.NewSettlementJournal(pool)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
		log.Info().Msg("PostgreSQL connected")
	default:
		catalogRepo = memStorage.NewCatalogStore(memStorage.SeedListings(), memStorage.SeedStats())
		log.Info().Msg("Using seeded in-memory catalog")
	}

	// Credential verifier
	var verifier ports.CredentialVerifier
	switch cfg.Auth.Mode {
	case "static":
		verifier = service.NewStaticVerifier(cfg.Auth, cfg.Demo, log)
		log.Info().Int("users", len(cfg.Auth.Users)).Msg("Using static credential verifier")
	default:
		verifier = service.NewDemoVerifier(cfg.Demo)
		log.Info().Str("email", cfg.Demo.Email).Msg("Using demo credential verifier")
	}

	// Core services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	sessionSvc := service.NewSessionService(sessionStore, verifier, tokenSvc, log)
	catalogSvc := service.NewCatalogService(catalogRepo)
	ledgerSvc := service.NewLedgerService(sessionStore)
	purchaseSvc := service.NewPurchaseService(sessionSvc, catalogRepo, journal, log)
	routeGuard := service.NewRouteGuard()

	// Rate limiting rides on Redis; without it the limiter stays off
	var rateLimitStore *redisStorage.RateLimitStore
	if rdb != nil {
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SessionSvc:     sessionSvc,
		CatalogSvc:     catalogSvc,
		LedgerSvc:      ledgerSvc,
		PurchaseSvc:    purchaseSvc,
		RouteGuard:     routeGuard,
		TokenSvc:       tokenSvc,
		SessionStore:   sessionStore,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
