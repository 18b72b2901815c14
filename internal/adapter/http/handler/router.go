package handler

import (
	"carbon-bazar/internal/adapter/http/middleware"
	redisStore "carbon-bazar/internal/adapter/storage/redis"
	"carbon-bazar/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	SessionSvc     ports.SessionService
	CatalogSvc     ports.CatalogService
	LedgerSvc      ports.LedgerService
	PurchaseSvc    ports.PurchaseService
	RouteGuard     ports.RouteGuard
	TokenSvc       ports.TokenService
	SessionStore   ports.SessionStore
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies configured backends)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// Session resolution runs on every API route; routes decide what an
	// anonymous request means.
	bearerAuth := middleware.BearerAuth(deps.TokenSvc, deps.SessionStore, deps.Logger)

	v1 := r.Group("/api/v1", bearerAuth)

	// --- Session lifecycle ---
	authHandler := NewAuthHandler(deps.SessionSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}
	v1.GET("/session", authHandler.CurrentSession)

	// --- Public marketplace ---
	marketplaceHandler := NewMarketplaceHandler(deps.CatalogSvc)
	marketplace := v1.Group("/marketplace")
	{
		marketplace.GET("/listings", rl("marketplace"), marketplaceHandler.Listings)
		marketplace.GET("/listings/:id", rl("marketplace"), marketplaceHandler.Listing)
		marketplace.GET("/stats", rl("marketplace"), marketplaceHandler.Stats)
	}

	// --- Navigation guard ---
	navigationHandler := NewNavigationHandler(deps.RouteGuard)
	v1.GET("/navigation/:route", navigationHandler.CanEnter)

	// --- Guarded profile routes (silent redirect when anonymous) ---
	profileHandler := NewProfileHandler(deps.SessionSvc, deps.LedgerSvc)
	profile := v1.Group("/profile", middleware.SessionGuard())
	{
		profile.GET("", rl("profile"), profileHandler.Profile)
		profile.GET("/activity", rl("profile"), profileHandler.Activity)
	}

	// --- Purchases (guarded like the profile routes) ---
	purchaseHandler := NewPurchaseHandler(deps.PurchaseSvc)
	v1.POST("/purchases", middleware.SessionGuard(), rl("purchases"), purchaseHandler.Purchase)

	return r
}
