package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pizzastock/backend/internal/infrastructure/auth"
	"github.com/pizzastock/backend/internal/infrastructure/config"
	"github.com/pizzastock/backend/internal/infrastructure/logger"
	"github.com/pizzastock/backend/internal/interfaces/http/handler"
	"github.com/pizzastock/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the handler set wired into the router.
type Handlers struct {
	Products     *handler.ProductHandler
	Batches      *handler.BatchHandler
	Movements    *handler.MovementHandler
	Reservations *handler.ReservationHandler
	Productions  *handler.ProductionHandler
	Writeoffs    *handler.WriteoffHandler
	Auth         *handler.AuthHandler
	System       *handler.SystemHandler
}

// New builds the gin engine with the full middleware chain and all routes.
func New(cfg *config.Config, handlers Handlers, jwtService *auth.JWTService, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSFromConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", handlers.System.Health)

	api := engine.Group("/api/v1")
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	api.Use(middleware.JWTAuthWithConfig(jwtConfig))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", handlers.Auth.Login)
	}

	products := api.Group("/products")
	{
		products.POST("", handlers.Products.Create)
		products.GET("", handlers.Products.List)
		products.GET("/code/:code", handlers.Products.GetByCode)
		products.GET("/:id", handlers.Products.Get)
		products.PUT("/:id", handlers.Products.Update)
		products.DELETE("/:id", handlers.Products.Deactivate)

		products.GET("/:id/batches", handlers.Batches.ListByProduct)
		products.GET("/:id/availability", handlers.Batches.Availability)
		products.GET("/:id/balance/verify", handlers.Movements.VerifyBalance)
	}

	batches := api.Group("/batches")
	{
		batches.GET("/expiring", handlers.Batches.ListExpiring)
		batches.GET("/:id", handlers.Batches.Get)
		batches.POST("/:id/adjust", handlers.Batches.Adjust)
		batches.POST("/:id/close", handlers.Batches.Close)
	}

	movements := api.Group("/movements")
	{
		movements.POST("", handlers.Movements.Record)
		movements.GET("", handlers.Movements.List)
		movements.GET("/statistics", handlers.Movements.Statistics)
		movements.GET("/:id", handlers.Movements.Get)
		movements.PATCH("/:id", handlers.Movements.Amend)
		movements.DELETE("/:id", handlers.Movements.Reverse)
	}

	reservations := api.Group("/reservations")
	{
		reservations.POST("", handlers.Reservations.Reserve)
		reservations.POST("/release", handlers.Reservations.Release)
		reservations.POST("/consume", handlers.Reservations.Consume)
	}

	productions := api.Group("/productions")
	{
		productions.POST("", handlers.Productions.Create)
		productions.GET("", handlers.Productions.List)
		productions.GET("/:id", handlers.Productions.Get)
	}

	writeoffs := api.Group("/writeoffs")
	{
		writeoffs.POST("", handlers.Writeoffs.Create)
		writeoffs.GET("", handlers.Writeoffs.List)
		writeoffs.GET("/:id", handlers.Writeoffs.Get)
	}

	return engine
}
