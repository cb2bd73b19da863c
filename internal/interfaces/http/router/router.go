package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tradeboard/backend/internal/infrastructure/auth"
	"github.com/tradeboard/backend/internal/infrastructure/config"
	"github.com/tradeboard/backend/internal/infrastructure/logger"
	"github.com/tradeboard/backend/internal/interfaces/http/handler"
	"github.com/tradeboard/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router wires up
type Handlers struct {
	System        *handler.SystemHandler
	Auth          *handler.AuthHandler
	Clients       *handler.ClientHandler
	Orders        *handler.OrderHandler
	Deliveries    *handler.DeliveryHandler
	Suppliers     *handler.SupplierHandler
	Dashboard     *handler.DashboardHandler
	ImportHistory *handler.ImportHistoryHandler
}

// Setup builds the gin engine with the full middleware chain and all
// API routes. Everything under /api except the auth endpoints requires
// a bearer token.
func Setup(cfg *config.Config, jwtService *auth.JWTService, handlers Handlers, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
	)

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(limiter.Middleware())
	}

	engine.GET("/health", handlers.System.Health)
	engine.GET("/ready", handlers.System.Ready)

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.Logger = log

	api := engine.Group("/api")
	api.Use(middleware.JWTAuthWithConfig(jwtCfg))
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", handlers.Auth.Register)
			authGroup.POST("/login", handlers.Auth.Login)
			authGroup.GET("/profile", handlers.Auth.Profile)
		}

		clients := api.Group("/clients")
		{
			clients.GET("", handlers.Clients.List)
			clients.POST("", handlers.Clients.Upsert)
			clients.POST("/bulk", handlers.Clients.BulkUpsert)
			clients.GET("/:id", handlers.Clients.Get)
			clients.DELETE("/:id", handlers.Clients.Delete)
			clients.GET("/:id/orders", handlers.Clients.Orders)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", handlers.Orders.List)
			orders.POST("", handlers.Orders.Upsert)
			orders.POST("/bulk", handlers.Orders.BulkUpsert)
			orders.GET("/:id", handlers.Orders.Get)
			orders.PUT("/:id", handlers.Orders.Update)
			orders.DELETE("/:id", handlers.Orders.Delete)
		}

		deliveries := api.Group("/deliveries")
		{
			deliveries.GET("", handlers.Deliveries.List)
			deliveries.POST("", handlers.Deliveries.Upsert)
			deliveries.POST("/bulk", handlers.Deliveries.BulkUpsert)
			deliveries.GET("/:id", handlers.Deliveries.Get)
			deliveries.DELETE("/:id", handlers.Deliveries.Delete)
		}

		suppliers := api.Group("/suppliers")
		{
			suppliers.GET("", handlers.Suppliers.List)
			suppliers.POST("", handlers.Suppliers.Upsert)
			suppliers.POST("/bulk", handlers.Suppliers.BulkUpsert)
			suppliers.POST("/update-stats/:id", handlers.Suppliers.UpdateStats)
			suppliers.GET("/:id", handlers.Suppliers.Get)
			suppliers.DELETE("/:id", handlers.Suppliers.Delete)
		}

		api.GET("/dashboard", handlers.Dashboard.Get)
		api.GET("/imports", handlers.ImportHistory.List)
	}

	return engine
}
