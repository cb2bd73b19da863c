package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bulkapp "github.com/tradeboard/backend/internal/application/bulk"
	identityapp "github.com/tradeboard/backend/internal/application/identity"
	logisticsapp "github.com/tradeboard/backend/internal/application/logistics"
	partnerapp "github.com/tradeboard/backend/internal/application/partner"
	reportapp "github.com/tradeboard/backend/internal/application/report"
	tradeapp "github.com/tradeboard/backend/internal/application/trade"
	"github.com/tradeboard/backend/internal/domain/logistics"
	"github.com/tradeboard/backend/internal/domain/trade"
	"github.com/tradeboard/backend/internal/infrastructure/auth"
	"github.com/tradeboard/backend/internal/infrastructure/cache"
	"github.com/tradeboard/backend/internal/infrastructure/config"
	"github.com/tradeboard/backend/internal/infrastructure/event"
	"github.com/tradeboard/backend/internal/infrastructure/logger"
	"github.com/tradeboard/backend/internal/infrastructure/persistence"
	"github.com/tradeboard/backend/internal/interfaces/http/handler"
	"github.com/tradeboard/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting tradeboard backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	historyRepo := persistence.NewGormImportHistoryRepository(db.DB)
	statsRepo := persistence.NewGormStatsRepository(db.DB)
	txManager := persistence.NewTxManager(db.DB)

	// Dashboard snapshot cache; the service degrades to plain
	// computation when Redis is disabled
	var dashboardCache *cache.DashboardCache
	if cfg.Redis.Enabled {
		dashboardCache, err = cache.NewDashboardCache(cfg.Redis, cfg.Cache.DashboardTTL, log)
		if err != nil {
			log.Warn("Redis unavailable, dashboard caching disabled", zap.Error(err))
		} else {
			defer func() {
				_ = dashboardCache.Close()
			}()
		}
	}

	// Event bus and application services
	bus := event.NewInMemoryEventBus(log)

	jwtService := auth.NewJWTService(cfg.JWT)
	historyService := bulkapp.NewHistoryService(historyRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	clientService := partnerapp.NewClientService(clientRepo, orderRepo, historyService, txManager, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, deliveryRepo, historyService, txManager, log)
	orderService := tradeapp.NewOrderService(orderRepo, clientRepo, historyService, bus, log)
	deliveryService := logisticsapp.NewDeliveryService(deliveryRepo, supplierRepo, historyService, bus, log)
	dashboardService := reportapp.NewDashboardService(statsRepo, dashboardCache, log)

	// Order writes cascade into client aggregates, delivery writes into
	// supplier reliability; both invalidate cached dashboards
	orderChanged := partnerapp.NewOrderChangedHandler(clientService, log)
	deliveryChanged := partnerapp.NewDeliveryChangedHandler(supplierService, log)
	bus.Subscribe(trade.EventTypeOrderCreated, orderChanged)
	bus.Subscribe(trade.EventTypeOrderUpdated, orderChanged)
	bus.Subscribe(logistics.EventTypeDeliveryCreated, deliveryChanged)
	bus.Subscribe(logistics.EventTypeDeliveryUpdated, deliveryChanged)

	if dashboardCache != nil {
		invalidation := reportapp.NewCacheInvalidationHandler(dashboardCache, log)
		bus.Subscribe(trade.EventTypeOrderCreated, invalidation)
		bus.Subscribe(trade.EventTypeOrderUpdated, invalidation)
		bus.Subscribe(logistics.EventTypeDeliveryCreated, invalidation)
		bus.Subscribe(logistics.EventTypeDeliveryUpdated, invalidation)
	}

	handlers := router.Handlers{
		System:        handler.NewSystemHandler(db.DB),
		Auth:          handler.NewAuthHandler(authService),
		Clients:       handler.NewClientHandler(clientService, orderService),
		Orders:        handler.NewOrderHandler(orderService),
		Deliveries:    handler.NewDeliveryHandler(deliveryService),
		Suppliers:     handler.NewSupplierHandler(supplierService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
		ImportHistory: handler.NewImportHistoryHandler(historyService),
	}

	engine := router.Setup(cfg, jwtService, handlers, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
