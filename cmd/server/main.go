package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/pizzastock/backend/internal/application/catalog"
	inventoryapp "github.com/pizzastock/backend/internal/application/inventory"
	"github.com/pizzastock/backend/internal/infrastructure/auth"
	"github.com/pizzastock/backend/internal/infrastructure/cache"
	"github.com/pizzastock/backend/internal/infrastructure/config"
	"github.com/pizzastock/backend/internal/infrastructure/logger"
	"github.com/pizzastock/backend/internal/infrastructure/persistence"
	"github.com/pizzastock/backend/internal/interfaces/http/handler"
	"github.com/pizzastock/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

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

	log.Info("Starting pizzastock backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("driver", cfg.Database.Driver),
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

	// The postgres backend is migrated through SQL files by cmd/migrate.
	// The sqlite backend owns its schema directly.
	if db.Driver() == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	var statsCache inventoryapp.StatisticsCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisStatisticsCache(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
		statsCache = redisCache
		log.Info("Redis statistics cache enabled")
	} else {
		statsCache = cache.NewInMemoryStatisticsCache()
		log.Info("In-memory statistics cache enabled")
	}

	productRepo := persistence.NewGormProductRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	writeoffRepo := persistence.NewGormWriteoffRepository(db.DB)
	productionRepo := persistence.NewGormProductionRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	productService := catalogapp.NewProductService(productRepo, log)
	batchService := inventoryapp.NewBatchService(txScope, batchRepo, log)
	movementService := inventoryapp.NewMovementService(txScope, movementRepo, statsCache, log)
	reservationService := inventoryapp.NewReservationService(txScope, log)
	productionService := inventoryapp.NewProductionService(txScope, productionRepo, log)
	writeoffService := inventoryapp.NewWriteoffService(txScope, writeoffRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	verifier := auth.NewCredentialVerifier(cfg.Auth)

	handlers := router.Handlers{
		Products:     handler.NewProductHandler(productService),
		Batches:      handler.NewBatchHandler(batchService),
		Movements:    handler.NewMovementHandler(movementService),
		Reservations: handler.NewReservationHandler(reservationService),
		Productions:  handler.NewProductionHandler(productionService),
		Writeoffs:    handler.NewWriteoffHandler(writeoffService),
		Auth:         handler.NewAuthHandler(verifier, jwtService, log),
		System:       handler.NewSystemHandler(db, cfg.App.Name, version),
	}

	engine := router.New(cfg, handlers, jwtService, log)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
