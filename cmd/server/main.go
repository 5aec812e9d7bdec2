package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/gstbill/backend/internal/application/billing"
	identityapp "github.com/gstbill/backend/internal/application/identity"
	ledgerapp "github.com/gstbill/backend/internal/application/ledger"
	"github.com/gstbill/backend/internal/infrastructure/allocator"
	"github.com/gstbill/backend/internal/infrastructure/config"
	"github.com/gstbill/backend/internal/infrastructure/logger"
	"github.com/gstbill/backend/internal/infrastructure/persistence"
	"github.com/gstbill/backend/internal/interfaces/http/handler"
	"github.com/gstbill/backend/internal/interfaces/http/middleware"
	"github.com/gstbill/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting GST billing backend",
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

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		// The allocator falls back to random identifiers when Redis is
		// down, so a failed ping is not fatal.
		log.Warn("Redis unreachable, identifier allocation will use fallback", zap.Error(err))
	}

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	profileRepo := persistence.NewGormBusinessProfileRepository(db.DB)
	seriesRepo := persistence.NewGormSeriesRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	professionalRepo := persistence.NewGormProfessionalRepository(db.DB)

	// Application services
	identifierAllocator := allocator.NewRedisAllocator(redisClient, log)
	documentService := billingapp.NewDocumentService(documentRepo, seriesRepo, customerRepo, profileRepo)
	paymentService := ledgerapp.NewPaymentService(ledgerRepo, customerRepo)
	registrationService := identityapp.NewRegistrationService(identifierAllocator, professionalRepo, log)

	// HTTP handlers
	documentHandler := handler.NewDocumentHandler(documentService)
	customerHandler := handler.NewCustomerHandler(customerRepo)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	registrationHandler := handler.NewRegistrationHandler(registrationService, professionalRepo)
	profileHandler := handler.NewProfileHandler(profileRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := handler.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))

	engine.GET("/health", healthHandler(db))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(documentHandler).
		Register(customerHandler).
		Register(paymentHandler).
		Register(registrationHandler).
		Register(profileHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
