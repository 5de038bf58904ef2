package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fleetapp "github.com/fleetledger/backend/internal/application/fleet"
	ledgerapp "github.com/fleetledger/backend/internal/application/ledger"
	sharesapp "github.com/fleetledger/backend/internal/application/shares"
	"github.com/fleetledger/backend/internal/infrastructure/auth"
	"github.com/fleetledger/backend/internal/infrastructure/config"
	"github.com/fleetledger/backend/internal/infrastructure/logger"
	"github.com/fleetledger/backend/internal/infrastructure/persistence"
	"github.com/fleetledger/backend/internal/interfaces/http/handler"
	"github.com/fleetledger/backend/internal/interfaces/http/middleware"
	"github.com/fleetledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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
		_ = log.Sync()
	}()

	log.Info("Starting Fleet Ledger Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	accountRepo := persistence.NewGormOwnerAccountRepository(db.DB)
	registrationRepo := persistence.NewGormShareRegistrationRepository(db.DB)
	runRepo := persistence.NewGormDistributionRunRepository(db.DB)
	busRepo := persistence.NewGormBusRepository(db.DB)
	agentRepo := persistence.NewGormAgentRepository(db.DB)
	operatorRepo := persistence.NewGormOperatorRepository(db.DB)
	credentialRepo := persistence.NewGormOwnerCredentialRepository(db.DB)

	// Transaction scopes for multi-aggregate writes
	ledgerScope := persistence.NewGormLedgerTransactionScope(db.DB)
	sharesScope := persistence.NewGormSharesTransactionScope(db.DB)

	// Initialize application services
	profitService := ledgerapp.NewProfitService(transactionRepo, log)
	settlementService := ledgerapp.NewSettlementService(ledgerScope, log)
	shareService := sharesapp.NewShareService(registrationRepo, log)
	distributionService := sharesapp.NewDistributionService(registrationRepo, runRepo, profitService, sharesScope, log)
	registryService := fleetapp.NewRegistryService(busRepo, agentRepo, operatorRepo, credentialRepo, accountRepo, log)

	// Auth (owner session tokens)
	jwtService := auth.NewJWTService(cfg.JWT)
	var tokenBlacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		tokenBlacklist = redisBlacklist
		log.Info("Redis token blacklist connected",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	}

	// Initialize HTTP handlers
	sharesHandler := handler.NewSharesHandler(shareService, distributionService)
	ledgerHandler := handler.NewLedgerHandler(settlementService)
	fleetHandler := handler.NewFleetHandler(registryService)
	ownerHandler := handler.NewOwnerHandler(registryService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	systemHandler.RegisterRootRoutes(engine)

	// JWT authentication for the versioned API
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
		},
		Logger: log,
	}

	// Setup API routes
	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(middleware.JWTAuthMiddlewareWithConfig(jwtConfig)),
	)
	r.Register(sharesHandler).
		Register(ledgerHandler).
		Register(fleetHandler).
		Register(ownerHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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
