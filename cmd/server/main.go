package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/denialp88/tickets/internal/auth"
	"github.com/denialp88/tickets/internal/cache"
	"github.com/denialp88/tickets/internal/config"
	"github.com/denialp88/tickets/internal/db"
	"github.com/denialp88/tickets/internal/handler"
	"github.com/denialp88/tickets/internal/repository"
	"github.com/denialp88/tickets/internal/router"
	"github.com/denialp88/tickets/internal/seed"
	"github.com/denialp88/tickets/internal/service"
	"github.com/denialp88/tickets/internal/storage"
)

// @title Ticket Resale Back Office API
// @version 1.0
// @description Events, ticket transactions, booker commissions and expenses with admin/booker roles.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("redis unreachable, caching and refresh tokens degraded: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	txnRepo := repository.NewTransactionRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	// The default admin and booker accounts exist from first boot.
	if err := seed.EnsureDefaultUsers(context.Background(), userRepo); err != nil {
		log.Fatalf("seed default users: %v", err)
	}

	// Proof-image storage is optional; transactions work without it.
	var proofStore storage.ProofStore
	if cfg.Minio.Endpoint != "" {
		minioStore, err := storage.NewMinioStore(cfg.Minio)
		if err != nil {
			log.Fatalf("minio init: %v", err)
		}
		if err := minioStore.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("minio bucket: %v", err)
		}
		proofStore = minioStore
	} else {
		log.Println("MINIO_ENDPOINT not set, payment-proof uploads disabled")
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	guard := auth.NewGuard()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo)
	eventService := service.NewEventService(eventRepo, txnRepo)
	txnService := service.NewTransactionService(txnRepo, eventRepo, cacheClient)
	expenseService := service.NewExpenseService(expenseRepo, eventRepo, cacheClient)
	reportService := service.NewReportService(eventRepo, txnRepo, expenseRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	eventHandler := handler.NewEventHandler(eventService)
	txnHandler := handler.NewTransactionHandler(txnService, proofStore)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	reportHandler := handler.NewReportHandler(reportService)

	// Register routes
	router.Register(
		e,
		cfg,
		guard,
		tokenStore,
		authHandler,
		userHandler,
		eventHandler,
		txnHandler,
		expenseHandler,
		reportHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
