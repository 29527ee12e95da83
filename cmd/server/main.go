package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"txnledger/internal/config"
	"txnledger/internal/database"
	"txnledger/internal/handlers"
	custommw "txnledger/internal/middleware"
	"txnledger/internal/repositories"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	transactionRepo := repositories.NewTransactionRepository(db)

	transactionHandler := handlers.NewTransactionHandler(transactionRepo)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = custommw.NewHTTPErrorHandler(cfg.IsDevelopment())

	e.Use(custommw.RequestID())
	e.Use(custommw.PanicRecovery())
	e.Use(custommw.SecurityHeaders())
	e.Use(custommw.RequestLogger())
	e.Use(custommw.RequestMetrics())
	e.Use(custommw.RateLimiterWithConfig(
		cfg.Security.RateLimitPerSecond,
		cfg.Security.RateLimitBurst,
	))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	api := e.Group("/api")
	api.POST("/transactions", transactionHandler.CreateTransaction)
	api.GET("/transactions", transactionHandler.ListTransactions)
	api.GET("/transactions/:id", transactionHandler.GetTransaction)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		addr := ":" + cfg.Server.Port
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped")
}
