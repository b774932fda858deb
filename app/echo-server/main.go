package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diaPredict/app/echo-server/router"
	"diaPredict/business/prediction"
	userService "diaPredict/business/user"
	"diaPredict/internal/inference"
	"diaPredict/internal/middleware"
	psqlRepo "diaPredict/internal/repository/postgres"
	"diaPredict/internal/rest"
	"diaPredict/pkg/config"
	"diaPredict/pkg/database"
	"diaPredict/pkg/logger"
	"diaPredict/pkg/metrics"
	"diaPredict/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting DiaPredict", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	// A missing database is not fatal: prediction endpoints switch to mock
	// mode and keep answering with synthesized records.
	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Warn("Database unavailable, predictions will be served in mock mode", "error", err)
		db = nil
	} else {
		logger.Info("Database connected successfully")
	}
	storeHandle := database.NewStoreHandle(db)

	// Init inference client
	inferenceClient := inference.NewClient(inference.Config{
		URL:     cfg.Inference.URL,
		Timeout: time.Duration(cfg.Inference.TimeoutSeconds) * time.Second,
	})

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	predictionRepo := psqlRepo.NewPredictionRepository(db)

	// Init service
	usrService := userService.NewUserService(userRepo)
	predictionService := prediction.NewService(predictionRepo, storeHandle, inferenceClient, nil, nil)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	predictionHandler := rest.NewPredictionHandler(predictionService)
	healthHandler := rest.NewHealthHandler(storeHandle, cfg.App.Version)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", healthHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	authRequired := middleware.AuthMiddleware()
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler)
	router.SetupPredictionRoutes(api, predictionHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
