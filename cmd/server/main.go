package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reflexo_app_go/config"
	"reflexo_app_go/db"
	"reflexo_app_go/handlers"
	"reflexo_app_go/logger"
	"reflexo_app_go/middleware"
	"reflexo_app_go/models"
	"reflexo_app_go/services"
	"reflexo_app_go/services/i18n"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	flush, err := logger.Init(cfg.LogLevel, cfg.LogFormat, "reflexo")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer flush()

	if err := i18n.Load(); err != nil {
		zap.L().Fatal("failed to load translations", zap.Error(err))
	}

	// Initialize database
	if err := db.Initialize(cfg); err != nil {
		zap.L().Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(models.All()...); err != nil {
		zap.L().Fatal("failed to run migrations", zap.Error(err))
	}

	if cfg.SeedLocations {
		if err := services.SeedLocations(db.DB); err != nil {
			zap.L().Fatal("failed to seed locations", zap.Error(err))
		}
	}

	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Middleware
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	e.Use(middleware.RequestLogger(zap.L()))
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.AuditContext())

	limiter := handlers.RegisterRoutes(e, cfg)
	defer limiter.Stop()

	// Start server
	go func() {
		zap.L().Info("server starting", zap.String("port", cfg.ServerPort), zap.String("environment", cfg.Environment))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zap.L().Error("server shutdown failed", zap.Error(err))
	}
}
