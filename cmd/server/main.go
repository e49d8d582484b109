package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelf_life_app_go/config"
	"shelf_life_app_go/db"
	"shelf_life_app_go/handlers"
	"shelf_life_app_go/middleware"
	"shelf_life_app_go/models"
	"shelf_life_app_go/pkg/logger"
	"shelf_life_app_go/services"
	"shelf_life_app_go/services/i18n"
	"shelf_life_app_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Must(logger.New(cfg.LogLevel, cfg.Environment))
	defer func() { _ = log.Sync() }()
	if len(cfg.Defaulted) > 0 {
		log.Info("using default configuration", zap.Strings("variables", cfg.Defaulted))
	}

	// Initialize database
	if err := db.Initialize(cfg, logger.Named(log, "db")); err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Workspace{}, &models.Preference{}); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	if err := i18n.Load(logger.Named(log, "i18n")); err != nil {
		log.Fatal("failed to load translations", zap.Error(err))
	}
	i18n.SetDefault(cfg.DefaultLocale)
	middleware.InitAssetVersions(logger.Named(log, "assets"))

	workspaces := services.NewWorkspaceService(db.DB, cfg, logger.Named(log, "workspace"))

	scheduler, err := jobs.StartScheduler(workspaces, cfg, logger.Named(log, "jobs"))
	if err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	keystrokeLimiter := middleware.KeystrokeRateLimiter()
	defer keystrokeLimiter.Stop()
	apiLimiter := middleware.APIRateLimiter()
	defer apiLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestLogger(logger.Named(log, "http")))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(middleware.CSPNonce(logger.Named(log, "csp")))
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSRF(cfg))

	// Static files
	e.Static("/static", "static")

	e.GET("/healthz", handlers.HealthHandler(func() error {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}))

	// Calculator routes (one workspace per browser)
	handlers.RegisterCalculatorRoutes(e, workspaces,
		middleware.Workspace(workspaces, cfg, logger.Named(log, "workspace")),
		keystrokeLimiter.Middleware(),
		logger.Named(log, "keystroke"))

	// Stateless JSON API
	api := e.Group("/api")
	api.Use(apiLimiter.Middleware())
	{
		api.POST("/mask", handlers.MaskAPIHandler)
		api.POST("/parse", handlers.ParseAPIHandler)
		api.POST("/calculate", handlers.CalculateAPIHandler(workspaces.LocalNow))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
