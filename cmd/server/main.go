package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/auca/lostandfound-backend/config"
	"github.com/auca/lostandfound-backend/internal/app/controller"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/internal/app/service"
	"github.com/auca/lostandfound-backend/internal/db"
	"github.com/auca/lostandfound-backend/internal/report"
	"github.com/auca/lostandfound-backend/internal/router"
	"github.com/auca/lostandfound-backend/internal/scheduler"
	"github.com/auca/lostandfound-backend/internal/storage"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"github.com/auca/lostandfound-backend/pkg/mailer"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting AUCA Lost and Found Backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	otpRepo := repository.NewOtpRepository(db.GetDB())
	resetRepo := repository.NewPasswordResetRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	lostItemRepo := repository.NewLostItemRepository(db.GetDB())
	foundItemRepo := repository.NewFoundItemRepository(db.GetDB())
	matchRepo := repository.NewMatchRepository(db.GetDB())

	// Outgoing mail. Without SMTP credentials in production the reset flow
	// is disabled; in development the mailer logs instead of sending.
	var (
		appMailer    mailer.Mailer
		resetService service.PasswordResetService
	)
	if cfg.Server.Environment == "production" && cfg.SMTP.Username == "" {
		logger.Warn("SMTP not configured, password reset is disabled", nil)
	} else {
		appMailer = mailer.NewSMTPMailer(&cfg.SMTP)
		resetService = service.NewPasswordResetService(resetRepo, config.ResetTokenExpiry)
	}

	// Initialize services
	otpService := service.NewOTPService(otpRepo, config.OTPExpiry)
	authService := service.NewAuthService(userRepo, otpService, resetService, appMailer, cfg.Frontend.BaseURL)
	userService := service.NewUserService(userRepo)
	lostItemService := service.NewLostItemService(lostItemRepo)
	foundItemService := service.NewFoundItemService(foundItemRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	matchService := service.NewMatchService(matchRepo, lostItemRepo, foundItemRepo)
	searchService := service.NewSearchService(lostItemRepo, foundItemRepo, userRepo, matchRepo)

	// S3 storage for verification photo uploads
	s3Storage := storage.NewS3Storage(&cfg.S3)

	// Register exporter
	registerExporter := report.NewRegisterExporter(lostItemRepo, foundItemRepo, matchRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService)
	lostItemController := controller.NewLostItemController(lostItemService)
	foundItemController := controller.NewFoundItemController(foundItemService)
	categoryController := controller.NewCategoryController(categoryService)
	matchController := controller.NewMatchController(matchService)
	searchController := controller.NewSearchController(searchService)
	uploadController := controller.NewUploadController(s3Storage)
	reportController := controller.NewReportController(registerExporter, userService)

	// Start the expired credential purge
	cleanupScheduler := scheduler.NewCleanupScheduler(otpRepo, resetRepo)
	if err := cleanupScheduler.Start(); err != nil {
		logger.Fatal("Failed to start cleanup scheduler", err)
	}
	defer cleanupScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		userController,
		lostItemController,
		foundItemController,
		categoryController,
		matchController,
		searchController,
		uploadController,
		reportController,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
