package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/ecommercio/storefront-backend/config"
	"github.com/ecommercio/storefront-backend/internal/app/controller"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/internal/app/service"
	"github.com/ecommercio/storefront-backend/internal/db"
	"github.com/ecommercio/storefront-backend/internal/middleware"
	"github.com/ecommercio/storefront-backend/internal/router"
	"github.com/ecommercio/storefront-backend/internal/session"
	"github.com/ecommercio/storefront-backend/internal/storage"
	"github.com/ecommercio/storefront-backend/pkg/logger"
	"github.com/ecommercio/storefront-backend/pkg/payment/stripe"
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

	logger.Info("Starting Storefront Backend Server", map[string]interface{}{
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

	// Session store
	sessions, sweeper := setupSessionStore(cfg)
	if sweeper != nil {
		defer sweeper.Stop()
	}

	// Image storage
	images := setupImageStorage(cfg)

	// Payment gateway
	var gateway service.CheckoutGateway
	if cfg.Payment.Stripe.SecretKey != "" {
		client, err := stripe.NewClient(stripe.Config{
			SecretKey: cfg.Payment.Stripe.SecretKey,
			BaseURL:   cfg.Payment.Stripe.BaseURL,
		})
		if err != nil {
			logger.Fatal("Failed to initialize Stripe client", err)
		}
		gateway = client
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, checkout is disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	profileRepo := repository.NewProfileRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	settingRepo := repository.NewSettingRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions)
	profileService := service.NewProfileService(profileRepo, userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo, images)
	layoutService := service.NewLayoutService(productRepo, categoryRepo, settingRepo)
	settingsService := service.NewSettingsService(settingRepo, layoutService)
	checkoutService := service.NewCheckoutService(productRepo, settingRepo, gateway)
	adminUserService := service.NewAdminUserService(userRepo)
	exportService := service.NewExportService(productRepo)

	// Initialize controllers
	secureCookies := cfg.Server.Environment == "production"
	authController := controller.NewAuthController(authService, cfg.Session.CookieName, cfg.Session.TTL, secureCookies)
	settingsController := controller.NewSettingsController(settingsService)
	homeController := controller.NewHomeController(layoutService)
	categoryController := controller.NewCategoryController(categoryService, productService)
	productController := controller.NewProductController(productService)
	profileController := controller.NewProfileController(profileService)
	adminUserController := controller.NewAdminUserController(adminUserService, exportService)
	successURL, cancelURL := checkoutRedirects(cfg)
	checkoutController := controller.NewCheckoutController(checkoutService, successURL, cancelURL)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(sessions, cfg.Session.CookieName)

	// Setup router
	r := router.NewRouter(
		authController,
		settingsController,
		homeController,
		categoryController,
		productController,
		profileController,
		adminUserController,
		checkoutController,
		authMiddleware,
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

// setupSessionStore picks the configured session backend. Redis expires
// sessions by itself; the memory store gets an hourly sweep job.
func setupSessionStore(cfg *config.Config) (session.Store, *cron.Cron) {
	if cfg.Session.Store == "redis" {
		store, err := session.NewRedisStore(&cfg.Redis, cfg.Session.TTL)
		if err != nil {
			logger.Fatal("Failed to connect to Redis session store", err)
		}
		return store, nil
	}

	store := session.NewMemoryStore(cfg.Session.TTL)

	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@hourly", func() {
		store.Sweep()
	}); err != nil {
		logger.Fatal("Failed to schedule session sweep", err)
	}
	sweeper.Start()

	logger.Info("Using in-memory session store", map[string]interface{}{
		"ttl": cfg.Session.TTL.String(),
	})
	return store, sweeper
}

// checkoutRedirects resolves the post-payment redirect overrides. Explicit
// URLs win, then PUBLIC_BASE_URL; with neither set the controller derives
// them from the request host.
func checkoutRedirects(cfg *config.Config) (string, string) {
	successURL := cfg.Payment.Stripe.SuccessURL
	cancelURL := cfg.Payment.Stripe.CancelURL
	if successURL != "" && cancelURL != "" {
		return successURL, cancelURL
	}
	if base := strings.TrimSuffix(cfg.Server.PublicBaseURL, "/"); base != "" {
		return base + "/success.html?session_id={CHECKOUT_SESSION_ID}", base + "/cancel.html"
	}
	return "", ""
}

func setupImageStorage(cfg *config.Config) storage.ImageStorage {
	if cfg.Storage.Driver == "s3" {
		logger.Info("Using S3 image storage", map[string]interface{}{
			"bucket": cfg.Storage.S3.Bucket,
			"region": cfg.Storage.S3.Region,
		})
		return storage.NewS3Storage(
			cfg.Storage.S3.Region,
			cfg.Storage.S3.Bucket,
			cfg.Storage.S3.AccessKeyID,
			cfg.Storage.S3.SecretAccessKey,
			cfg.Storage.S3.BaseURL,
		)
	}

	images, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", err)
	}
	return images
}
