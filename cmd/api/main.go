package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/receipt-engine/internal/application/service"
	"github.com/sangkips/receipt-engine/internal/config"
	"github.com/sangkips/receipt-engine/internal/infrastructure/database"
	"github.com/sangkips/receipt-engine/internal/infrastructure/repository"
	"github.com/sangkips/receipt-engine/internal/presentation/http/handler"
	"github.com/sangkips/receipt-engine/internal/presentation/http/middleware"
	"github.com/sangkips/receipt-engine/internal/presentation/http/routes"
	"github.com/sangkips/receipt-engine/pkg/email"
	"github.com/sangkips/receipt-engine/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Receipt.DefaultProfile); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize repositories
	profileRepo := repository.NewPrintProfileRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})
	if !emailService.Enabled() {
		log.Printf("Warning: SMTP is not configured, receipt emails are disabled")
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:     cfg.Printer.Type,
		USBPath:  cfg.Printer.USBPath,
		Address:  cfg.Printer.Address,
		FilePath: cfg.Printer.FilePath,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	profileService := service.NewProfileService(profileRepo, cfg.Receipt.DefaultProfile)
	receiptService := service.NewReceiptService(thermalPrinter, profileService, saleRepo, emailService, cfg.Printer.Output)

	// Initialize handlers
	handlers := &routes.Handlers{
		Receipt: handler.NewReceiptHandler(receiptService),
		Profile: handler.NewProfileHandler(profileService),
		Printer: handler.NewPrinterHandler(receiptService),
	}

	// Per-client rate limiter
	rateLimiter := middleware.NewClientRateLimiter(
		middleware.NewRateLimiterConfig(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)
	log.Printf("Printer: %s (output %s)", thermalPrinter.Type(), cfg.Printer.Output)

	if err := router.Run(":" + port); err != nil {
		log.Printf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
