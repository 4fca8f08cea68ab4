package main

import (
	"log"
	"os"

	"github.com/dukapos/dukapos-api/internal/application/cart"
	"github.com/dukapos/dukapos-api/internal/application/service"
	"github.com/dukapos/dukapos-api/internal/config"
	"github.com/dukapos/dukapos-api/internal/infrastructure/database"
	"github.com/dukapos/dukapos-api/internal/infrastructure/repository"
	"github.com/dukapos/dukapos-api/internal/presentation/http/handler"
	"github.com/dukapos/dukapos-api/internal/presentation/http/routes"
	"github.com/dukapos/dukapos-api/pkg/email"
	"github.com/dukapos/dukapos-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	printerRepo := repository.NewPrinterRepository(db)
	mpesaRepo := repository.NewMpesaRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	reportRepo := repository.NewReportRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// In-memory carts, one per signed-in attendant
	carts := cart.NewManager()

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	discountService := service.NewDiscountService(discountRepo)
	saleService := service.NewSaleService(saleRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	checkoutService := service.NewCheckoutService(
		carts,
		saleRepo,
		productRepo,
		discountRepo,
		settingsRepo,
		auditRepo,
		cfg.POS.DeleteOnResume,
	)
	printerService := service.NewPrinterService(printerRepo, saleRepo, settingsRepo)
	mpesaService := service.NewMpesaService(mpesaRepo, settingsRepo, cfg.Mpesa.CallbackURL)
	reportService := service.NewReportService(reportRepo, productRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Pos:      handler.NewPosHandler(checkoutService, userService),
		Product:  handler.NewProductHandler(productService),
		Category: handler.NewCategoryHandler(categoryService),
		Sale:     handler.NewSaleHandler(saleService),
		Discount: handler.NewDiscountHandler(discountService),
		Settings: handler.NewSettingsHandler(settingsService),
		User:     handler.NewUserHandler(userService),
		Printer:  handler.NewPrinterHandler(printerService),
		Report:   handler.NewReportHandler(reportService),
		Mpesa:    handler.NewMpesaHandler(mpesaService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
