package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fundledger/internal/config"
	"fundledger/internal/database"
	"fundledger/internal/handlers"
	"fundledger/internal/logger"
	"fundledger/internal/middleware"
	"fundledger/internal/services"
	"fundledger/internal/validator"

	_ "fundledger/internal/docs" // Import swagger docs
)

// @title           Fund Ledger API
// @version         1.0
// @description     Fund balance ledger for student organizations: period funds, inflows and outflows with deficit confirmation, and period reports.

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey MaintenanceKey
// @in header
// @name X-API-Key

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	if err := os.MkdirAll(appConfig.AttachmentDir, 0o755); err != nil {
		return fmt.Errorf("failed to create attachment directory: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	orgService := services.NewOrganizationService(db)
	fundService := services.NewFundService(db, appConfig.DefaultFunds)
	transactionService := services.NewTransactionService(db)
	reportService := services.NewReportService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	h := handlers.Handlers{
		Auth:         handlers.NewAuthHandler(orgService, auditService, appConfig.JWTSecret, appConfig.JWTExpirationDur),
		Funds:        handlers.NewFundHandler(fundService, reportService, auditService),
		Transactions: handlers.NewTransactionHandler(transactionService, auditService, appConfig.AttachmentDir, appConfig.MaxAttachmentBytes),
		Reports:      handlers.NewReportHandler(reportService),
	}

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, X-Total-Count, X-Total-Pages, Idempotent-Replayed")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Stored attachments
	router.Static(handlers.AttachmentURLPrefix, appConfig.AttachmentDir)

	handlers.RegisterRoutes(router, h, handlers.RouteConfig{
		JWTSecret:         appConfig.JWTSecret,
		MaintenanceAPIKey: appConfig.MaintenanceAPIKey,
	})

	log.Infof("Starting fund ledger server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
