package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fundledger/internal/middleware"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth         *AuthHandler
	Funds        *FundHandler
	Transactions *TransactionHandler
	Reports      *ReportHandler
}

// RouteConfig holds the secrets the route guards need.
type RouteConfig struct {
	JWTSecret         string
	MaintenanceAPIKey string
}

// RegisterRoutes mounts the health check, login, and the authenticated ledger routes.
func RegisterRoutes(router *gin.Engine, h Handlers, cfg RouteConfig) {
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.POST("/auth/login", h.Auth.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	funds := protected.Group("/funds")
	funds.GET("/:org_id", h.Funds.GetFunds)
	funds.GET("/:org_id/reconcile", h.Funds.CheckFunds)
	funds.POST("/:org_id/reconcile", middleware.MaintenanceKeyMiddleware(cfg.MaintenanceAPIKey), h.Funds.RepairFunds)

	transactions := protected.Group("/transactions")
	transactions.GET("", h.Transactions.ListTransactions)
	transactions.POST("/add", h.Transactions.AddTransaction)

	reports := protected.Group("/reports")
	reports.GET("/summary", h.Reports.GetSummary)
	reports.GET("/transactions", h.Reports.GetTransactions)
	reports.GET("/export", h.Reports.ExportLedger)
}
