// Package server assembles the HTTP router: services, handlers, middleware
// and routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"budgetplaner/internal/config"
	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/handlers"
	"budgetplaner/internal/middleware"
	"budgetplaner/internal/services"

	_ "budgetplaner/internal/docs" // Import swagger docs
)

// NewRouter wires every service and handler against db and returns the
// ready-to-serve engine. All resource routes live under /api.
func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	budgetService := services.NewBudgetService(db)
	categoryService := services.NewCategoryService(db)
	entryService := services.NewEntryService(db)
	reductionService := services.NewSalaryReductionService(db)
	taxService := services.NewTaxService(db)
	balanceService := services.NewActualBalanceService(db)
	templateService := services.NewTemplateService(db)
	exportService := services.NewExportService(db)
	importService := services.NewImportService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	budgetHandler := handlers.NewBudgetHandler(budgetService, categoryService, exportService, importService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	entryHandler := handlers.NewEntryHandler(entryService, auditService)
	deductionHandler := handlers.NewDeductionHandler(reductionService, taxService, auditService)
	balanceHandler := handlers.NewActualBalanceHandler(balanceService, auditService)
	templateHandler := handlers.NewTemplateHandler(templateService, auditService)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
			"code":    apperrors.ErrNotFound.Code,
			"message": apperrors.ErrNotFound.Message,
		}})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": gin.H{
			"code":    "METHOD_NOT_ALLOWED",
			"message": "Method not allowed",
		}})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(middleware.APIKeyAuth(cfg.APIKey))

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("/import", budgetHandler.Import)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.PATCH("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/:id/summary", budgetHandler.GetSummary)
	budgets.GET("/:id/monthly/:month", budgetHandler.GetMonthlySummary)
	budgets.GET("/:id/yearly", budgetHandler.GetYearlySummary)
	budgets.GET("/:id/categories", budgetHandler.GetCategories)
	budgets.POST("/:id/add_category", budgetHandler.AddCategory)
	budgets.GET("/:id/years", budgetHandler.GetAvailableYears)
	budgets.GET("/:id/salary-breakdown", budgetHandler.GetSalaryBreakdown)
	budgets.GET("/:id/export", budgetHandler.Export)
	budgets.GET("/:id/chart", budgetHandler.GetChart)

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.PATCH("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.PATCH("/:id/reorder", categoryHandler.ReorderCategory)
	categories.GET("/:id/monthly/:month", categoryHandler.GetMonthlyTotals)
	categories.GET("/:id/yearly", categoryHandler.GetYearlyTotals)

	// Entry routes
	entries := api.Group("/entries")
	entries.POST("", entryHandler.CreateEntry)
	entries.GET("", entryHandler.GetEntries)
	entries.GET("/:id", entryHandler.GetEntry)
	entries.PUT("/:id", entryHandler.UpdateEntry)
	entries.PATCH("/:id", entryHandler.UpdateEntry)
	entries.DELETE("/:id", entryHandler.DeleteEntry)
	entries.PATCH("/:id/actual", entryHandler.UpdateActual)

	// Salary reduction routes
	reductions := api.Group("/salary-reductions")
	reductions.POST("", deductionHandler.CreateSalaryReduction)
	reductions.GET("", deductionHandler.GetSalaryReductions)
	reductions.GET("/:id", deductionHandler.GetSalaryReduction)
	reductions.PUT("/:id", deductionHandler.UpdateSalaryReduction)
	reductions.PATCH("/:id", deductionHandler.UpdateSalaryReduction)
	reductions.DELETE("/:id", deductionHandler.DeleteSalaryReduction)

	// Tax routes
	taxes := api.Group("/taxes")
	taxes.POST("", deductionHandler.CreateTaxEntry)
	taxes.GET("", deductionHandler.GetTaxEntries)
	taxes.GET("/:id", deductionHandler.GetTaxEntry)
	taxes.PUT("/:id", deductionHandler.UpdateTaxEntry)
	taxes.PATCH("/:id", deductionHandler.UpdateTaxEntry)
	taxes.DELETE("/:id", deductionHandler.DeleteTaxEntry)

	// Actual balance routes
	balances := api.Group("/actual-balances")
	balances.POST("", balanceHandler.CreateActualBalance)
	balances.GET("", balanceHandler.GetActualBalances)
	balances.GET("/:id", balanceHandler.GetActualBalance)
	balances.PUT("/:id", balanceHandler.UpdateActualBalance)
	balances.PATCH("/:id", balanceHandler.UpdateActualBalance)
	balances.DELETE("/:id", balanceHandler.DeleteActualBalance)

	// Template routes
	templates := api.Group("/templates")
	templates.POST("", templateHandler.CreateTemplate)
	templates.GET("", templateHandler.GetTemplates)
	templates.POST("/create_from_budget", templateHandler.CreateFromBudget)
	templates.GET("/:id", templateHandler.GetTemplate)
	templates.PUT("/:id", templateHandler.UpdateTemplate)
	templates.PATCH("/:id", templateHandler.UpdateTemplate)
	templates.DELETE("/:id", templateHandler.DeleteTemplate)
	templates.POST("/:id/apply", templateHandler.ApplyTemplate)

	return router
}
