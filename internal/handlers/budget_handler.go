package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/report"
	"budgetplaner/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService   services.BudgetServicer
	categoryService services.CategoryServicer
	exportService   services.ExportServicer
	importService   services.ImportServicer
	auditService    services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(
	budgetService services.BudgetServicer,
	categoryService services.CategoryServicer,
	exportService services.ExportServicer,
	importService services.ImportServicer,
	auditService services.AuditServicer,
) *BudgetHandler {
	return &BudgetHandler{
		budgetService:   budgetService,
		categoryService: categoryService,
		exportService:   exportService,
		importService:   importService,
		auditService:    auditService,
	}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Currency string `json:"currency" binding:"omitempty,iso4217"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Currency *string `json:"currency" binding:"omitempty,iso4217"`
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a new budget. Currency defaults to CHF.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Name already taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.CreateBudget(req.Name, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"name": budget.Name, "currency": budget.Currency})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing budgets.
// @Summary     List budgets
// @Description Get a paginated list of budgets ordered by name
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 100, max 500)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.budgetService.ListBudgets(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudget handles retrieving a specific budget.
// @Summary     Get budget by ID
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles partially updating a budget.
// @Summary     Update budget
// @Description Rename a budget or change its currency
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string              true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Fields to change"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Name already taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
// @Router      /budgets/{id} [patch]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.UpdateBudget(budgetID, req.Name, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_BUDGET", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"name": budget.Name, "currency": budget.Currency})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget with everything it owns.
// @Summary     Delete budget
// @Description Delete a budget with its categories, entries, deductions and balances
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// GetSummary handles retrieving a budget with its active categories and entries.
// @Summary     Budget summary
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} services.BudgetSummary "Budget, categories and entries"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/summary [get]
func (h *BudgetHandler) GetSummary(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.budgetService.GetSummary(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMonthlySummary handles the income, expenses and balance of one month.
// @Summary     Monthly summary
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id    path  string true  "Budget ID"
// @Param       month path  int    true  "Month (1-12)"
// @Param       year  query int    false "Year (default current year)"
// @Success     200 {object} rules.MonthlySummary "Monthly summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/monthly/{month} [get]
func (h *BudgetHandler) GetMonthlySummary(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := parseMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.budgetService.GetMonthlySummary(budgetID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetYearlySummary handles the twelve monthly summaries of a year.
// @Summary     Yearly summary
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id   path  string true  "Budget ID"
// @Param       year query int    false "Year (default current year)"
// @Success     200 {object} rules.YearlySummary "Yearly summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/yearly [get]
func (h *BudgetHandler) GetYearlySummary(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.budgetService.GetYearlySummary(budgetID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetCategories handles listing the active categories of a budget.
// @Summary     Budget categories
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Budget ID"
// @Success     200 {array}  models.BudgetCategory "Active categories"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/categories [get]
func (h *BudgetHandler) GetCategories(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.budgetService.GetActiveCategories(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// AddCategory handles creating a category on a budget.
// @Summary     Add category to budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string          true "Budget ID"
// @Param       request body CategoryRequest true "Category details"
// @Success     201 {object} models.BudgetCategory "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Name already taken in this budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/add_category [post]
func (h *BudgetHandler) AddCategory(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(budgetID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": budgetID, "name": category.Name, "category_type": category.CategoryType})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetAvailableYears handles listing the years that have entries.
// @Summary     Years with entries
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} map[string][]int "Years ascending"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/years [get]
func (h *BudgetHandler) GetAvailableYears(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	years, err := h.budgetService.GetAvailableYears(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"years": years})
}

// GetSalaryBreakdown handles computing deductions for a gross salary.
// @Summary     Salary breakdown
// @Description Apply the budget's active salary reductions and taxes to a gross salary
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id    path  string true "Budget ID"
// @Param       gross query string true "Gross salary"
// @Success     200 {object} rules.SalaryBreakdown "Deductions and net salary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/salary-breakdown [get]
func (h *BudgetHandler) GetSalaryBreakdown(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	gross, err := decimal.NewFromString(c.Query("gross"))
	if err != nil || gross.IsNegative() {
		respondWithError(c, apperrors.WithFields(apperrors.ErrValidation, "",
			map[string]string{"gross": "Must be a non-negative amount"}))
		return
	}

	breakdown, err := h.budgetService.GetSalaryBreakdown(budgetID, gross)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// Export handles downloading a budget year.
// @Summary     Export budget
// @Description Download a budget year as an xlsx workbook, or the whole budget as an import payload with format=json
// @Tags        budgets
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id     path  string true  "Budget ID"
// @Param       year   query int    false "Year (default current year)"
// @Param       format query string false "xlsx (default) or json"
// @Success     200 {file}   file "Workbook"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/export [get]
func (h *BudgetHandler) Export(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	switch c.DefaultQuery("format", "xlsx") {
	case "json":
		payload, err := h.exportService.ExportPayload(budgetID)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, payload)
		return
	case "xlsx":
	default:
		respondWithError(c, apperrors.WithFields(apperrors.ErrValidation, "",
			map[string]string{"format": "Must be xlsx or json"}))
		return
	}

	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	data, err := h.exportService.LoadBudgetYear(budgetID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, data); err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(data)))
	c.Data(http.StatusOK, report.ContentTypeXLSX, buf.Bytes())
}

// GetChart handles rendering the yearly income/expense chart.
// @Summary     Yearly chart
// @Description PNG line chart of monthly income, expenses and running balance
// @Tags        budgets
// @Produce     png
// @Security    ApiKeyAuth
// @Param       id   path  string true  "Budget ID"
// @Param       year query int    false "Year (default current year)"
// @Success     200 {file}   file "Chart"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/chart [get]
func (h *BudgetHandler) GetChart(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.exportService.LoadBudgetYear(budgetID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteChart(&buf, data); err != nil {
		respondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, report.ContentTypePNG, buf.Bytes())
}

// Import handles creating a budget from an exported payload.
// @Summary     Import budget
// @Description Create a new budget with categories, entries, deductions and balances in one transaction
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body services.BudgetPayload true "Budget payload"
// @Success     201 {object} services.ImportResult "Imported budget and record counts"
// @Failure     400 {object} ErrorResponse "Invalid payload"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/import [post]
func (h *BudgetHandler) Import(c *gin.Context) {
	// Records are validated one by one during the import so errors can
	// name the offending record; binding would validate without that path.
	var payload services.BudgetPayload
	if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.importService.ImportBudget(payload)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("IMPORT_BUDGET", "budget", result.Budget.ID, c.ClientIP(),
		map[string]interface{}{"name": result.Budget.Name, "counts": result.Counts})

	c.JSON(http.StatusCreated, result)
}
