package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgetplaner/internal/models"
	"budgetplaner/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// CategoryRequest represents the request payload for adding a category to a
// known budget.
type CategoryRequest struct {
	Name             string              `json:"name" binding:"required,max=200"`
	CategoryType     models.CategoryType `json:"category_type" binding:"required,category_type"`
	Order            *int                `json:"order" binding:"omitempty,min=0"`
	IsActive         *bool               `json:"is_active"`
	InputMode        *models.InputMode   `json:"input_mode" binding:"omitempty,input_mode"`
	CustomMonths     *int                `json:"custom_months" binding:"omitempty,min=1,max=12"`
	CustomStartMonth *int                `json:"custom_start_month" binding:"omitempty,min=1,max=12"`
	YearlyAmount     *decimal.Decimal    `json:"yearly_amount" binding:"omitempty,dec_gte0,money"`
}

func (r CategoryRequest) input() services.CategoryInput {
	return services.CategoryInput{
		Name:             &r.Name,
		CategoryType:     &r.CategoryType,
		Order:            r.Order,
		IsActive:         r.IsActive,
		InputMode:        r.InputMode,
		CustomMonths:     r.CustomMonths,
		CustomStartMonth: r.CustomStartMonth,
		YearlyAmount:     r.YearlyAmount,
	}
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	Budget string `json:"budget" binding:"required,uuid"`
	CategoryRequest
}

// UpdateCategoryRequest represents the request payload for updating a category.
// An explicit null clears custom_months, custom_start_month or yearly_amount.
type UpdateCategoryRequest struct {
	Name             *string              `json:"name" binding:"omitempty,min=1,max=200"`
	CategoryType     *models.CategoryType `json:"category_type" binding:"omitempty,category_type"`
	Order            *int                 `json:"order" binding:"omitempty,min=0"`
	IsActive         *bool                `json:"is_active"`
	InputMode        *models.InputMode    `json:"input_mode" binding:"omitempty,input_mode"`
	CustomMonths     *int                 `json:"custom_months" binding:"omitempty,min=1,max=12"`
	CustomStartMonth *int                 `json:"custom_start_month" binding:"omitempty,min=1,max=12"`
	YearlyAmount     *decimal.Decimal     `json:"yearly_amount" binding:"omitempty,dec_gte0,money"`
}

// ReorderCategoryRequest represents the request payload for moving a category.
type ReorderCategoryRequest struct {
	Order *int `json:"order" binding:"required,min=0"`
}

// CreateCategory handles the creation of a new category.
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.BudgetCategory "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Name already taken in this budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(req.Budget, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": req.Budget, "name": category.Name, "category_type": category.CategoryType})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetCategories handles listing categories.
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Security    ApiKeyAuth
// @Param       budget    query string false "Filter by budget ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 100, max 500)"
// @Success     200 {object} pagination.PageResponse[models.BudgetCategory] "Paginated categories"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	budgetID, err := parseQueryID(c, "budget")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.categoryService.ListCategories(page, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCategory handles retrieving a specific category.
// @Summary     Get category by ID
// @Tags        categories
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} models.BudgetCategory "Category details"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory handles partially updating a category. Changing the type
// re-derives the status of all its entries.
// @Summary     Update category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string                true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to change"
// @Success     200 {object} models.BudgetCategory "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input or category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Name already taken in this budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [put]
// @Router      /categories/{id} [patch]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	nulls, err := bindJSONNulls(c, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(categoryID, services.CategoryInput{
		Name:                  req.Name,
		CategoryType:          req.CategoryType,
		Order:                 req.Order,
		IsActive:              req.IsActive,
		InputMode:             req.InputMode,
		CustomMonths:          req.CustomMonths,
		CustomStartMonth:      req.CustomStartMonth,
		YearlyAmount:          req.YearlyAmount,
		ClearCustomMonths:     nulls["custom_months"],
		ClearCustomStartMonth: nulls["custom_start_month"],
		ClearYearlyAmount:     nulls["yearly_amount"],
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_CATEGORY", "category", categoryID, c.ClientIP(),
		map[string]interface{}{"name": category.Name, "category_type": category.CategoryType})

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// ReorderCategory handles changing the display position of a category.
// @Summary     Reorder category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string                 true "Category ID"
// @Param       request body ReorderCategoryRequest true "New position"
// @Success     200 {object} models.BudgetCategory "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input or category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id}/reorder [patch]
func (h *CategoryHandler) ReorderCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReorderCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.ReorderCategory(categoryID, *req.Order)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("REORDER_CATEGORY", "category", categoryID, c.ClientIP(),
		map[string]interface{}{"order": *req.Order})

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles deleting a category with its entries.
// @Summary     Delete category
// @Tags        categories
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} MessageResponse "Category deleted"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_CATEGORY", "category", categoryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// GetMonthlyTotals handles the planned and actual totals of a category month.
// @Summary     Category monthly totals
// @Tags        categories
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id    path  string true  "Category ID"
// @Param       month path  int    true  "Month (1-12)"
// @Param       year  query int    false "Year (default current year)"
// @Success     200 {object} rules.CategoryTotals "Totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id}/monthly/{month} [get]
func (h *CategoryHandler) GetMonthlyTotals(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
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

	totals, err := h.categoryService.GetMonthlyTotals(categoryID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

// GetYearlyTotals handles the planned and actual totals of a category year.
// @Summary     Category yearly totals
// @Tags        categories
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id   path  string true  "Category ID"
// @Param       year query int    false "Year (default current year)"
// @Success     200 {object} rules.CategoryTotals "Totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id}/yearly [get]
func (h *CategoryHandler) GetYearlyTotals(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.categoryService.GetYearlyTotals(categoryID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}
