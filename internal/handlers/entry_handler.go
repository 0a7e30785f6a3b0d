package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgetplaner/internal/services"
)

// EntryHandler handles budget entry requests.
type EntryHandler struct {
	entryService services.EntryServicer
	auditService services.AuditServicer
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService services.EntryServicer, auditService services.AuditServicer) *EntryHandler {
	return &EntryHandler{entryService: entryService, auditService: auditService}
}

// CreateEntryRequest represents the request payload for creating an entry.
// Status is derived and cannot be set.
type CreateEntryRequest struct {
	Category      string           `json:"category" binding:"required,uuid"`
	Month         int              `json:"month" binding:"required,min=1,max=12"`
	Year          int              `json:"year" binding:"required,min=2000,max=2100"`
	PlannedAmount *decimal.Decimal `json:"planned_amount" binding:"omitempty,dec_gte0,money"`
	ActualAmount  *decimal.Decimal `json:"actual_amount" binding:"omitempty,dec_gte0,money"`
	Notes         *string          `json:"notes"`
}

// UpdateEntryRequest represents the request payload for updating an entry.
type UpdateEntryRequest struct {
	Category      *string          `json:"category" binding:"omitempty,uuid"`
	Month         *int             `json:"month" binding:"omitempty,min=1,max=12"`
	Year          *int             `json:"year" binding:"omitempty,min=2000,max=2100"`
	PlannedAmount *decimal.Decimal `json:"planned_amount" binding:"omitempty,dec_gte0,money"`
	ActualAmount  *decimal.Decimal `json:"actual_amount" binding:"omitempty,dec_gte0,money"`
	Notes         *string          `json:"notes"`
}

// UpdateActualRequest represents the request payload for recording an actual amount.
type UpdateActualRequest struct {
	ActualAmount *decimal.Decimal `json:"actual_amount" binding:"required,dec_gte0,money"`
}

// CreateEntry handles the creation of a new entry.
// @Summary     Create an entry
// @Tags        entries
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateEntryRequest true "Entry details"
// @Success     201 {object} models.BudgetEntry "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Entry for this month already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries [post]
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req CreateEntryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.entryService.CreateEntry(services.EntryInput{
		CategoryID:    &req.Category,
		Month:         &req.Month,
		Year:          &req.Year,
		PlannedAmount: req.PlannedAmount,
		ActualAmount:  req.ActualAmount,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_ENTRY", "entry", entry.ID, c.ClientIP(),
		map[string]interface{}{"category_id": entry.CategoryID, "month": entry.Month, "year": entry.Year})

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// GetEntries handles listing entries.
// @Summary     List entries
// @Tags        entries
// @Produce     json
// @Security    ApiKeyAuth
// @Param       budget    query string false "Filter by budget ID"
// @Param       category  query string false "Filter by category ID"
// @Param       month     query int    false "Filter by month"
// @Param       year      query int    false "Filter by year"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 100, max 500)"
// @Success     200 {object} pagination.PageResponse[models.BudgetEntry] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries [get]
func (h *EntryHandler) GetEntries(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var filter services.EntryFilter
	if filter.BudgetID, err = parseQueryID(c, "budget"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.CategoryID, err = parseQueryID(c, "category"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.Month, err = parseQueryInt(c, "month", 1, 12); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.Year, err = parseQueryInt(c, "year", 2000, 2100); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.entryService.ListEntries(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEntry handles retrieving a specific entry.
// @Summary     Get entry by ID
// @Tags        entries
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} models.BudgetEntry "Entry details"
// @Failure     400 {object} ErrorResponse "Invalid entry ID"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries/{id} [get]
func (h *EntryHandler) GetEntry(c *gin.Context) {
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.entryService.GetEntryByID(entryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// UpdateEntry handles partially updating an entry. The status is re-derived.
// @Summary     Update entry
// @Tags        entries
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string             true "Entry ID"
// @Param       request body UpdateEntryRequest true "Fields to change"
// @Success     200 {object} models.BudgetEntry "Updated entry"
// @Failure     400 {object} ErrorResponse "Invalid input or entry ID"
// @Failure     404 {object} ErrorResponse "Entry or category not found"
// @Failure     409 {object} ErrorResponse "Entry for this month already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries/{id} [put]
// @Router      /entries/{id} [patch]
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateEntryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.entryService.UpdateEntry(entryID, services.EntryInput{
		CategoryID:    req.Category,
		Month:         req.Month,
		Year:          req.Year,
		PlannedAmount: req.PlannedAmount,
		ActualAmount:  req.ActualAmount,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_ENTRY", "entry", entryID, c.ClientIP(),
		map[string]interface{}{"planned_amount": entry.PlannedAmount, "status": entry.Status})

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// UpdateActual handles recording the actual amount of an entry.
// @Summary     Record actual amount
// @Tags        entries
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string              true "Entry ID"
// @Param       request body UpdateActualRequest true "Actual amount"
// @Success     200 {object} models.BudgetEntry "Updated entry"
// @Failure     400 {object} ErrorResponse "Invalid input or entry ID"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries/{id}/actual [patch]
func (h *EntryHandler) UpdateActual(c *gin.Context) {
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateActualRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.entryService.UpdateActual(entryID, *req.ActualAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_ENTRY_ACTUAL", "entry", entryID, c.ClientIP(),
		map[string]interface{}{"actual_amount": *req.ActualAmount, "status": entry.Status})

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// DeleteEntry handles deleting an entry.
// @Summary     Delete entry
// @Tags        entries
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} MessageResponse "Entry deleted"
// @Failure     400 {object} ErrorResponse "Invalid entry ID"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries/{id} [delete]
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.entryService.DeleteEntry(entryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_ENTRY", "entry", entryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}
