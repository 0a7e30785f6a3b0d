package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgetplaner/internal/models"
	"budgetplaner/internal/services"
)

// DeductionHandler handles salary reduction and tax entry requests.
type DeductionHandler struct {
	reductionService services.SalaryReductionServicer
	taxService       services.TaxServicer
	auditService     services.AuditServicer
}

// NewDeductionHandler creates a new DeductionHandler.
func NewDeductionHandler(
	reductionService services.SalaryReductionServicer,
	taxService services.TaxServicer,
	auditService services.AuditServicer,
) *DeductionHandler {
	return &DeductionHandler{reductionService: reductionService, taxService: taxService, auditService: auditService}
}

// CreateSalaryReductionRequest represents the request payload for creating a salary reduction.
type CreateSalaryReductionRequest struct {
	Budget        string                `json:"budget" binding:"required,uuid"`
	Name          string                `json:"name" binding:"required,max=200"`
	ReductionType *models.ReductionType `json:"reduction_type" binding:"omitempty,reduction_type"`
	Value         *decimal.Decimal      `json:"value" binding:"required,dec_gte0,money"`
	Order         *int                  `json:"order" binding:"omitempty,min=0"`
	IsActive      *bool                 `json:"is_active"`
}

// UpdateSalaryReductionRequest represents the request payload for updating a salary reduction.
type UpdateSalaryReductionRequest struct {
	Name          *string               `json:"name" binding:"omitempty,min=1,max=200"`
	ReductionType *models.ReductionType `json:"reduction_type" binding:"omitempty,reduction_type"`
	Value         *decimal.Decimal      `json:"value" binding:"omitempty,dec_gte0,money"`
	Order         *int                  `json:"order" binding:"omitempty,min=0"`
	IsActive      *bool                 `json:"is_active"`
}

// CreateTaxEntryRequest represents the request payload for creating a tax entry.
type CreateTaxEntryRequest struct {
	Budget     string           `json:"budget" binding:"required,uuid"`
	Name       string           `json:"name" binding:"required,max=200"`
	Percentage *decimal.Decimal `json:"percentage" binding:"required,dec_gte0,dec_lte100,money"`
	Order      *int             `json:"order" binding:"omitempty,min=0"`
	IsActive   *bool            `json:"is_active"`
}

// UpdateTaxEntryRequest represents the request payload for updating a tax entry.
type UpdateTaxEntryRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Percentage *decimal.Decimal `json:"percentage" binding:"omitempty,dec_gte0,dec_lte100,money"`
	Order      *int             `json:"order" binding:"omitempty,min=0"`
	IsActive   *bool            `json:"is_active"`
}

// CreateSalaryReduction handles the creation of a salary reduction.
// @Summary     Create a salary reduction
// @Tags        salary-reductions
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateSalaryReductionRequest true "Reduction details"
// @Success     201 {object} models.SalaryReduction "Reduction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Name already taken in this budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /salary-reductions [post]
func (h *DeductionHandler) CreateSalaryReduction(c *gin.Context) {
	var req CreateSalaryReductionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	reduction, err := h.reductionService.CreateSalaryReduction(req.Budget, services.SalaryReductionInput{
		Name:          &req.Name,
		ReductionType: req.ReductionType,
		Value:         req.Value,
		Order:         req.Order,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_SALARY_REDUCTION", "salary_reduction", reduction.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": req.Budget, "name": reduction.Name, "value": reduction.Value})

	c.JSON(http.StatusCreated, gin.H{"salary_reduction": reduction})
}

// GetSalaryReductions handles listing salary reductions.
// @Summary     List salary reductions
// @Tags        salary-reductions
// @Produce     json
// @Security    ApiKeyAuth
// @Param       budget    query string false "Filter by budget ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 100, max 500)"
// @Success     200 {object} pagination.PageResponse[models.SalaryReduction] "Paginated reductions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /salary-reductions [get]
func (h *DeductionHandler) GetSalaryReductions(c *gin.Context) {
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

	result, err := h.reductionService.ListSalaryReductions(page, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSalaryReduction handles retrieving a specific salary reduction.
// @Summary     Get salary reduction by ID
// @Tags        salary-reductions
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Reduction ID"
// @Success     200 {object} models.SalaryReduction "Reduction details"
// @Failure     400 {object} ErrorResponse "Invalid reduction ID"
// @Failure     404 {object} ErrorResponse "Reduction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /salary-reductions/{id} [get]
func (h *DeductionHandler) GetSalaryReduction(c *gin.Context) {
	reductionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	reduction, err := h.reductionService.GetSalaryReductionByID(reductionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"salary_reduction": reduction})
}

// UpdateSalaryReduction handles partially updating a salary reduction.
// @Summary     Update salary reduction
// @Tags        salary-reductions
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string                       true "Reduction ID"
// @Param       request body UpdateSalaryReductionRequest true "Fields to change"
// @Success     200 {object} models.SalaryReduction "Updated reduction"
// @Failure     400 {object} ErrorResponse "Invalid input or reduction ID"
// @Failure     404 {object} ErrorResponse "Reduction not found"
// @Failure     409 {object} ErrorResponse "Name already taken in this budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /salary-reductions/{id} [put]
// @Router      /salary-reductions/{id} [patch]
func (h *DeductionHandler) UpdateSalaryReduction(c *gin.Context) {
	reductionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSalaryReductionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	reduction, err := h.reductionService.UpdateSalaryReduction(reductionID, services.SalaryReductionInput{
		Name:          req.Name,
		ReductionType: req.ReductionType,
		Value:         req.Value,
		Order:         req.Order,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_SALARY_REDUCTION", "salary_reduction", reductionID, c.ClientIP(),
		map[string]interface{}{"name": reduction.Name, "value": reduction.Value})

	c.JSON(http.StatusOK, gin.H{"salary_reduction": reduction})
}

// DeleteSalaryReduction handles deleting a salary reduction.
// @Summary     Delete salary reduction
// @Tags        salary-reductions
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Reduction ID"
// @Success     200 {object} MessageResponse "Reduction deleted"
// @Failure     400 {object} ErrorResponse "Invalid reduction ID"
// @Failure     404 {object} ErrorResponse "Reduction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /salary-reductions/{id} [delete]
func (h *DeductionHandler) DeleteSalaryReduction(c *gin.Context) {
	reductionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.reductionService.DeleteSalaryReduction(reductionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_SALARY_REDUCTION", "salary_reduction", reductionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Salary reduction deleted successfully"})
}

// CreateTaxEntry handles the creation of a tax entry.
// @Summary     Create a tax entry
// @Tags        taxes
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateTaxEntryRequest true "Tax details"
// @Success     201 {object} models.TaxEntry "Tax entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Name already taken in this budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /taxes [post]
func (h *DeductionHandler) CreateTaxEntry(c *gin.Context) {
	var req CreateTaxEntryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	tax, err := h.taxService.CreateTaxEntry(req.Budget, services.TaxEntryInput{
		Name:       &req.Name,
		Percentage: req.Percentage,
		Order:      req.Order,
		IsActive:   req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TAX_ENTRY", "tax_entry", tax.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": req.Budget, "name": tax.Name, "percentage": tax.Percentage})

	c.JSON(http.StatusCreated, gin.H{"tax_entry": tax})
}

// GetTaxEntries handles listing tax entries.
// @Summary     List tax entries
// @Tags        taxes
// @Produce     json
// @Security    ApiKeyAuth
// @Param       budget    query string false "Filter by budget ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 100, max 500)"
// @Success     200 {object} pagination.PageResponse[models.TaxEntry] "Paginated tax entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /taxes [get]
func (h *DeductionHandler) GetTaxEntries(c *gin.Context) {
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

	result, err := h.taxService.ListTaxEntries(page, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTaxEntry handles retrieving a specific tax entry.
// @Summary     Get tax entry by ID
// @Tags        taxes
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Tax entry ID"
// @Success     200 {object} models.TaxEntry "Tax entry details"
// @Failure     400 {object} ErrorResponse "Invalid tax entry ID"
// @Failure     404 {object} ErrorResponse "Tax entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /taxes/{id} [get]
func (h *DeductionHandler) GetTaxEntry(c *gin.Context) {
	taxID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tax, err := h.taxService.GetTaxEntryByID(taxID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tax_entry": tax})
}

// UpdateTaxEntry handles partially updating a tax entry.
// @Summary     Update tax entry
// @Tags        taxes
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string                true "Tax entry ID"
// @Param       request body UpdateTaxEntryRequest true "Fields to change"
// @Success     200 {object} models.TaxEntry "Updated tax entry"
// @Failure     400 {object} ErrorResponse "Invalid input or tax entry ID"
// @Failure     404 {object} ErrorResponse "Tax entry not found"
// @Failure     409 {object} ErrorResponse "Name already taken in this budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /taxes/{id} [put]
// @Router      /taxes/{id} [patch]
func (h *DeductionHandler) UpdateTaxEntry(c *gin.Context) {
	taxID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTaxEntryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	tax, err := h.taxService.UpdateTaxEntry(taxID, services.TaxEntryInput{
		Name:       req.Name,
		Percentage: req.Percentage,
		Order:      req.Order,
		IsActive:   req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_TAX_ENTRY", "tax_entry", taxID, c.ClientIP(),
		map[string]interface{}{"name": tax.Name, "percentage": tax.Percentage})

	c.JSON(http.StatusOK, gin.H{"tax_entry": tax})
}

// DeleteTaxEntry handles deleting a tax entry.
// @Summary     Delete tax entry
// @Tags        taxes
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Tax entry ID"
// @Success     200 {object} MessageResponse "Tax entry deleted"
// @Failure     400 {object} ErrorResponse "Invalid tax entry ID"
// @Failure     404 {object} ErrorResponse "Tax entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /taxes/{id} [delete]
func (h *DeductionHandler) DeleteTaxEntry(c *gin.Context) {
	taxID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.taxService.DeleteTaxEntry(taxID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TAX_ENTRY", "tax_entry", taxID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Tax entry deleted successfully"})
}
