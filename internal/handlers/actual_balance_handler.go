package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgetplaner/internal/services"
)

// ActualBalanceHandler handles monthly actual balance requests.
type ActualBalanceHandler struct {
	balanceService services.ActualBalanceServicer
	auditService   services.AuditServicer
}

// NewActualBalanceHandler creates a new ActualBalanceHandler.
func NewActualBalanceHandler(balanceService services.ActualBalanceServicer, auditService services.AuditServicer) *ActualBalanceHandler {
	return &ActualBalanceHandler{balanceService: balanceService, auditService: auditService}
}

// CreateActualBalanceRequest represents the request payload for recording a month's actual balance.
type CreateActualBalanceRequest struct {
	Budget         string           `json:"budget" binding:"required,uuid"`
	Month          int              `json:"month" binding:"required,min=1,max=12"`
	Year           int              `json:"year" binding:"required,min=2000,max=2100"`
	ActualIncome   *decimal.Decimal `json:"actual_income" binding:"omitempty,dec_gte0,money"`
	ActualExpenses *decimal.Decimal `json:"actual_expenses" binding:"omitempty,dec_gte0,money"`
}

// UpdateActualBalanceRequest represents the request payload for updating an actual balance.
type UpdateActualBalanceRequest struct {
	Month          *int             `json:"month" binding:"omitempty,min=1,max=12"`
	Year           *int             `json:"year" binding:"omitempty,min=2000,max=2100"`
	ActualIncome   *decimal.Decimal `json:"actual_income" binding:"omitempty,dec_gte0,money"`
	ActualExpenses *decimal.Decimal `json:"actual_expenses" binding:"omitempty,dec_gte0,money"`
}

// CreateActualBalance handles recording the actual income and expenses of a month.
// @Summary     Create an actual balance
// @Tags        actual-balances
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateActualBalanceRequest true "Balance details"
// @Success     201 {object} models.MonthlyActualBalance "Balance created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Balance for this month already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /actual-balances [post]
func (h *ActualBalanceHandler) CreateActualBalance(c *gin.Context) {
	var req CreateActualBalanceRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.balanceService.CreateActualBalance(req.Budget, services.ActualBalanceInput{
		Month:          &req.Month,
		Year:           &req.Year,
		ActualIncome:   req.ActualIncome,
		ActualExpenses: req.ActualExpenses,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_ACTUAL_BALANCE", "actual_balance", balance.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": req.Budget, "month": balance.Month, "year": balance.Year})

	c.JSON(http.StatusCreated, gin.H{"actual_balance": balance})
}

// GetActualBalances handles listing actual balances.
// @Summary     List actual balances
// @Tags        actual-balances
// @Produce     json
// @Security    ApiKeyAuth
// @Param       budget    query string false "Filter by budget ID"
// @Param       year      query int    false "Filter by year"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 100, max 500)"
// @Success     200 {object} pagination.PageResponse[models.MonthlyActualBalance] "Paginated balances"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /actual-balances [get]
func (h *ActualBalanceHandler) GetActualBalances(c *gin.Context) {
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
	year, err := parseQueryInt(c, "year", 2000, 2100)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.balanceService.ListActualBalances(page, budgetID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetActualBalance handles retrieving a specific actual balance.
// @Summary     Get actual balance by ID
// @Tags        actual-balances
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Balance ID"
// @Success     200 {object} models.MonthlyActualBalance "Balance details"
// @Failure     400 {object} ErrorResponse "Invalid balance ID"
// @Failure     404 {object} ErrorResponse "Balance not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /actual-balances/{id} [get]
func (h *ActualBalanceHandler) GetActualBalance(c *gin.Context) {
	balanceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.balanceService.GetActualBalanceByID(balanceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"actual_balance": balance})
}

// UpdateActualBalance handles partially updating an actual balance.
// @Summary     Update actual balance
// @Tags        actual-balances
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string                     true "Balance ID"
// @Param       request body UpdateActualBalanceRequest true "Fields to change"
// @Success     200 {object} models.MonthlyActualBalance "Updated balance"
// @Failure     400 {object} ErrorResponse "Invalid input or balance ID"
// @Failure     404 {object} ErrorResponse "Balance not found"
// @Failure     409 {object} ErrorResponse "Balance for this month already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /actual-balances/{id} [put]
// @Router      /actual-balances/{id} [patch]
func (h *ActualBalanceHandler) UpdateActualBalance(c *gin.Context) {
	balanceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateActualBalanceRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.balanceService.UpdateActualBalance(balanceID, services.ActualBalanceInput{
		Month:          req.Month,
		Year:           req.Year,
		ActualIncome:   req.ActualIncome,
		ActualExpenses: req.ActualExpenses,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_ACTUAL_BALANCE", "actual_balance", balanceID, c.ClientIP(),
		map[string]interface{}{"actual_income": balance.ActualIncome, "actual_expenses": balance.ActualExpenses})

	c.JSON(http.StatusOK, gin.H{"actual_balance": balance})
}

// DeleteActualBalance handles deleting an actual balance.
// @Summary     Delete actual balance
// @Tags        actual-balances
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Balance ID"
// @Success     200 {object} MessageResponse "Balance deleted"
// @Failure     400 {object} ErrorResponse "Invalid balance ID"
// @Failure     404 {object} ErrorResponse "Balance not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /actual-balances/{id} [delete]
func (h *ActualBalanceHandler) DeleteActualBalance(c *gin.Context) {
	balanceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.balanceService.DeleteActualBalance(balanceID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_ACTUAL_BALANCE", "actual_balance", balanceID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Actual balance deleted successfully"})
}
