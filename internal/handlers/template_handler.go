package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetplaner/internal/models"
	"budgetplaner/internal/services"
)

// TemplateHandler handles budget template requests.
type TemplateHandler struct {
	templateService services.TemplateServicer
	auditService    services.AuditServicer
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService services.TemplateServicer, auditService services.AuditServicer) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, auditService: auditService}
}

// TemplateCategoryRequest is the shape of one category in a template.
type TemplateCategoryRequest struct {
	Name             string              `json:"name" binding:"required,max=200"`
	CategoryType     models.CategoryType `json:"category_type" binding:"required,category_type"`
	Order            int                 `json:"order" binding:"min=0"`
	InputMode        models.InputMode    `json:"input_mode" binding:"omitempty,input_mode"`
	CustomMonths     *int                `json:"custom_months" binding:"omitempty,min=1,max=12"`
	CustomStartMonth *int                `json:"custom_start_month" binding:"omitempty,min=1,max=12"`
}

// CreateTemplateRequest represents the request payload for creating a template.
type CreateTemplateRequest struct {
	Name       string                    `json:"name" binding:"required,max=200"`
	Categories []TemplateCategoryRequest `json:"categories" binding:"omitempty,dive"`
}

// UpdateTemplateRequest represents the request payload for updating a
// template. Omitted categories are kept; an empty list clears them.
type UpdateTemplateRequest struct {
	Name       *string                   `json:"name" binding:"omitempty,min=1,max=200"`
	Categories []TemplateCategoryRequest `json:"categories" binding:"omitempty,dive"`
}

// ApplyTemplateRequest represents the request payload for applying a template.
type ApplyTemplateRequest struct {
	BudgetID string `json:"budget_id" binding:"required,uuid"`
}

// CreateFromBudgetRequest represents the request payload for capturing a
// budget's categories as a template.
type CreateFromBudgetRequest struct {
	BudgetID  string `json:"budget_id" binding:"required,uuid"`
	Name      string `json:"name" binding:"required,max=200"`
	Overwrite bool   `json:"overwrite"`
}

func shapes(in []TemplateCategoryRequest) []models.TemplateCategory {
	if in == nil {
		return nil
	}
	out := make([]models.TemplateCategory, 0, len(in))
	for _, c := range in {
		out = append(out, models.TemplateCategory{
			Name:             c.Name,
			CategoryType:     c.CategoryType,
			Order:            c.Order,
			InputMode:        c.InputMode,
			CustomMonths:     c.CustomMonths,
			CustomStartMonth: c.CustomStartMonth,
		})
	}
	return out
}

// CreateTemplate handles the creation of a template.
// @Summary     Create a template
// @Tags        templates
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateTemplateRequest true "Template details"
// @Success     201 {object} models.BudgetTemplate "Template created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Name already taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	template, err := h.templateService.CreateTemplate(req.Name, shapes(req.Categories))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TEMPLATE", "template", template.ID, c.ClientIP(),
		map[string]interface{}{"name": template.Name, "categories": len(template.Categories)})

	c.JSON(http.StatusCreated, gin.H{"template": template})
}

// GetTemplates handles listing templates.
// @Summary     List templates
// @Tags        templates
// @Produce     json
// @Security    ApiKeyAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 100, max 500)"
// @Success     200 {object} pagination.PageResponse[models.BudgetTemplate] "Paginated templates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /templates [get]
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.templateService.ListTemplates(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTemplate handles retrieving a specific template.
// @Summary     Get template by ID
// @Tags        templates
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Template ID"
// @Success     200 {object} models.BudgetTemplate "Template details"
// @Failure     400 {object} ErrorResponse "Invalid template ID"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	template, err := h.templateService.GetTemplateByID(templateID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// UpdateTemplate handles renaming a template or replacing its categories.
// @Summary     Update template
// @Tags        templates
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string                true "Template ID"
// @Param       request body UpdateTemplateRequest true "Fields to change"
// @Success     200 {object} models.BudgetTemplate "Updated template"
// @Failure     400 {object} ErrorResponse "Invalid input or template ID"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     409 {object} ErrorResponse "Name already taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /templates/{id} [put]
// @Router      /templates/{id} [patch]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTemplateRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	template, err := h.templateService.UpdateTemplate(templateID, req.Name, shapes(req.Categories))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_TEMPLATE", "template", templateID, c.ClientIP(),
		map[string]interface{}{"name": template.Name, "categories": len(template.Categories)})

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// DeleteTemplate handles deleting a template.
// @Summary     Delete template
// @Tags        templates
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Template ID"
// @Success     200 {object} MessageResponse "Template deleted"
// @Failure     400 {object} ErrorResponse "Invalid template ID"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.templateService.DeleteTemplate(templateID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TEMPLATE", "template", templateID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

// ApplyTemplate handles adding a template's categories to a budget.
// @Summary     Apply template
// @Description Create the template's categories that the budget does not have yet. Existing categories are left untouched.
// @Tags        templates
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string               true "Template ID"
// @Param       request body ApplyTemplateRequest true "Target budget"
// @Success     201 {array}  models.BudgetCategory "Newly created categories"
// @Failure     400 {object} ErrorResponse "Invalid input or template ID"
// @Failure     404 {object} ErrorResponse "Template or budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /templates/{id}/apply [post]
func (h *TemplateHandler) ApplyTemplate(c *gin.Context) {
	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ApplyTemplateRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	created, err := h.templateService.ApplyTemplate(templateID, req.BudgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("APPLY_TEMPLATE", "template", templateID, c.ClientIP(),
		map[string]interface{}{"budget_id": req.BudgetID, "created": len(created)})

	c.JSON(http.StatusCreated, gin.H{"categories": created})
}

// CreateFromBudget handles capturing a budget's active categories as a template.
// @Summary     Create template from budget
// @Description Responds 201 when a template was created and 200 when an existing one was overwritten
// @Tags        templates
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateFromBudgetRequest true "Source budget and template name"
// @Success     201 {object} models.BudgetTemplate "Template created"
// @Success     200 {object} models.BudgetTemplate "Template overwritten"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Name already taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /templates/create_from_budget [post]
func (h *TemplateHandler) CreateFromBudget(c *gin.Context) {
	var req CreateFromBudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	template, created, err := h.templateService.CreateFromBudget(req.BudgetID, req.Name, req.Overwrite)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TEMPLATE_FROM_BUDGET", "template", template.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": req.BudgetID, "name": template.Name, "overwrite": req.Overwrite})

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"template": template})
}
