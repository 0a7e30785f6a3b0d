package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/models"
	"budgetplaner/internal/uuid"
)

func setupTemplateRouter(svc *mockTemplateService, audit *mockAuditService) *gin.Engine {
	handler := NewTemplateHandler(svc, audit)
	r := gin.New()
	r.POST("/templates", handler.CreateTemplate)
	r.GET("/templates", handler.GetTemplates)
	r.POST("/templates/create_from_budget", handler.CreateFromBudget)
	r.GET("/templates/:id", handler.GetTemplate)
	r.PATCH("/templates/:id", handler.UpdateTemplate)
	r.DELETE("/templates/:id", handler.DeleteTemplate)
	r.POST("/templates/:id/apply", handler.ApplyTemplate)
	return r
}

func TestTemplateHandler_CreateTemplate(t *testing.T) {
	t.Run("returns 201 with categories", func(t *testing.T) {
		audit := &mockAuditService{}
		var got []models.TemplateCategory
		svc := &mockTemplateService{
			createTemplateFn: func(name string, categories []models.TemplateCategory) (*models.BudgetTemplate, error) {
				got = categories
				return &models.BudgetTemplate{Base: models.Base{ID: uuid.New()}, Name: name, Categories: categories}, nil
			},
		}
		r := setupTemplateRouter(svc, audit)

		body := `{"name":"Standard","categories":[
			{"name":"Lohn","category_type":"INCOME","order":0},
			{"name":"Ferien","category_type":"SAVINGS","order":1,"input_mode":"CUSTOM","custom_months":2,"custom_start_month":7}
		]}`
		rec := doRequest(r, http.MethodPost, "/templates", body)
		assertStatus(t, rec, http.StatusCreated)
		if len(got) != 2 || got[1].InputMode != models.InputModeCustom || *got[1].CustomStartMonth != 7 {
			t.Errorf("unexpected categories %+v", got)
		}
		template := parseJSON(t, rec)["template"].(map[string]interface{})
		if template["name"] != "Standard" {
			t.Errorf("unexpected template %v", template)
		}
		if len(audit.actions) != 1 || audit.actions[0] != "CREATE_TEMPLATE" {
			t.Errorf("expected CREATE_TEMPLATE audit, got %v", audit.actions)
		}
	})

	t.Run("validates nested categories", func(t *testing.T) {
		r := setupTemplateRouter(&mockTemplateService{}, &mockAuditService{})
		body := `{"name":"Standard","categories":[{"name":"Lohn","category_type":"SALARY"}]}`
		rec := doRequest(r, http.MethodPost, "/templates", body)
		assertStatus(t, rec, http.StatusBadRequest)
		assertFieldError(t, parseJSON(t, rec), "category_type")
	})
}

func TestTemplateHandler_UpdateTemplate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNil   bool
		wantCount int
	}{
		{"omitted categories are kept", `{"name":"Neu"}`, true, 0},
		{"empty list clears categories", `{"categories":[]}`, false, 0},
		{"list replaces categories", `{"categories":[{"name":"Lohn","category_type":"INCOME"}]}`, false, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []models.TemplateCategory
			svc := &mockTemplateService{
				updateTemplateFn: func(id string, _ *string, categories []models.TemplateCategory) (*models.BudgetTemplate, error) {
					got = categories
					return &models.BudgetTemplate{Base: models.Base{ID: id}}, nil
				},
			}
			r := setupTemplateRouter(svc, &mockAuditService{})

			rec := doRequest(r, http.MethodPatch, "/templates/"+uuid.New(), tc.body)
			assertStatus(t, rec, http.StatusOK)
			if (got == nil) != tc.wantNil {
				t.Errorf("expected nil=%v, got %v", tc.wantNil, got)
			}
			if len(got) != tc.wantCount {
				t.Errorf("expected %d categories, got %d", tc.wantCount, len(got))
			}
		})
	}
}

func TestTemplateHandler_ApplyTemplate(t *testing.T) {
	t.Run("returns created categories", func(t *testing.T) {
		budgetID := uuid.New()
		var gotBudget string
		svc := &mockTemplateService{
			applyTemplateFn: func(_, id string) ([]models.BudgetCategory, error) {
				gotBudget = id
				return []models.BudgetCategory{{Name: "Lohn"}, {Name: "Miete"}}, nil
			},
		}
		r := setupTemplateRouter(svc, &mockAuditService{})

		rec := doRequest(r, http.MethodPost, "/templates/"+uuid.New()+"/apply", `{"budget_id":"`+budgetID+`"}`)
		assertStatus(t, rec, http.StatusCreated)
		if gotBudget != budgetID {
			t.Errorf("expected budget %s, got %s", budgetID, gotBudget)
		}
		if categories := parseJSON(t, rec)["categories"].([]interface{}); len(categories) != 2 {
			t.Errorf("expected 2 categories, got %d", len(categories))
		}
	})

	t.Run("requires budget_id", func(t *testing.T) {
		r := setupTemplateRouter(&mockTemplateService{}, &mockAuditService{})
		rec := doRequest(r, http.MethodPost, "/templates/"+uuid.New()+"/apply", `{}`)
		assertStatus(t, rec, http.StatusBadRequest)
		assertFieldError(t, parseJSON(t, rec), "budget_id")
	})

	t.Run("returns 404 for unknown template", func(t *testing.T) {
		svc := &mockTemplateService{
			applyTemplateFn: func(_, _ string) ([]models.BudgetCategory, error) {
				return nil, apperrors.ErrTemplateNotFound
			},
		}
		r := setupTemplateRouter(svc, &mockAuditService{})

		rec := doRequest(r, http.MethodPost, "/templates/"+uuid.New()+"/apply", `{"budget_id":"`+uuid.New()+`"}`)
		assertStatus(t, rec, http.StatusNotFound)
		assertErrorCode(t, parseJSON(t, rec), "TEMPLATE_NOT_FOUND")
	})
}

func TestTemplateHandler_CreateFromBudget(t *testing.T) {
	tests := []struct {
		name    string
		created bool
		status  int
	}{
		{"new template", true, http.StatusCreated},
		{"overwritten template", false, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotOverwrite bool
			svc := &mockTemplateService{
				createFromBudgetFn: func(_, name string, overwrite bool) (*models.BudgetTemplate, bool, error) {
					gotOverwrite = overwrite
					return &models.BudgetTemplate{Base: models.Base{ID: uuid.New()}, Name: name}, tc.created, nil
				},
			}
			r := setupTemplateRouter(svc, &mockAuditService{})

			body := `{"budget_id":"` + uuid.New() + `","name":"Aus 2026","overwrite":true}`
			rec := doRequest(r, http.MethodPost, "/templates/create_from_budget", body)
			assertStatus(t, rec, tc.status)
			if !gotOverwrite {
				t.Error("expected overwrite to be passed")
			}
			if parseJSON(t, rec)["template"].(map[string]interface{})["name"] != "Aus 2026" {
				t.Errorf("unexpected body %s", rec.Body.String())
			}
		})
	}

	t.Run("returns 409 without overwrite", func(t *testing.T) {
		svc := &mockTemplateService{
			createFromBudgetFn: func(_, _ string, _ bool) (*models.BudgetTemplate, bool, error) {
				return nil, false, apperrors.ErrDuplicateName
			},
		}
		r := setupTemplateRouter(svc, &mockAuditService{})

		body := `{"budget_id":"` + uuid.New() + `","name":"Aus 2026"}`
		rec := doRequest(r, http.MethodPost, "/templates/create_from_budget", body)
		assertStatus(t, rec, http.StatusConflict)
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_NAME")
	})
}

func TestTemplateHandler_DeleteTemplate(t *testing.T) {
	audit := &mockAuditService{}
	r := setupTemplateRouter(&mockTemplateService{}, audit)

	rec := doRequest(r, http.MethodDelete, "/templates/"+uuid.New(), "")
	assertStatus(t, rec, http.StatusOK)
	if len(audit.actions) != 1 || audit.actions[0] != "DELETE_TEMPLATE" {
		t.Errorf("expected DELETE_TEMPLATE audit, got %v", audit.actions)
	}
}
