package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/models"
	"budgetplaner/internal/pagination"
	"budgetplaner/internal/rules"
	"budgetplaner/internal/services"
	"budgetplaner/internal/uuid"
)

func setupCategoryRouter(svc *mockCategoryService, audit *mockAuditService) *gin.Engine {
	handler := NewCategoryHandler(svc, audit)
	r := gin.New()
	r.POST("/categories", handler.CreateCategory)
	r.GET("/categories", handler.GetCategories)
	r.GET("/categories/:id", handler.GetCategory)
	r.PUT("/categories/:id", handler.UpdateCategory)
	r.PATCH("/categories/:id", handler.UpdateCategory)
	r.PATCH("/categories/:id/reorder", handler.ReorderCategory)
	r.DELETE("/categories/:id", handler.DeleteCategory)
	r.GET("/categories/:id/monthly/:month", handler.GetMonthlyTotals)
	r.GET("/categories/:id/yearly", handler.GetYearlyTotals)
	return r
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockCategoryService{}
		audit := &mockAuditService{}
		budgetID := uuid.New()
		var gotBudget string
		var gotInput services.CategoryInput
		svc.createCategoryFn = func(id string, in services.CategoryInput) (*models.BudgetCategory, error) {
			gotBudget, gotInput = id, in
			return &models.BudgetCategory{Base: models.Base{ID: uuid.New()}, BudgetID: id, Name: *in.Name, CategoryType: *in.CategoryType}, nil
		}
		r := setupCategoryRouter(svc, audit)

		body := `{"budget":"` + budgetID + `","name":"Lebensmittel","category_type":"VARIABLE_EXPENSE","input_mode":"CUSTOM","custom_months":6,"custom_start_month":4,"is_active":false}`
		rec := doRequest(r, http.MethodPost, "/categories", body)
		assertStatus(t, rec, http.StatusCreated)
		if gotBudget != budgetID {
			t.Errorf("expected budget %s, got %s", budgetID, gotBudget)
		}
		if gotInput.InputMode == nil || *gotInput.InputMode != models.InputModeCustom {
			t.Errorf("expected CUSTOM input mode, got %v", gotInput.InputMode)
		}
		if gotInput.CustomMonths == nil || *gotInput.CustomMonths != 6 {
			t.Errorf("expected 6 custom months, got %v", gotInput.CustomMonths)
		}
		if gotInput.IsActive == nil || *gotInput.IsActive {
			t.Errorf("expected is_active false, got %v", gotInput.IsActive)
		}
		if len(audit.actions) != 1 || audit.actions[0] != "CREATE_CATEGORY" {
			t.Errorf("expected CREATE_CATEGORY audit, got %v", audit.actions)
		}
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing budget", `{"name":"X","category_type":"INCOME"}`, "budget"},
		{"malformed budget", `{"budget":"12","name":"X","category_type":"INCOME"}`, "budget"},
		{"missing name", `{"budget":"` + uuid.New() + `","category_type":"INCOME"}`, "name"},
		{"negative order", `{"budget":"` + uuid.New() + `","name":"X","category_type":"INCOME","order":-1}`, "order"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := setupCategoryRouter(&mockCategoryService{}, &mockAuditService{})
			rec := doRequest(r, http.MethodPost, "/categories", tc.body)
			assertStatus(t, rec, http.StatusBadRequest)
			assertFieldError(t, parseJSON(t, rec), tc.field)
		})
	}

	t.Run("returns 404 for unknown budget", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(_ string, _ services.CategoryInput) (*models.BudgetCategory, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		r := setupCategoryRouter(svc, &mockAuditService{})

		body := `{"budget":"` + uuid.New() + `","name":"X","category_type":"INCOME"}`
		rec := doRequest(r, http.MethodPost, "/categories", body)
		assertStatus(t, rec, http.StatusNotFound)
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})
}

func TestCategoryHandler_GetCategories(t *testing.T) {
	t.Run("filters by budget", func(t *testing.T) {
		budgetID := uuid.New()
		var got string
		svc := &mockCategoryService{
			listCategoriesFn: func(page pagination.PageRequest, id string) (*pagination.PageResponse[models.BudgetCategory], error) {
				got = id
				resp := pagination.NewPageResponse([]models.BudgetCategory{{Name: "Lohn"}}, 1, pagination.DefaultPageSize, 1)
				return &resp, nil
			},
		}
		r := setupCategoryRouter(svc, &mockAuditService{})

		rec := doRequest(r, http.MethodGet, "/categories?budget="+budgetID, "")
		assertStatus(t, rec, http.StatusOK)
		if got != budgetID {
			t.Errorf("expected filter %s, got %q", budgetID, got)
		}
		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) != 1 {
			t.Errorf("expected 1 category, got %d", len(data))
		}
	})

	t.Run("rejects malformed budget filter", func(t *testing.T) {
		r := setupCategoryRouter(&mockCategoryService{}, &mockAuditService{})
		rec := doRequest(r, http.MethodGet, "/categories?budget=abc", "")
		assertStatus(t, rec, http.StatusBadRequest)
		assertFieldError(t, parseJSON(t, rec), "budget")
	})
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	t.Run("leaves omitted fields nil", func(t *testing.T) {
		var got services.CategoryInput
		svc := &mockCategoryService{
			updateCategoryFn: func(id string, in services.CategoryInput) (*models.BudgetCategory, error) {
				got = in
				return &models.BudgetCategory{Base: models.Base{ID: id}, Name: "Wohnen"}, nil
			},
		}
		r := setupCategoryRouter(svc, &mockAuditService{})

		rec := doRequest(r, http.MethodPatch, "/categories/"+uuid.New(), `{"yearly_amount":"2400"}`)
		assertStatus(t, rec, http.StatusOK)
		if got.Name != nil || got.CategoryType != nil || got.Order != nil {
			t.Errorf("expected only yearly_amount, got %+v", got)
		}
		if got.YearlyAmount == nil || !got.YearlyAmount.Equal(decimal.NewFromInt(2400)) {
			t.Errorf("expected yearly amount 2400, got %v", got.YearlyAmount)
		}
	})

	t.Run("explicit null clears nullable fields", func(t *testing.T) {
		var got services.CategoryInput
		svc := &mockCategoryService{
			updateCategoryFn: func(id string, in services.CategoryInput) (*models.BudgetCategory, error) {
				got = in
				return &models.BudgetCategory{Base: models.Base{ID: id}, Name: "Wohnen"}, nil
			},
		}
		r := setupCategoryRouter(svc, &mockAuditService{})

		rec := doRequest(r, http.MethodPatch, "/categories/"+uuid.New(), `{"yearly_amount":null,"custom_months":null,"name":"Wohnen"}`)
		assertStatus(t, rec, http.StatusOK)
		if !got.ClearYearlyAmount || !got.ClearCustomMonths {
			t.Errorf("expected yearly_amount and custom_months cleared, got %+v", got)
		}
		if got.ClearCustomStartMonth {
			t.Error("expected omitted custom_start_month to be kept")
		}
		if got.Name == nil || *got.Name != "Wohnen" {
			t.Errorf("expected name Wohnen, got %v", got.Name)
		}
	})

	t.Run("returns 409 for duplicate name", func(t *testing.T) {
		svc := &mockCategoryService{
			updateCategoryFn: func(_ string, _ services.CategoryInput) (*models.BudgetCategory, error) {
				return nil, apperrors.WithMessage(apperrors.ErrDuplicateName, "A category with this name already exists in this budget")
			},
		}
		r := setupCategoryRouter(svc, &mockAuditService{})

		rec := doRequest(r, http.MethodPut, "/categories/"+uuid.New(), `{"name":"Miete"}`)
		assertStatus(t, rec, http.StatusConflict)
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_NAME")
	})
}

func TestCategoryHandler_ReorderCategory(t *testing.T) {
	t.Run("moves category", func(t *testing.T) {
		audit := &mockAuditService{}
		var gotOrder int
		svc := &mockCategoryService{
			reorderCategoryFn: func(_ string, order int) (*models.BudgetCategory, error) {
				gotOrder = order
				return &models.BudgetCategory{Order: order}, nil
			},
		}
		r := setupCategoryRouter(svc, audit)

		rec := doRequest(r, http.MethodPatch, "/categories/"+uuid.New()+"/reorder", `{"order":0}`)
		assertStatus(t, rec, http.StatusOK)
		if gotOrder != 0 {
			t.Errorf("expected order 0, got %d", gotOrder)
		}
		if len(audit.actions) != 1 || audit.actions[0] != "REORDER_CATEGORY" {
			t.Errorf("expected REORDER_CATEGORY audit, got %v", audit.actions)
		}
	})

	t.Run("requires order", func(t *testing.T) {
		r := setupCategoryRouter(&mockCategoryService{}, &mockAuditService{})
		rec := doRequest(r, http.MethodPatch, "/categories/"+uuid.New()+"/reorder", `{}`)
		assertStatus(t, rec, http.StatusBadRequest)
		assertFieldError(t, parseJSON(t, rec), "order")
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns message on success", func(t *testing.T) {
		r := setupCategoryRouter(&mockCategoryService{}, &mockAuditService{})
		rec := doRequest(r, http.MethodDelete, "/categories/"+uuid.New(), "")
		assertStatus(t, rec, http.StatusOK)
		if parseJSON(t, rec)["message"] != "Category deleted successfully" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockCategoryService{
			deleteCategoryFn: func(_ string) error { return apperrors.ErrCategoryNotFound },
		}
		r := setupCategoryRouter(svc, &mockAuditService{})

		rec := doRequest(r, http.MethodDelete, "/categories/"+uuid.New(), "")
		assertStatus(t, rec, http.StatusNotFound)
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}

func TestCategoryHandler_Totals(t *testing.T) {
	svc := &mockCategoryService{
		getMonthlyTotalsFn: func(_ string, month, year int) (*rules.CategoryTotals, error) {
			return &rules.CategoryTotals{Month: month, Year: year, TotalPlanned: decimal.NewFromInt(100), TotalActual: decimal.NewFromInt(80)}, nil
		},
		getYearlyTotalsFn: func(_ string, year int) (*rules.CategoryTotals, error) {
			return &rules.CategoryTotals{Year: year, TotalPlanned: decimal.NewFromInt(1200)}, nil
		},
	}
	r := setupCategoryRouter(svc, &mockAuditService{})

	t.Run("monthly", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/categories/"+uuid.New()+"/monthly/5?year=2026", "")
		assertStatus(t, rec, http.StatusOK)
		result := parseJSON(t, rec)
		if result["month"] != float64(5) || result["total_actual"] != "80" {
			t.Errorf("unexpected totals %v", result)
		}
	})

	t.Run("yearly", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/categories/"+uuid.New()+"/yearly?year=2026", "")
		assertStatus(t, rec, http.StatusOK)
		result := parseJSON(t, rec)
		if _, ok := result["month"]; ok {
			t.Errorf("expected no month in yearly totals, got %v", result)
		}
		if result["total_planned"] != "1200" {
			t.Errorf("unexpected totals %v", result)
		}
	})
}
