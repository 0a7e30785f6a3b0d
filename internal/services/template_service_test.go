package services

import (
	"testing"

	"gorm.io/gorm"

	"budgetplaner/internal/models"
	"budgetplaner/internal/pagination"
	"budgetplaner/internal/testutil"
)

func TestTemplateCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTemplateService(db)

	tmpl, err := svc.CreateTemplate("Basic", []models.TemplateCategory{
		{Name: "Salary", CategoryType: models.CategoryTypeIncome, Order: 0},
	})
	testutil.AssertNoError(t, err)

	_, err = svc.CreateTemplate("Basic", nil)
	testutil.AssertAppError(t, err, "DUPLICATE_NAME")

	empty, err := svc.CreateTemplate("Empty", nil)
	testutil.AssertNoError(t, err)
	if empty.Categories == nil {
		t.Error("expected empty, non-nil categories")
	}

	list, err := svc.ListTemplates(pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if list.TotalItems != 2 || list.Data[0].Name != "Basic" {
		t.Errorf("expected 2 templates ordered by name, got %+v", list.Data)
	}

	renamed := "Standard"
	updated, err := svc.UpdateTemplate(tmpl.ID, &renamed, nil)
	testutil.AssertNoError(t, err)
	if updated.Name != "Standard" || len(updated.Categories) != 1 {
		t.Errorf("unexpected update result: %+v", updated)
	}

	taken := "Empty"
	_, err = svc.UpdateTemplate(tmpl.ID, &taken, nil)
	testutil.AssertAppError(t, err, "DUPLICATE_NAME")

	testutil.AssertNoError(t, svc.DeleteTemplate(tmpl.ID))
	_, err = svc.GetTemplateByID(tmpl.ID)
	testutil.AssertAppError(t, err, "TEMPLATE_NOT_FOUND")
}

func TestApplyTemplate(t *testing.T) {
	t.Run("fresh_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTemplateService(db)
		budget := testutil.CreateTestBudget(t, db)
		tmpl := testutil.CreateTestTemplate(t, db, []models.TemplateCategory{
			{Name: "Salary", CategoryType: models.CategoryTypeIncome, Order: 0},
			{Name: "Rent", CategoryType: models.CategoryTypeFixedExpense, Order: 1},
		})

		created, err := svc.ApplyTemplate(tmpl.ID, budget.ID)
		testutil.AssertNoError(t, err)

		if len(created) != 2 {
			t.Fatalf("expected 2 created categories, got %d", len(created))
		}
		var stored []models.BudgetCategory
		db.Where("budget_id = ?", budget.ID).Order("sort_order").Find(&stored)
		if len(stored) != 2 {
			t.Fatalf("expected exactly 2 categories on the budget, got %d", len(stored))
		}
		if stored[0].Name != "Salary" || stored[0].CategoryType != models.CategoryTypeIncome {
			t.Errorf("unexpected first category %+v", stored[0])
		}
		if stored[1].Name != "Rent" || stored[1].CategoryType != models.CategoryTypeFixedExpense {
			t.Errorf("unexpected second category %+v", stored[1])
		}
		for _, c := range stored {
			if c.YearlyAmount.Valid {
				t.Errorf("category %s should have no yearly amount", c.Name)
			}
			if !c.IsActive || c.InputMode != models.InputModeMonthly {
				t.Errorf("category %s should be active MONTHLY, got %v %s", c.Name, c.IsActive, c.InputMode)
			}
		}
	})

	t.Run("existing_categories_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTemplateService(db)
		categories := NewCategoryService(db)
		budget := testutil.CreateTestBudget(t, db)

		savings := models.CategoryTypeSavings
		existing, err := categories.CreateCategory(budget.ID, CategoryInput{Name: strPtr("Salary"), CategoryType: &savings, YearlyAmount: decPtr("1200")})
		testutil.AssertNoError(t, err)

		tmpl := testutil.CreateTestTemplate(t, db, []models.TemplateCategory{
			{Name: "Salary", CategoryType: models.CategoryTypeIncome},
			{Name: "Food", CategoryType: models.CategoryTypeVariableExpense, InputMode: models.InputModeCustom, CustomMonths: intPtr(6), CustomStartMonth: intPtr(3)},
		})

		created, err := svc.ApplyTemplate(tmpl.ID, budget.ID)
		testutil.AssertNoError(t, err)
		if len(created) != 1 || created[0].Name != "Food" {
			t.Fatalf("expected only Food to be created, got %+v", created)
		}
		if created[0].InputMode != models.InputModeCustom || *created[0].CustomMonths != 6 || *created[0].CustomStartMonth != 3 {
			t.Errorf("custom fields not copied: %+v", created[0])
		}

		reloaded, err := categories.GetCategoryByID(existing.ID)
		testutil.AssertNoError(t, err)
		if reloaded.CategoryType != models.CategoryTypeSavings || !reloaded.YearlyAmount.Valid {
			t.Errorf("existing category was modified: %+v", reloaded)
		}

		again, err := svc.ApplyTemplate(tmpl.ID, budget.ID)
		testutil.AssertNoError(t, err)
		if len(again) != 0 {
			t.Errorf("expected no categories on second apply, got %d", len(again))
		}
	})

	t.Run("unknown_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTemplateService(db)
		tmpl := testutil.CreateTestTemplate(t, db, nil)

		_, err := svc.ApplyTemplate(tmpl.ID, "0190d4c2-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestCreateFromBudget(t *testing.T) {
	setup := func(t *testing.T) (*models.Budget, TemplateServicer, func()) {
		db := testutil.SetupTestDB(t)
		svc := NewTemplateService(db)
		budget := testutil.CreateTestBudget(t, db)

		salary := testutil.CreateTestCategory(t, db, budget.ID, models.CategoryTypeIncome)
		db.Model(salary).Update("yearly_amount", testutil.Dec("60000"))
		testutil.CreateTestCategory(t, db, budget.ID, models.CategoryTypeFixedExpense)
		inactive := testutil.CreateTestCategory(t, db, budget.ID, models.CategoryTypeSavings)
		db.Model(inactive).Update("is_active", false)
		testutil.CreateTestEntry(t, db, salary.ID, 1, 2026, "5000")

		return budget, svc, func() { testutil.TeardownTestDB(t, db) }
	}

	t.Run("creates_template_from_active_categories", func(t *testing.T) {
		budget, svc, teardown := setup(t)
		defer teardown()

		tmpl, created, err := svc.CreateFromBudget(budget.ID, "Snapshot", false)
		testutil.AssertNoError(t, err)
		if !created {
			t.Error("expected a new template")
		}
		if len(tmpl.Categories) != 2 {
			t.Fatalf("expected 2 active categories captured, got %d", len(tmpl.Categories))
		}
		if tmpl.Categories[0].CategoryType != models.CategoryTypeIncome {
			t.Errorf("expected categories in display order, got %+v", tmpl.Categories)
		}
	})

	t.Run("duplicate_without_overwrite", func(t *testing.T) {
		budget, svc, teardown := setup(t)
		defer teardown()

		original, err := svc.CreateTemplate("Snapshot", []models.TemplateCategory{{Name: "Keep", CategoryType: models.CategoryTypeIncome}})
		testutil.AssertNoError(t, err)

		_, _, err = svc.CreateFromBudget(budget.ID, "Snapshot", false)
		testutil.AssertAppError(t, err, "DUPLICATE_NAME")

		unchanged, err := svc.GetTemplateByID(original.ID)
		testutil.AssertNoError(t, err)
		if len(unchanged.Categories) != 1 || unchanged.Categories[0].Name != "Keep" {
			t.Errorf("existing template was modified: %+v", unchanged.Categories)
		}
	})

	t.Run("overwrite_replaces_categories", func(t *testing.T) {
		budget, svc, teardown := setup(t)
		defer teardown()

		original, err := svc.CreateTemplate("Snapshot", []models.TemplateCategory{{Name: "Old", CategoryType: models.CategoryTypeIncome}})
		testutil.AssertNoError(t, err)

		tmpl, created, err := svc.CreateFromBudget(budget.ID, "Snapshot", true)
		testutil.AssertNoError(t, err)
		if created {
			t.Error("expected the existing template to be updated")
		}
		if tmpl.ID != original.ID || len(tmpl.Categories) != 2 {
			t.Errorf("expected template %s with 2 categories, got %s with %d", original.ID, tmpl.ID, len(tmpl.Categories))
		}
	})
}

func TestCreateFromBudget_NameTakenConcurrently(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTemplateService(db)
	budget := testutil.CreateTestBudget(t, db)
	testutil.CreateTestCategory(t, db, budget.ID, models.CategoryTypeIncome)

	// Another writer creates the template after the name lookup came back empty.
	inserted := false
	err := db.Callback().Create().Before("gorm:create").Register("test:insert_competing_template", func(tx *gorm.DB) {
		tmpl, ok := tx.Statement.Dest.(*models.BudgetTemplate)
		if !ok || inserted || tmpl.Name != "Snapshot" {
			return
		}
		inserted = true
		competing := &models.BudgetTemplate{Name: "Snapshot", Categories: []models.TemplateCategory{}}
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(competing).Error; err != nil {
			t.Errorf("failed to insert competing template: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}

	_, created, err := svc.CreateFromBudget(budget.ID, "Snapshot", false)
	testutil.AssertAppError(t, err, "DUPLICATE_NAME")
	if !inserted {
		t.Fatal("expected the competing insert to run")
	}
	if created {
		t.Error("expected created to be false on conflict")
	}
}
