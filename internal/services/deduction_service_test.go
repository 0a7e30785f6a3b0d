package services

import (
	"testing"

	"budgetplaner/internal/models"
	"budgetplaner/internal/pagination"
	"budgetplaner/internal/testutil"
)

func TestSalaryReductionService(t *testing.T) {
	t.Run("create_with_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSalaryReductionService(db)
		budget := testutil.CreateTestBudget(t, db)

		r, err := svc.CreateSalaryReduction(budget.ID, SalaryReductionInput{Name: strPtr("AHV"), Value: decPtr("5.3")})
		testutil.AssertNoError(t, err)
		if r.ReductionType != models.ReductionTypePercentage {
			t.Errorf("expected PERCENTAGE default, got %s", r.ReductionType)
		}
		if !r.IsActive {
			t.Error("expected reduction to be active")
		}
	})

	t.Run("percentage_above_100", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSalaryReductionService(db)
		budget := testutil.CreateTestBudget(t, db)

		_, err := svc.CreateSalaryReduction(budget.ID, SalaryReductionInput{Name: strPtr("Too much"), Value: decPtr("120")})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")

		fixed := models.ReductionTypeFixed
		_, err = svc.CreateSalaryReduction(budget.ID, SalaryReductionInput{Name: strPtr("Insurance"), ReductionType: &fixed, Value: decPtr("420")})
		testutil.AssertNoError(t, err)
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSalaryReductionService(db)
		budget := testutil.CreateTestBudget(t, db)
		existing := testutil.CreateTestSalaryReduction(t, db, budget.ID, models.ReductionTypeFixed, "100")

		_, err := svc.CreateSalaryReduction(budget.ID, SalaryReductionInput{Name: &existing.Name})
		testutil.AssertAppError(t, err, "DUPLICATE_NAME")
	})

	t.Run("list_update_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSalaryReductionService(db)
		budget := testutil.CreateTestBudget(t, db)
		other := testutil.CreateTestBudget(t, db)
		r := testutil.CreateTestSalaryReduction(t, db, budget.ID, models.ReductionTypeFixed, "100")
		testutil.CreateTestSalaryReduction(t, db, other.ID, models.ReductionTypeFixed, "100")

		list, err := svc.ListSalaryReductions(pagination.PageRequest{}, budget.ID)
		testutil.AssertNoError(t, err)
		if list.TotalItems != 1 {
			t.Errorf("expected 1 reduction, got %d", list.TotalItems)
		}

		inactive := false
		updated, err := svc.UpdateSalaryReduction(r.ID, SalaryReductionInput{IsActive: &inactive, Value: decPtr("150")})
		testutil.AssertNoError(t, err)
		if updated.IsActive || !updated.Value.Equal(testutil.Dec("150")) {
			t.Errorf("unexpected update result: %+v", updated)
		}

		testutil.AssertNoError(t, svc.DeleteSalaryReduction(r.ID))
		_, err = svc.GetSalaryReductionByID(r.ID)
		testutil.AssertAppError(t, err, "SALARY_REDUCTION_NOT_FOUND")
	})
}

func TestTaxService(t *testing.T) {
	t.Run("create_and_get", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTaxService(db)
		budget := testutil.CreateTestBudget(t, db)

		tax, err := svc.CreateTaxEntry(budget.ID, TaxEntryInput{Name: strPtr("Bundessteuer"), Percentage: decPtr("11.5"), Order: intPtr(2)})
		testutil.AssertNoError(t, err)

		got, err := svc.GetTaxEntryByID(tax.ID)
		testutil.AssertNoError(t, err)
		if !got.Percentage.Equal(testutil.Dec("11.5")) || got.Order != 2 || !got.IsActive {
			t.Errorf("unexpected tax entry: %+v", got)
		}
	})

	t.Run("unknown_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTaxService(db)

		_, err := svc.CreateTaxEntry("0190d4c2-0000-7000-8000-000000000000", TaxEntryInput{Name: strPtr("X")})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("rename_collision", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTaxService(db)
		budget := testutil.CreateTestBudget(t, db)
		a := testutil.CreateTestTaxEntry(t, db, budget.ID, "5")
		b := testutil.CreateTestTaxEntry(t, db, budget.ID, "6")

		_, err := svc.UpdateTaxEntry(b.ID, TaxEntryInput{Name: &a.Name})
		testutil.AssertAppError(t, err, "DUPLICATE_NAME")
	})

	t.Run("delete_missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTaxService(db)

		testutil.AssertAppError(t, svc.DeleteTaxEntry("0190d4c2-0000-7000-8000-000000000000"), "TAX_ENTRY_NOT_FOUND")
	})
}
