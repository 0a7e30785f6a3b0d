package services

import (
	"encoding/json"
	"testing"

	"budgetplaner/internal/models"
	"budgetplaner/internal/testutil"
)

func TestLoadBudgetYear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExportService(db)

	budget := testutil.CreateTestBudget(t, db)
	salary := testutil.CreateTestCategory(t, db, budget.ID, models.CategoryTypeIncome)
	old := testutil.CreateTestCategory(t, db, budget.ID, models.CategoryTypeSavings)
	db.Model(old).Update("is_active", false)
	testutil.CreateTestEntry(t, db, salary.ID, 1, 2026, "5000")
	testutil.CreateTestEntry(t, db, salary.ID, 1, 2025, "4000")
	testutil.CreateTestTaxEntry(t, db, budget.ID, "10")

	data, err := svc.LoadBudgetYear(budget.ID, 2026)
	testutil.AssertNoError(t, err)

	if len(data.Categories) != 1 {
		t.Errorf("expected only active categories, got %d", len(data.Categories))
	}
	if len(data.Entries) != 1 || data.Entries[0].Category == nil {
		t.Errorf("expected 1 entry of 2026 with its category, got %+v", data.Entries)
	}
	if len(data.Taxes) != 1 {
		t.Errorf("expected 1 tax, got %d", len(data.Taxes))
	}

	_, err = svc.LoadBudgetYear("0190d4c2-0000-7000-8000-000000000000", 2026)
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}

func TestExportImportRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	exporter := NewExportService(db)
	importer := NewImportService(db)
	entries := NewEntryService(db)

	budget := testutil.CreateTestBudgetWithName(t, db, "Original")
	salary := testutil.CreateTestCategory(t, db, budget.ID, models.CategoryTypeIncome)
	rent := testutil.CreateTestCategory(t, db, budget.ID, models.CategoryTypeFixedExpense)
	e1 := testutil.CreateTestEntry(t, db, salary.ID, 1, 2026, "3000")
	_, err := entries.UpdateActual(e1.ID, testutil.Dec("2600"))
	testutil.AssertNoError(t, err)
	testutil.CreateTestEntry(t, db, rent.ID, 1, 2026, "1200.50")
	// A stale status must not survive the round trip.
	db.Model(&models.BudgetEntry{}).Where("category_id = ?", rent.ID).Update("status", models.StatusOverBudget)
	testutil.CreateTestTaxEntry(t, db, budget.ID, "12.25")
	testutil.CreateTestSalaryReduction(t, db, budget.ID, models.ReductionTypeFixed, "300")
	testutil.CreateTestActualBalance(t, db, budget.ID, 1, 2026, "2600", "1200.50")

	payload, err := exporter.ExportPayload(budget.ID)
	testutil.AssertNoError(t, err)

	// Go through JSON as a client would.
	raw, err := json.Marshal(payload)
	testutil.AssertNoError(t, err)
	var decoded BudgetPayload
	testutil.AssertNoError(t, json.Unmarshal(raw, &decoded))

	result, err := importer.ImportBudget(decoded)
	testutil.AssertNoError(t, err)
	if result.Budget.Name == "Original" {
		t.Error("expected the imported budget to be renamed")
	}

	again, err := exporter.ExportPayload(result.Budget.ID)
	testutil.AssertNoError(t, err)

	if len(again.Categories) != len(payload.Categories) {
		t.Fatalf("expected %d categories, got %d", len(payload.Categories), len(again.Categories))
	}
	for i, c := range payload.Categories {
		got := again.Categories[i]
		if got.Name != c.Name || got.CategoryType != c.CategoryType || got.Order != c.Order || got.InputMode != c.InputMode {
			t.Errorf("category %d changed: %+v -> %+v", i, c, got)
		}
	}
	if len(again.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(again.Entries))
	}
	for i, e := range payload.Entries {
		got := again.Entries[i]
		if !got.PlannedAmount.Equal(e.PlannedAmount) || got.ActualAmount.Valid != e.ActualAmount.Valid ||
			(e.ActualAmount.Valid && !got.ActualAmount.Decimal.Equal(e.ActualAmount.Decimal)) {
			t.Errorf("entry %d amounts changed: %+v -> %+v", i, e, got)
		}
	}
	if len(again.TaxEntries) != 1 || len(again.SalaryReductions) != 1 || len(again.ActualBalances) != 1 {
		t.Errorf("deductions or balances lost: %+v", again)
	}

	var statuses []models.BudgetEntry
	db.Scopes(entriesOfBudget(result.Budget.ID)).Preload("Category").Order(entryOrder).Find(&statuses)
	for _, e := range statuses {
		want := models.StatusWithinBudget
		if e.Category.CategoryType == models.CategoryTypeIncome {
			want = models.StatusOverBudget
		}
		if e.Status != want {
			t.Errorf("%s entry: expected recomputed status %s, got %s", e.Category.Name, want, e.Status)
		}
	}
}
