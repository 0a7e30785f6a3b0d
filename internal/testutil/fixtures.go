package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"budgetplaner/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Dec parses a decimal literal and panics on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// CreateTestBudget creates a CHF budget with a unique name.
func CreateTestBudget(t *testing.T, db *gorm.DB) *models.Budget {
	t.Helper()
	return CreateTestBudgetWithName(t, db, fmt.Sprintf("Test Budget %d", nextID()))
}

// CreateTestBudgetWithName creates a CHF budget with the given name.
func CreateTestBudgetWithName(t *testing.T, db *gorm.DB, name string) *models.Budget {
	t.Helper()

	budget := &models.Budget{Name: name, Currency: "CHF"}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestCategory creates an active monthly category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, budgetID string, categoryType models.CategoryType) *models.BudgetCategory {
	t.Helper()

	n := nextID()
	category := &models.BudgetCategory{
		BudgetID:     budgetID,
		Name:         fmt.Sprintf("Test Category %d", n),
		CategoryType: categoryType,
		Order:        int(n),
		IsActive:     true,
		InputMode:    models.InputModeMonthly,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestEntry creates an entry with the given planned amount and no
// actual amount. Status is left at WITHIN_BUDGET.
func CreateTestEntry(t *testing.T, db *gorm.DB, categoryID string, month, year int, planned string) *models.BudgetEntry {
	t.Helper()

	entry := &models.BudgetEntry{
		CategoryID:    categoryID,
		Month:         month,
		Year:          year,
		PlannedAmount: Dec(planned),
		Status:        models.StatusWithinBudget,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}

// CreateTestSalaryReduction creates an active reduction.
func CreateTestSalaryReduction(t *testing.T, db *gorm.DB, budgetID string, reductionType models.ReductionType, value string) *models.SalaryReduction {
	t.Helper()

	n := nextID()
	reduction := &models.SalaryReduction{
		BudgetID:      budgetID,
		Name:          fmt.Sprintf("Test Reduction %d", n),
		ReductionType: reductionType,
		Value:         Dec(value),
		Order:         int(n),
		IsActive:      true,
	}
	if err := db.Create(reduction).Error; err != nil {
		t.Fatalf("failed to create test salary reduction: %v", err)
	}
	return reduction
}

// CreateTestTaxEntry creates an active tax entry.
func CreateTestTaxEntry(t *testing.T, db *gorm.DB, budgetID, percentage string) *models.TaxEntry {
	t.Helper()

	n := nextID()
	tax := &models.TaxEntry{
		BudgetID:   budgetID,
		Name:       fmt.Sprintf("Test Tax %d", n),
		Percentage: Dec(percentage),
		Order:      int(n),
		IsActive:   true,
	}
	if err := db.Create(tax).Error; err != nil {
		t.Fatalf("failed to create test tax entry: %v", err)
	}
	return tax
}

// CreateTestActualBalance records actual income and expenses for a month.
func CreateTestActualBalance(t *testing.T, db *gorm.DB, budgetID string, month, year int, income, expenses string) *models.MonthlyActualBalance {
	t.Helper()

	balance := &models.MonthlyActualBalance{
		BudgetID:       budgetID,
		Month:          month,
		Year:           year,
		ActualIncome:   Dec(income),
		ActualExpenses: Dec(expenses),
	}
	if err := db.Create(balance).Error; err != nil {
		t.Fatalf("failed to create test actual balance: %v", err)
	}
	return balance
}

// CreateTestTemplate creates a template holding the given categories.
func CreateTestTemplate(t *testing.T, db *gorm.DB, categories []models.TemplateCategory) *models.BudgetTemplate {
	t.Helper()

	template := &models.BudgetTemplate{
		Name:       fmt.Sprintf("Test Template %d", nextID()),
		Categories: categories,
	}
	if err := db.Create(template).Error; err != nil {
		t.Fatalf("failed to create test template: %v", err)
	}
	return template
}
