package rules

import (
	"github.com/shopspring/decimal"

	"budgetplaner/internal/models"
)

var (
	hundred = decimal.NewFromInt(100)
	nine    = decimal.NewFromInt(9)
	ten     = decimal.NewFromInt(10)
)

// EntryStatus classifies an entry's actual amount against its planned amount.
//
// Income should reach the plan: 100% or more is within budget, 90% up to 100%
// is a warning, anything less is over budget. Every other category type
// should stay below the plan: up to 90% is within budget, up to 100% is a
// warning, more is over budget. A missing or zero actual is always within
// budget.
func EntryStatus(planned decimal.Decimal, actual decimal.NullDecimal, categoryType models.CategoryType) models.EntryStatus {
	if !actual.Valid || actual.Decimal.IsZero() {
		return models.StatusWithinBudget
	}
	a := actual.Decimal

	if planned.IsZero() {
		if a.IsPositive() {
			return models.StatusOverBudget
		}
		return models.StatusWithinBudget
	}

	// actual/planned*100 against 90 and 100, cross-multiplied so the
	// thresholds are exact: p >= 100 <=> a >= planned, p >= 90 <=> 10a >= 9planned.
	atLeastPlan := a.Cmp(planned) >= 0
	atMostPlan := a.Cmp(planned) <= 0
	atLeastNinety := a.Mul(ten).Cmp(planned.Mul(nine)) >= 0
	atMostNinety := a.Mul(ten).Cmp(planned.Mul(nine)) <= 0

	if categoryType == models.CategoryTypeIncome {
		switch {
		case atLeastPlan:
			return models.StatusWithinBudget
		case atLeastNinety:
			return models.StatusWarning
		default:
			return models.StatusOverBudget
		}
	}

	switch {
	case atMostNinety:
		return models.StatusWithinBudget
	case atMostPlan:
		return models.StatusWarning
	default:
		return models.StatusOverBudget
	}
}

// ApplyStatus derives and stores the status of e. The category type must be
// passed explicitly since e.Category is not always loaded.
func ApplyStatus(e *models.BudgetEntry, categoryType models.CategoryType) {
	e.Status = EntryStatus(e.PlannedAmount, e.ActualAmount, categoryType)
}
