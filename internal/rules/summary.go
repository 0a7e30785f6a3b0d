package rules

import (
	"github.com/shopspring/decimal"

	"budgetplaner/internal/models"
)

// EffectiveAmount is the amount a budget-level report uses for an entry:
// the actual amount when one was recorded and is non-zero, else the plan.
func EffectiveAmount(e models.BudgetEntry) decimal.Decimal {
	if e.ActualAmount.Valid && !e.ActualAmount.Decimal.IsZero() {
		return e.ActualAmount.Decimal
	}
	return e.PlannedAmount
}

// MonthlySummary is the income, expenses and balance of one budget month.
type MonthlySummary struct {
	Month          int                  `json:"month"`
	Year           int                  `json:"year"`
	TotalIncome    decimal.Decimal      `json:"total_income"`
	TotalExpenses  decimal.Decimal      `json:"total_expenses"`
	Balance        decimal.Decimal      `json:"balance"`
	RunningBalance *decimal.Decimal     `json:"running_balance,omitempty"`
	Entries        []models.BudgetEntry `json:"entries,omitempty"`
}

// YearlySummary aggregates the twelve monthly summaries of a year.
type YearlySummary struct {
	Year             int              `json:"year"`
	TotalIncome      decimal.Decimal  `json:"total_income"`
	TotalExpenses    decimal.Decimal  `json:"total_expenses"`
	Balance          decimal.Decimal  `json:"balance"`
	MonthlySummaries []MonthlySummary `json:"monthly_summaries"`
}

// SummarizeMonth totals the entries of month/year. Entries of other months
// are ignored. Entries must have their Category preloaded; INCOME entries
// count as income and every other type as expense.
func SummarizeMonth(month, year int, entries []models.BudgetEntry) MonthlySummary {
	summary := MonthlySummary{
		Month:         month,
		Year:          year,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Entries:       []models.BudgetEntry{},
	}

	for _, e := range entries {
		if e.Month != month || e.Year != year {
			continue
		}
		amount := EffectiveAmount(e)
		if isIncome(e) {
			summary.TotalIncome = summary.TotalIncome.Add(amount)
		} else {
			summary.TotalExpenses = summary.TotalExpenses.Add(amount)
		}
		summary.Entries = append(summary.Entries, e)
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

// SummarizeYear builds summaries for months 1..12 of year with a running
// balance, dropping the per-month entry lists.
func SummarizeYear(year int, entries []models.BudgetEntry) YearlySummary {
	summary := YearlySummary{
		Year:             year,
		TotalIncome:      decimal.Zero,
		TotalExpenses:    decimal.Zero,
		MonthlySummaries: make([]MonthlySummary, 0, 12),
	}

	running := decimal.Zero
	for month := 1; month <= 12; month++ {
		m := SummarizeMonth(month, year, entries)
		m.Entries = nil
		running = running.Add(m.Balance)
		r := running
		m.RunningBalance = &r

		summary.TotalIncome = summary.TotalIncome.Add(m.TotalIncome)
		summary.TotalExpenses = summary.TotalExpenses.Add(m.TotalExpenses)
		summary.MonthlySummaries = append(summary.MonthlySummaries, m)
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

// CategoryTotals is the planned and actual sum of a category's entries.
type CategoryTotals struct {
	Month        int             `json:"month,omitempty"`
	Year         int             `json:"year"`
	TotalPlanned decimal.Decimal `json:"total_planned"`
	TotalActual  decimal.Decimal `json:"total_actual"`
}

// TotalCategory sums planned and actual amounts independently, counting a
// missing actual as zero. Unlike the budget-level summaries it never falls
// back from actual to planned.
func TotalCategory(entries []models.BudgetEntry) (planned, actual decimal.Decimal) {
	planned, actual = decimal.Zero, decimal.Zero
	for _, e := range entries {
		planned = planned.Add(e.PlannedAmount)
		if e.ActualAmount.Valid {
			actual = actual.Add(e.ActualAmount.Decimal)
		}
	}
	return planned, actual
}

func isIncome(e models.BudgetEntry) bool {
	return e.Category != nil && e.Category.CategoryType == models.CategoryTypeIncome
}
