package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MonthlyActualBalance records the real income and expenses of a month,
// separate from the planned figures held in entries.
type MonthlyActualBalance struct {
	Base
	BudgetID       string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_balance_budget_month_year" json:"budget_id"`
	Month          int             `gorm:"not null;uniqueIndex:idx_balance_budget_month_year" json:"month"`
	Year           int             `gorm:"not null;uniqueIndex:idx_balance_budget_month_year" json:"year"`
	ActualIncome   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"actual_income"`
	ActualExpenses decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"actual_expenses"`
}

// Balance returns income minus expenses.
func (b MonthlyActualBalance) Balance() decimal.Decimal {
	return b.ActualIncome.Sub(b.ActualExpenses)
}

// MarshalJSON includes the derived balance.
func (b MonthlyActualBalance) MarshalJSON() ([]byte, error) {
	type balance MonthlyActualBalance
	return json.Marshal(struct {
		balance
		Balance decimal.Decimal `json:"balance"`
	}{balance: balance(b), Balance: b.Balance()})
}
