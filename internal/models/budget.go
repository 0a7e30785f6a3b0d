package models

// Budget is a named budget plan. It spans any number of years; entries carry
// their own month and year.
type Budget struct {
	Base
	Name     string `gorm:"size:200;not null;uniqueIndex:idx_budgets_name" json:"name"`
	Currency string `gorm:"size:3;not null" json:"currency"`

	// Relationships
	Categories       []BudgetCategory       `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"-"`
	SalaryReductions []SalaryReduction      `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"-"`
	TaxEntries       []TaxEntry             `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"-"`
	ActualBalances   []MonthlyActualBalance `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"-"`
}
