package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome          CategoryType = "INCOME"
	CategoryTypeFixedExpense    CategoryType = "FIXED_EXPENSE"
	CategoryTypeVariableExpense CategoryType = "VARIABLE_EXPENSE"
	CategoryTypeSavings         CategoryType = "SAVINGS"
)

// CategoryTypes lists every category type in report order.
var CategoryTypes = []CategoryType{
	CategoryTypeIncome,
	CategoryTypeFixedExpense,
	CategoryTypeVariableExpense,
	CategoryTypeSavings,
}

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	for _, known := range CategoryTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Display returns the human-readable label of the type.
func (t CategoryType) Display() string {
	switch t {
	case CategoryTypeIncome:
		return "Income"
	case CategoryTypeFixedExpense:
		return "Fixed Expense"
	case CategoryTypeVariableExpense:
		return "Variable Expense"
	case CategoryTypeSavings:
		return "Savings"
	}
	return string(t)
}

// InputMode controls how amounts for a category are entered in the UI.
type InputMode string

const (
	InputModeMonthly InputMode = "MONTHLY"
	InputModeYearly  InputMode = "YEARLY"
	InputModeCustom  InputMode = "CUSTOM"
)

// BudgetCategory groups entries of one budget (e.g. Salary, Rent, Food).
// YearlyAmount, CustomMonths and CustomStartMonth are stored configuration
// for the input UI; nothing distributes them onto entries.
type BudgetCategory struct {
	Base
	BudgetID         string              `gorm:"type:varchar(36);not null;uniqueIndex:idx_category_budget_name" json:"budget_id"`
	Name             string              `gorm:"size:200;not null;uniqueIndex:idx_category_budget_name" json:"name"`
	CategoryType     CategoryType        `gorm:"size:20;not null" json:"category_type"`
	Order            int                 `gorm:"column:sort_order;not null" json:"order"`
	IsActive         bool                `gorm:"not null" json:"is_active"`
	InputMode        InputMode           `gorm:"size:10;not null" json:"input_mode"`
	CustomMonths     *int                `json:"custom_months"`
	CustomStartMonth *int                `json:"custom_start_month"`
	YearlyAmount     decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"yearly_amount"`

	// Relationships
	Budget  *Budget       `gorm:"foreignKey:BudgetID" json:"-"`
	Entries []BudgetEntry `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// MarshalJSON adds the human-readable category type.
func (c BudgetCategory) MarshalJSON() ([]byte, error) {
	type category BudgetCategory
	return json.Marshal(struct {
		category
		CategoryTypeDisplay string `json:"category_type_display"`
	}{category: category(c), CategoryTypeDisplay: c.CategoryType.Display()})
}
