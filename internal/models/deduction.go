package models

import "github.com/shopspring/decimal"

// ReductionType selects how a salary reduction is computed.
type ReductionType string

const (
	ReductionTypePercentage ReductionType = "PERCENTAGE"
	ReductionTypeFixed      ReductionType = "FIXED"
)

// SalaryReduction is a deduction from gross salary (e.g. AHV, health
// insurance). Value is a percentage for PERCENTAGE and an amount for FIXED.
type SalaryReduction struct {
	Base
	BudgetID      string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_reduction_budget_name" json:"budget_id"`
	Name          string          `gorm:"size:200;not null;uniqueIndex:idx_reduction_budget_name" json:"name"`
	ReductionType ReductionType   `gorm:"size:10;not null" json:"reduction_type"`
	Value         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	Order         int             `gorm:"column:sort_order;not null" json:"order"`
	IsActive      bool            `gorm:"not null" json:"is_active"`
}

// TaxEntry is a tax computed as a percentage of salary.
type TaxEntry struct {
	Base
	BudgetID   string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_tax_budget_name" json:"budget_id"`
	Name       string          `gorm:"size:200;not null;uniqueIndex:idx_tax_budget_name" json:"name"`
	Percentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percentage"`
	Order      int             `gorm:"column:sort_order;not null" json:"order"`
	IsActive   bool            `gorm:"not null" json:"is_active"`
}
