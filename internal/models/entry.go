package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// EntryStatus is the derived classification of actual vs planned amounts.
type EntryStatus string

const (
	StatusWithinBudget EntryStatus = "WITHIN_BUDGET"
	StatusWarning      EntryStatus = "WARNING"
	StatusOverBudget   EntryStatus = "OVER_BUDGET"
)

// Display returns the human-readable label of the status.
func (s EntryStatus) Display() string {
	switch s {
	case StatusWithinBudget:
		return "Within Budget"
	case StatusWarning:
		return "Warning"
	case StatusOverBudget:
		return "Over Budget"
	}
	return string(s)
}

// BudgetEntry is the planned and actual amount of one category in one month.
// Status is derived on every write and never accepted from clients.
type BudgetEntry struct {
	Base
	CategoryID    string              `gorm:"type:varchar(36);not null;uniqueIndex:idx_entry_category_month_year" json:"category_id"`
	Month         int                 `gorm:"not null;uniqueIndex:idx_entry_category_month_year" json:"month"`
	Year          int                 `gorm:"not null;uniqueIndex:idx_entry_category_month_year" json:"year"`
	PlannedAmount decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"planned_amount"`
	ActualAmount  decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"actual_amount"`
	Notes         string              `gorm:"not null" json:"notes"`
	Status        EntryStatus         `gorm:"size:20;not null" json:"status"`

	// Relationships
	Category *BudgetCategory `gorm:"foreignKey:CategoryID" json:"-"`
}

// MarshalJSON adds the owning category's name and type when it is loaded.
func (e BudgetEntry) MarshalJSON() ([]byte, error) {
	type entry BudgetEntry
	out := struct {
		entry
		StatusDisplay string       `json:"status_display"`
		CategoryName  string       `json:"category_name,omitempty"`
		CategoryType  CategoryType `json:"category_type,omitempty"`
	}{entry: entry(e), StatusDisplay: e.Status.Display()}
	if e.Category != nil {
		out.CategoryName = e.Category.Name
		out.CategoryType = e.Category.CategoryType
	}
	return json.Marshal(out)
}
