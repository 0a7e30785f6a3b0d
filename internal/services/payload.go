package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"budgetplaner/internal/models"
)

// SourceID is a category identifier from an import payload. Exports from
// other installations may carry numeric ids, so numbers are accepted too.
type SourceID string

// UnmarshalJSON accepts a JSON string or number.
func (id *SourceID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = SourceID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("category id must be a string or number: %w", err)
	}
	*id = SourceID(n.String())
	return nil
}

// BudgetRecord is the budget part of an import payload.
type BudgetRecord struct {
	Name     string `json:"name" binding:"required,max=200"`
	Currency string `json:"currency" binding:"omitempty,iso4217"`
}

// CategoryRecord is one category of an import payload.
type CategoryRecord struct {
	ID               SourceID            `json:"id"`
	Name             string              `json:"name" binding:"required,max=200"`
	CategoryType     models.CategoryType `json:"category_type" binding:"required,category_type"`
	Order            int                 `json:"order"`
	IsActive         *bool               `json:"is_active,omitempty"`
	InputMode        models.InputMode    `json:"input_mode,omitempty" binding:"omitempty,input_mode"`
	CustomMonths     *int                `json:"custom_months" binding:"omitempty,min=1,max=12"`
	CustomStartMonth *int                `json:"custom_start_month" binding:"omitempty,min=1,max=12"`
	YearlyAmount     decimal.NullDecimal `json:"yearly_amount" binding:"dec_gte0,money"`
}

// EntryRecord is one entry of an import payload. Category refers to the id
// of a CategoryRecord in the same payload.
type EntryRecord struct {
	Category      SourceID            `json:"category" binding:"required"`
	Month         int                 `json:"month" binding:"required,min=1,max=12"`
	Year          int                 `json:"year" binding:"required,min=2000,max=2100"`
	PlannedAmount decimal.Decimal     `json:"planned_amount" binding:"dec_gte0,money"`
	ActualAmount  decimal.NullDecimal `json:"actual_amount" binding:"dec_gte0,money"`
	Notes         string              `json:"notes"`
}

// TaxRecord is one tax entry of an import payload.
type TaxRecord struct {
	Name       string          `json:"name" binding:"required,max=200"`
	Percentage decimal.Decimal `json:"percentage" binding:"dec_gte0,dec_lte100,money"`
	Order      int             `json:"order"`
	IsActive   *bool           `json:"is_active,omitempty"`
}

// ReductionRecord is one salary reduction of an import payload.
type ReductionRecord struct {
	Name          string               `json:"name" binding:"required,max=200"`
	ReductionType models.ReductionType `json:"reduction_type,omitempty" binding:"omitempty,reduction_type"`
	Value         decimal.Decimal      `json:"value" binding:"dec_gte0,money"`
	Order         int                  `json:"order"`
	IsActive      *bool                `json:"is_active,omitempty"`
}

// ActualBalanceRecord is one monthly actual balance of an import payload.
type ActualBalanceRecord struct {
	Month          int             `json:"month" binding:"required,min=1,max=12"`
	Year           int             `json:"year" binding:"required,min=2000,max=2100"`
	ActualIncome   decimal.Decimal `json:"actual_income" binding:"dec_gte0,money"`
	ActualExpenses decimal.Decimal `json:"actual_expenses" binding:"dec_gte0,money"`
}

// BudgetPayload is a complete budget aggregate. It is the import body and
// the JSON export format.
type BudgetPayload struct {
	Budget           BudgetRecord          `json:"budget"`
	Categories       []CategoryRecord      `json:"categories"`
	Entries          []EntryRecord         `json:"entries"`
	TaxEntries       []TaxRecord           `json:"tax_entries"`
	SalaryReductions []ReductionRecord     `json:"salary_reductions"`
	ActualBalances   []ActualBalanceRecord `json:"actual_balances"`
}

// ImportCounts reports how many records of each kind were created.
type ImportCounts struct {
	Categories       int `json:"categories"`
	Entries          int `json:"entries"`
	TaxEntries       int `json:"tax_entries"`
	SalaryReductions int `json:"salary_reductions"`
	ActualBalances   int `json:"actual_balances"`
}

// ImportResult is the outcome of a successful import.
type ImportResult struct {
	Budget models.Budget `json:"budget"`
	Counts ImportCounts  `json:"counts"`
}

// BudgetYear is everything a report of one budget year needs.
type BudgetYear struct {
	Budget     models.Budget
	Year       int
	Categories []models.BudgetCategory
	Entries    []models.BudgetEntry
	Reductions []models.SalaryReduction
	Taxes      []models.TaxEntry
}
