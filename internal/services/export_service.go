package services

import (
	"gorm.io/gorm"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/models"
)

// exportService loads budget data for the xlsx, chart and JSON exports.
type exportService struct {
	db *gorm.DB
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB) ExportServicer {
	return &exportService{db: db}
}

// LoadBudgetYear loads the budget, its active categories, the year's entries
// and all deductions.
func (s *exportService) LoadBudgetYear(budgetID string, year int) (*BudgetYear, error) {
	var budget models.Budget
	if err := s.db.Where("id = ?", budgetID).First(&budget).Error; err != nil {
		return nil, lookupError(err, apperrors.ErrBudgetNotFound)
	}

	data := &BudgetYear{Budget: budget, Year: year}
	if err := s.db.Where("budget_id = ? AND is_active = ?", budgetID, true).
		Order("sort_order, name").Find(&data.Categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Scopes(entriesOfBudget(budgetID)).Preload("Category").
		Where("budget_entries.year = ?", year).Order(entryOrder).Find(&data.Entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	reductions, taxes, err := loadDeductions(s.db, budgetID)
	if err != nil {
		return nil, err
	}
	data.Reductions, data.Taxes = reductions, taxes
	return data, nil
}

// ExportPayload serializes a whole budget in the import format. Category
// ids are the stored ids, so the result imports back unchanged.
func (s *exportService) ExportPayload(budgetID string) (*BudgetPayload, error) {
	var budget models.Budget
	if err := s.db.Where("id = ?", budgetID).First(&budget).Error; err != nil {
		return nil, lookupError(err, apperrors.ErrBudgetNotFound)
	}

	var categories []models.BudgetCategory
	if err := s.db.Where("budget_id = ?", budgetID).Order("sort_order, name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var entries []models.BudgetEntry
	if err := s.db.Scopes(entriesOfBudget(budgetID)).Order(entryOrder).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	reductions, taxes, err := loadDeductions(s.db, budgetID)
	if err != nil {
		return nil, err
	}
	var balances []models.MonthlyActualBalance
	if err := s.db.Where("budget_id = ?", budgetID).Order("year, month").Find(&balances).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	payload := &BudgetPayload{
		Budget:           BudgetRecord{Name: budget.Name, Currency: budget.Currency},
		Categories:       make([]CategoryRecord, 0, len(categories)),
		Entries:          make([]EntryRecord, 0, len(entries)),
		TaxEntries:       make([]TaxRecord, 0, len(taxes)),
		SalaryReductions: make([]ReductionRecord, 0, len(reductions)),
		ActualBalances:   make([]ActualBalanceRecord, 0, len(balances)),
	}
	for _, c := range categories {
		payload.Categories = append(payload.Categories, CategoryRecord{
			ID:               SourceID(c.ID),
			Name:             c.Name,
			CategoryType:     c.CategoryType,
			Order:            c.Order,
			IsActive:         boolPtr(c.IsActive),
			InputMode:        c.InputMode,
			CustomMonths:     c.CustomMonths,
			CustomStartMonth: c.CustomStartMonth,
			YearlyAmount:     c.YearlyAmount,
		})
	}
	for _, e := range entries {
		payload.Entries = append(payload.Entries, EntryRecord{
			Category:      SourceID(e.CategoryID),
			Month:         e.Month,
			Year:          e.Year,
			PlannedAmount: e.PlannedAmount,
			ActualAmount:  e.ActualAmount,
			Notes:         e.Notes,
		})
	}
	for _, t := range taxes {
		payload.TaxEntries = append(payload.TaxEntries, TaxRecord{
			Name: t.Name, Percentage: t.Percentage, Order: t.Order, IsActive: boolPtr(t.IsActive),
		})
	}
	for _, r := range reductions {
		payload.SalaryReductions = append(payload.SalaryReductions, ReductionRecord{
			Name: r.Name, ReductionType: r.ReductionType, Value: r.Value, Order: r.Order, IsActive: boolPtr(r.IsActive),
		})
	}
	for _, b := range balances {
		payload.ActualBalances = append(payload.ActualBalances, ActualBalanceRecord{
			Month: b.Month, Year: b.Year, ActualIncome: b.ActualIncome, ActualExpenses: b.ActualExpenses,
		})
	}
	return payload, nil
}

func boolPtr(b bool) *bool {
	return &b
}
