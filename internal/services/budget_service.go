package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/models"
	"budgetplaner/internal/pagination"
	"budgetplaner/internal/rules"
)

// DefaultCurrency is used when a budget is created without a currency.
const DefaultCurrency = "CHF"

const entryOrder = "budget_entries.year, budget_entries.month, budget_categories.sort_order, budget_categories.name"

// entriesOfBudget is a scope restricting a BudgetEntry query to one budget.
func entriesOfBudget(budgetID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN budget_categories ON budget_categories.id = budget_entries.category_id").
			Where("budget_categories.budget_id = ?", budgetID)
	}
}

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a new budget.
func (s *budgetService) CreateBudget(name, currency string) (*models.Budget, error) {
	if currency == "" {
		currency = DefaultCurrency
	}

	budget := &models.Budget{Name: name, Currency: currency}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateName)
	}
	return budget, nil
}

// ListBudgets returns a paginated list of budgets ordered by name.
func (s *budgetService) ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Budget{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := s.db.Order("name").Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID.
func (s *budgetService) GetBudgetByID(budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ?", budgetID).First(&budget).Error; err != nil {
		return nil, lookupError(err, apperrors.ErrBudgetNotFound)
	}
	return &budget, nil
}

// UpdateBudget updates the name and/or currency of a budget.
func (s *budgetService) UpdateBudget(budgetID string, name, currency *string) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		budget.Name = *name
	}
	if currency != nil {
		budget.Currency = *currency
	}

	if err := s.db.Save(budget).Error; err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateName)
	}
	return budget, nil
}

// DeleteBudget deletes a budget together with everything it owns.
func (s *budgetService) DeleteBudget(budgetID string) error {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		categoryIDs := tx.Model(&models.BudgetCategory{}).Select("id").Where("budget_id = ?", budget.ID)
		if err := tx.Where("category_id IN (?)", categoryIDs).Delete(&models.BudgetEntry{}).Error; err != nil {
			return err
		}
		for _, owned := range []interface{}{
			&models.BudgetCategory{},
			&models.SalaryReduction{},
			&models.TaxEntry{},
			&models.MonthlyActualBalance{},
		} {
			if err := tx.Where("budget_id = ?", budget.ID).Delete(owned).Error; err != nil {
				return err
			}
		}
		return tx.Delete(budget).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetSummary returns the budget with its active categories and all entries.
func (s *budgetService) GetSummary(budgetID string) (*BudgetSummary, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	categories, err := s.GetActiveCategories(budgetID)
	if err != nil {
		return nil, err
	}

	var entries []models.BudgetEntry
	if err := s.db.Scopes(entriesOfBudget(budgetID)).Preload("Category").Order(entryOrder).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if entries == nil {
		entries = []models.BudgetEntry{}
	}

	return &BudgetSummary{Budget: *budget, Categories: categories, Entries: entries}, nil
}

// GetMonthlySummary totals income and expenses of one month.
func (s *budgetService) GetMonthlySummary(budgetID string, month, year int) (*rules.MonthlySummary, error) {
	entries, err := s.entriesForYear(budgetID, year, &month)
	if err != nil {
		return nil, err
	}
	summary := rules.SummarizeMonth(month, year, entries)
	return &summary, nil
}

// GetYearlySummary totals all twelve months of a year.
func (s *budgetService) GetYearlySummary(budgetID string, year int) (*rules.YearlySummary, error) {
	entries, err := s.entriesForYear(budgetID, year, nil)
	if err != nil {
		return nil, err
	}
	summary := rules.SummarizeYear(year, entries)
	return &summary, nil
}

func (s *budgetService) entriesForYear(budgetID string, year int, month *int) ([]models.BudgetEntry, error) {
	if err := budgetExists(s.db, budgetID); err != nil {
		return nil, err
	}

	query := s.db.Scopes(entriesOfBudget(budgetID)).Preload("Category").Where("budget_entries.year = ?", year)
	if month != nil {
		query = query.Where("budget_entries.month = ?", *month)
	}

	var entries []models.BudgetEntry
	if err := query.Order(entryOrder).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// GetActiveCategories returns the active categories of a budget in display order.
func (s *budgetService) GetActiveCategories(budgetID string) ([]models.BudgetCategory, error) {
	if err := budgetExists(s.db, budgetID); err != nil {
		return nil, err
	}

	categories := []models.BudgetCategory{}
	if err := s.db.Where("budget_id = ? AND is_active = ?", budgetID, true).
		Order("sort_order, name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetAvailableYears returns the distinct years that have entries, ascending.
func (s *budgetService) GetAvailableYears(budgetID string) ([]int, error) {
	if err := budgetExists(s.db, budgetID); err != nil {
		return nil, err
	}

	years := []int{}
	if err := s.db.Model(&models.BudgetEntry{}).Scopes(entriesOfBudget(budgetID)).
		Distinct("budget_entries.year").Order("budget_entries.year").Pluck("budget_entries.year", &years).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return years, nil
}

// GetSalaryBreakdown applies the budget's active reductions and taxes to gross.
func (s *budgetService) GetSalaryBreakdown(budgetID string, gross decimal.Decimal) (*rules.SalaryBreakdown, error) {
	if err := budgetExists(s.db, budgetID); err != nil {
		return nil, err
	}

	reductions, taxes, err := loadDeductions(s.db, budgetID)
	if err != nil {
		return nil, err
	}

	breakdown := rules.BreakdownSalary(gross, reductions, taxes)
	return &breakdown, nil
}

// loadDeductions returns all reductions and taxes of a budget in display order.
func loadDeductions(db *gorm.DB, budgetID string) ([]models.SalaryReduction, []models.TaxEntry, error) {
	var reductions []models.SalaryReduction
	if err := db.Where("budget_id = ?", budgetID).Order("sort_order, name").Find(&reductions).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var taxes []models.TaxEntry
	if err := db.Where("budget_id = ?", budgetID).Order("sort_order, name").Find(&taxes).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return reductions, taxes, nil
}
