package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/models"
	"budgetplaner/internal/pagination"
	"budgetplaner/internal/rules"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory adds a category to a budget. Unset fields default to
// order 0, active, MONTHLY input and a custom start month of 1.
func (s *categoryService) CreateCategory(budgetID string, in CategoryInput) (*models.BudgetCategory, error) {
	if err := budgetExists(s.db, budgetID); err != nil {
		return nil, err
	}

	startMonth := 1
	category := &models.BudgetCategory{
		BudgetID:         budgetID,
		IsActive:         true,
		InputMode:        models.InputModeMonthly,
		CustomStartMonth: &startMonth,
	}
	applyCategoryInput(category, in)

	if err := s.db.Create(category).Error; err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateName)
	}
	return category, nil
}

func applyCategoryInput(c *models.BudgetCategory, in CategoryInput) {
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.CategoryType != nil {
		c.CategoryType = *in.CategoryType
	}
	if in.Order != nil {
		c.Order = *in.Order
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.InputMode != nil {
		c.InputMode = *in.InputMode
	}
	if in.CustomMonths != nil {
		c.CustomMonths = in.CustomMonths
	}
	if in.CustomStartMonth != nil {
		c.CustomStartMonth = in.CustomStartMonth
	}
	if in.YearlyAmount != nil {
		c.YearlyAmount.Decimal = *in.YearlyAmount
		c.YearlyAmount.Valid = true
	}
	if in.ClearCustomMonths {
		c.CustomMonths = nil
	}
	if in.ClearCustomStartMonth {
		c.CustomStartMonth = nil
	}
	if in.ClearYearlyAmount {
		c.YearlyAmount = decimal.NullDecimal{}
	}
}

// ListCategories returns a paginated list of categories, optionally of one budget.
func (s *categoryService) ListCategories(page pagination.PageRequest, budgetID string) (*pagination.PageResponse[models.BudgetCategory], error) {
	page.Defaults()

	base := s.db.Model(&models.BudgetCategory{})
	if budgetID != "" {
		base = base.Where("budget_id = ?", budgetID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.BudgetCategory
	if err := base.Order("budget_id, sort_order, name").Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID returns a category by ID.
func (s *categoryService) GetCategoryByID(categoryID string) (*models.BudgetCategory, error) {
	var category models.BudgetCategory
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		return nil, lookupError(err, apperrors.ErrCategoryNotFound)
	}
	return &category, nil
}

// UpdateCategory updates a category. When the type changes, the status of
// every entry of the category is re-derived in the same transaction.
func (s *categoryService) UpdateCategory(categoryID string, in CategoryInput) (*models.BudgetCategory, error) {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	previousType := category.CategoryType
	applyCategoryInput(category, in)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(category).Error; err != nil {
			return err
		}
		if category.CategoryType == previousType {
			return nil
		}
		return rederiveStatuses(tx, category)
	})
	if err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateName)
	}
	return category, nil
}

// rederiveStatuses recomputes and stores the status of every entry of c.
func rederiveStatuses(tx *gorm.DB, c *models.BudgetCategory) error {
	var entries []models.BudgetEntry
	if err := tx.Where("category_id = ?", c.ID).Find(&entries).Error; err != nil {
		return err
	}
	for i := range entries {
		previous := entries[i].Status
		rules.ApplyStatus(&entries[i], c.CategoryType)
		if entries[i].Status == previous {
			continue
		}
		if err := tx.Model(&entries[i]).Update("status", entries[i].Status).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReorderCategory sets the display order of a category.
func (s *categoryService) ReorderCategory(categoryID string, order int) (*models.BudgetCategory, error) {
	return s.UpdateCategory(categoryID, CategoryInput{Order: &order})
}

// DeleteCategory deletes a category and its entries.
func (s *categoryService) DeleteCategory(categoryID string) error {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.BudgetEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetMonthlyTotals sums planned and actual amounts of one month.
func (s *categoryService) GetMonthlyTotals(categoryID string, month, year int) (*rules.CategoryTotals, error) {
	entries, err := s.entries(categoryID, year, &month)
	if err != nil {
		return nil, err
	}

	planned, actual := rules.TotalCategory(entries)
	return &rules.CategoryTotals{Month: month, Year: year, TotalPlanned: planned, TotalActual: actual}, nil
}

// GetYearlyTotals sums planned and actual amounts of one year.
func (s *categoryService) GetYearlyTotals(categoryID string, year int) (*rules.CategoryTotals, error) {
	entries, err := s.entries(categoryID, year, nil)
	if err != nil {
		return nil, err
	}

	planned, actual := rules.TotalCategory(entries)
	return &rules.CategoryTotals{Year: year, TotalPlanned: planned, TotalActual: actual}, nil
}

func (s *categoryService) entries(categoryID string, year int, month *int) ([]models.BudgetEntry, error) {
	if _, err := s.GetCategoryByID(categoryID); err != nil {
		return nil, err
	}

	query := s.db.Where("category_id = ? AND year = ?", categoryID, year)
	if month != nil {
		query = query.Where("month = ?", *month)
	}

	var entries []models.BudgetEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}
