package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/models"
	"budgetplaner/internal/pagination"
	"budgetplaner/internal/rules"
)

// entryService handles budget entry business logic. Every write derives the
// entry's status from its amounts and the category type.
type entryService struct {
	db *gorm.DB
}

// NewEntryService creates a new EntryServicer.
func NewEntryService(db *gorm.DB) EntryServicer {
	return &entryService{db: db}
}

// CreateEntry creates an entry for a category and month.
func (s *entryService) CreateEntry(in EntryInput) (*models.BudgetEntry, error) {
	if in.CategoryID == nil {
		return nil, apperrors.ErrCategoryNotFound
	}

	var category models.BudgetCategory
	if err := s.db.Where("id = ?", *in.CategoryID).First(&category).Error; err != nil {
		return nil, lookupError(err, apperrors.ErrCategoryNotFound)
	}

	entry := &models.BudgetEntry{CategoryID: category.ID, PlannedAmount: decimal.Zero}
	applyEntryInput(entry, in)
	rules.ApplyStatus(entry, category.CategoryType)

	if err := s.db.Create(entry).Error; err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateEntry)
	}
	entry.Category = &category
	return entry, nil
}

func applyEntryInput(e *models.BudgetEntry, in EntryInput) {
	if in.Month != nil {
		e.Month = *in.Month
	}
	if in.Year != nil {
		e.Year = *in.Year
	}
	if in.PlannedAmount != nil {
		e.PlannedAmount = *in.PlannedAmount
	}
	if in.ActualAmount != nil {
		e.ActualAmount = decimal.NewNullDecimal(*in.ActualAmount)
	}
	if in.Notes != nil {
		e.Notes = *in.Notes
	}
}

// ListEntries returns a paginated, filtered list of entries ordered by year,
// month and category order.
func (s *entryService) ListEntries(page pagination.PageRequest, filter EntryFilter) (*pagination.PageResponse[models.BudgetEntry], error) {
	page.Defaults()

	filtered := func(db *gorm.DB) *gorm.DB {
		db = db.Joins("JOIN budget_categories ON budget_categories.id = budget_entries.category_id")
		if filter.BudgetID != "" {
			db = db.Where("budget_categories.budget_id = ?", filter.BudgetID)
		}
		if filter.CategoryID != "" {
			db = db.Where("budget_entries.category_id = ?", filter.CategoryID)
		}
		if filter.Month != nil {
			db = db.Where("budget_entries.month = ?", *filter.Month)
		}
		if filter.Year != nil {
			db = db.Where("budget_entries.year = ?", *filter.Year)
		}
		return db
	}

	var totalItems int64
	if err := s.db.Model(&models.BudgetEntry{}).Scopes(filtered).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.BudgetEntry
	if err := s.db.Scopes(filtered, pagination.Paginate(page)).Preload("Category").Order(entryOrder).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetEntryByID returns an entry with its category loaded.
func (s *entryService) GetEntryByID(entryID string) (*models.BudgetEntry, error) {
	var entry models.BudgetEntry
	if err := s.db.Preload("Category").Where("id = ?", entryID).First(&entry).Error; err != nil {
		return nil, lookupError(err, apperrors.ErrEntryNotFound)
	}
	return &entry, nil
}

// UpdateEntry updates an entry and re-derives its status. Moving an entry to
// another category takes that category's type into account.
func (s *entryService) UpdateEntry(entryID string, in EntryInput) (*models.BudgetEntry, error) {
	entry, err := s.GetEntryByID(entryID)
	if err != nil {
		return nil, err
	}

	if in.CategoryID != nil && *in.CategoryID != entry.CategoryID {
		var category models.BudgetCategory
		if err := s.db.Where("id = ?", *in.CategoryID).First(&category).Error; err != nil {
			return nil, lookupError(err, apperrors.ErrCategoryNotFound)
		}
		entry.CategoryID = category.ID
		entry.Category = &category
	}

	applyEntryInput(entry, in)
	return s.save(entry)
}

// UpdateActual sets only the actual amount of an entry.
func (s *entryService) UpdateActual(entryID string, actual decimal.Decimal) (*models.BudgetEntry, error) {
	entry, err := s.GetEntryByID(entryID)
	if err != nil {
		return nil, err
	}

	entry.ActualAmount = decimal.NewNullDecimal(actual)
	return s.save(entry)
}

func (s *entryService) save(entry *models.BudgetEntry) (*models.BudgetEntry, error) {
	rules.ApplyStatus(entry, entry.Category.CategoryType)

	category := entry.Category
	entry.Category = nil
	err := s.db.Save(entry).Error
	entry.Category = category
	if err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateEntry)
	}
	return entry, nil
}

// DeleteEntry deletes an entry.
func (s *entryService) DeleteEntry(entryID string) error {
	result := s.db.Where("id = ?", entryID).Delete(&models.BudgetEntry{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrEntryNotFound
	}
	return nil
}
