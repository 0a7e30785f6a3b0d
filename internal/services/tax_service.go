package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/models"
	"budgetplaner/internal/pagination"
)

// taxService handles tax entry business logic.
type taxService struct {
	db *gorm.DB
}

// NewTaxService creates a new TaxServicer.
func NewTaxService(db *gorm.DB) TaxServicer {
	return &taxService{db: db}
}

// CreateTaxEntry adds a tax entry to a budget.
func (s *taxService) CreateTaxEntry(budgetID string, in TaxEntryInput) (*models.TaxEntry, error) {
	if err := budgetExists(s.db, budgetID); err != nil {
		return nil, err
	}

	tax := &models.TaxEntry{BudgetID: budgetID, Percentage: decimal.Zero, IsActive: true}
	applyTaxInput(tax, in)

	if err := s.db.Create(tax).Error; err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateName)
	}
	return tax, nil
}

func applyTaxInput(t *models.TaxEntry, in TaxEntryInput) {
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Percentage != nil {
		t.Percentage = *in.Percentage
	}
	if in.Order != nil {
		t.Order = *in.Order
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
}

// ListTaxEntries returns a paginated list of tax entries, optionally of one budget.
func (s *taxService) ListTaxEntries(page pagination.PageRequest, budgetID string) (*pagination.PageResponse[models.TaxEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.TaxEntry{})
	if budgetID != "" {
		base = base.Where("budget_id = ?", budgetID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var taxes []models.TaxEntry
	if err := base.Order("budget_id, sort_order, name").Scopes(pagination.Paginate(page)).Find(&taxes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(taxes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTaxEntryByID returns a tax entry by ID.
func (s *taxService) GetTaxEntryByID(taxID string) (*models.TaxEntry, error) {
	var tax models.TaxEntry
	if err := s.db.Where("id = ?", taxID).First(&tax).Error; err != nil {
		return nil, lookupError(err, apperrors.ErrTaxEntryNotFound)
	}
	return &tax, nil
}

// UpdateTaxEntry updates a tax entry.
func (s *taxService) UpdateTaxEntry(taxID string, in TaxEntryInput) (*models.TaxEntry, error) {
	tax, err := s.GetTaxEntryByID(taxID)
	if err != nil {
		return nil, err
	}

	applyTaxInput(tax, in)
	if err := s.db.Save(tax).Error; err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateName)
	}
	return tax, nil
}

// DeleteTaxEntry deletes a tax entry.
func (s *taxService) DeleteTaxEntry(taxID string) error {
	result := s.db.Where("id = ?", taxID).Delete(&models.TaxEntry{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTaxEntryNotFound
	}
	return nil
}
