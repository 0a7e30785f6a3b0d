package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/models"
	"budgetplaner/internal/pagination"
)

var hundred = decimal.NewFromInt(100)

// salaryReductionService handles salary reduction business logic.
type salaryReductionService struct {
	db *gorm.DB
}

// NewSalaryReductionService creates a new SalaryReductionServicer.
func NewSalaryReductionService(db *gorm.DB) SalaryReductionServicer {
	return &salaryReductionService{db: db}
}

// CreateSalaryReduction adds a reduction to a budget. The type defaults to
// PERCENTAGE and new reductions are active unless stated otherwise.
func (s *salaryReductionService) CreateSalaryReduction(budgetID string, in SalaryReductionInput) (*models.SalaryReduction, error) {
	if err := budgetExists(s.db, budgetID); err != nil {
		return nil, err
	}

	reduction := &models.SalaryReduction{
		BudgetID:      budgetID,
		ReductionType: models.ReductionTypePercentage,
		Value:         decimal.Zero,
		IsActive:      true,
	}
	applyReductionInput(reduction, in)
	if err := checkReduction(reduction); err != nil {
		return nil, err
	}

	if err := s.db.Create(reduction).Error; err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateName)
	}
	return reduction, nil
}

func applyReductionInput(r *models.SalaryReduction, in SalaryReductionInput) {
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.ReductionType != nil {
		r.ReductionType = *in.ReductionType
	}
	if in.Value != nil {
		r.Value = *in.Value
	}
	if in.Order != nil {
		r.Order = *in.Order
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
}

// checkReduction rejects percentages above 100. The field rules alone cannot
// express this since the bound depends on the type.
func checkReduction(r *models.SalaryReduction) error {
	if r.ReductionType == models.ReductionTypePercentage && r.Value.GreaterThan(hundred) {
		return apperrors.WithFields(apperrors.ErrValidation, "", map[string]string{
			"value": "Must not exceed 100 for percentage reductions",
		})
	}
	return nil
}

// ListSalaryReductions returns a paginated list of reductions, optionally of one budget.
func (s *salaryReductionService) ListSalaryReductions(page pagination.PageRequest, budgetID string) (*pagination.PageResponse[models.SalaryReduction], error) {
	page.Defaults()

	base := s.db.Model(&models.SalaryReduction{})
	if budgetID != "" {
		base = base.Where("budget_id = ?", budgetID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var reductions []models.SalaryReduction
	if err := base.Order("budget_id, sort_order, name").Scopes(pagination.Paginate(page)).Find(&reductions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(reductions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSalaryReductionByID returns a reduction by ID.
func (s *salaryReductionService) GetSalaryReductionByID(reductionID string) (*models.SalaryReduction, error) {
	var reduction models.SalaryReduction
	if err := s.db.Where("id = ?", reductionID).First(&reduction).Error; err != nil {
		return nil, lookupError(err, apperrors.ErrSalaryReductionNotFound)
	}
	return &reduction, nil
}

// UpdateSalaryReduction updates a reduction.
func (s *salaryReductionService) UpdateSalaryReduction(reductionID string, in SalaryReductionInput) (*models.SalaryReduction, error) {
	reduction, err := s.GetSalaryReductionByID(reductionID)
	if err != nil {
		return nil, err
	}

	applyReductionInput(reduction, in)
	if err := checkReduction(reduction); err != nil {
		return nil, err
	}

	if err := s.db.Save(reduction).Error; err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateName)
	}
	return reduction, nil
}

// DeleteSalaryReduction deletes a reduction.
func (s *salaryReductionService) DeleteSalaryReduction(reductionID string) error {
	result := s.db.Where("id = ?", reductionID).Delete(&models.SalaryReduction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrSalaryReductionNotFound
	}
	return nil
}
