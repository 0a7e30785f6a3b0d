package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/models"
	"budgetplaner/internal/pagination"
)

// actualBalanceService handles monthly actual balances.
type actualBalanceService struct {
	db *gorm.DB
}

// NewActualBalanceService creates a new ActualBalanceServicer.
func NewActualBalanceService(db *gorm.DB) ActualBalanceServicer {
	return &actualBalanceService{db: db}
}

// CreateActualBalance records the actual income and expenses of a month.
// Missing amounts default to zero.
func (s *actualBalanceService) CreateActualBalance(budgetID string, in ActualBalanceInput) (*models.MonthlyActualBalance, error) {
	if err := budgetExists(s.db, budgetID); err != nil {
		return nil, err
	}

	balance := &models.MonthlyActualBalance{
		BudgetID:       budgetID,
		ActualIncome:   decimal.Zero,
		ActualExpenses: decimal.Zero,
	}
	applyBalanceInput(balance, in)

	if err := s.db.Create(balance).Error; err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateActualBalance)
	}
	return balance, nil
}

func applyBalanceInput(b *models.MonthlyActualBalance, in ActualBalanceInput) {
	if in.Month != nil {
		b.Month = *in.Month
	}
	if in.Year != nil {
		b.Year = *in.Year
	}
	if in.ActualIncome != nil {
		b.ActualIncome = *in.ActualIncome
	}
	if in.ActualExpenses != nil {
		b.ActualExpenses = *in.ActualExpenses
	}
}

// ListActualBalances returns a paginated list ordered by year and month.
func (s *actualBalanceService) ListActualBalances(page pagination.PageRequest, budgetID string, year *int) (*pagination.PageResponse[models.MonthlyActualBalance], error) {
	page.Defaults()

	base := s.db.Model(&models.MonthlyActualBalance{})
	if budgetID != "" {
		base = base.Where("budget_id = ?", budgetID)
	}
	if year != nil {
		base = base.Where("year = ?", *year)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var balances []models.MonthlyActualBalance
	if err := base.Order("year, month").Scopes(pagination.Paginate(page)).Find(&balances).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(balances, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetActualBalanceByID returns a monthly actual balance by ID.
func (s *actualBalanceService) GetActualBalanceByID(balanceID string) (*models.MonthlyActualBalance, error) {
	var balance models.MonthlyActualBalance
	if err := s.db.Where("id = ?", balanceID).First(&balance).Error; err != nil {
		return nil, lookupError(err, apperrors.ErrActualBalanceNotFound)
	}
	return &balance, nil
}

// UpdateActualBalance updates a monthly actual balance.
func (s *actualBalanceService) UpdateActualBalance(balanceID string, in ActualBalanceInput) (*models.MonthlyActualBalance, error) {
	balance, err := s.GetActualBalanceByID(balanceID)
	if err != nil {
		return nil, err
	}

	applyBalanceInput(balance, in)
	if err := s.db.Save(balance).Error; err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateActualBalance)
	}
	return balance, nil
}

// DeleteActualBalance deletes a monthly actual balance.
func (s *actualBalanceService) DeleteActualBalance(balanceID string) error {
	result := s.db.Where("id = ?", balanceID).Delete(&models.MonthlyActualBalance{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrActualBalanceNotFound
	}
	return nil
}
