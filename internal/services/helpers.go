package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "budgetplaner/internal/errors"
)

// lookupError maps a failed single-row lookup to notFound or an internal error.
func lookupError(err error, notFound *apperrors.AppError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// writeError maps a failed insert or update. Unique constraint violations
// become duplicate, anything else is internal.
func writeError(err error, duplicate *apperrors.AppError) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Wrap(duplicate, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// budgetExists returns ErrBudgetNotFound unless a budget with budgetID exists.
func budgetExists(db *gorm.DB, budgetID string) error {
	var count int64
	if err := db.Table("budgets").Where("id = ?", budgetID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}
