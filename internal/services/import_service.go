package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/models"
	"budgetplaner/internal/rules"
	"budgetplaner/internal/validator"
)

// importService creates a budget aggregate from a BudgetPayload.
type importService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewImportService creates a new ImportServicer.
func NewImportService(db *gorm.DB) ImportServicer {
	return &importService{db: db, now: time.Now}
}

// maxBudgetName is the length of the budgets.name column.
const maxBudgetName = 200

// collisionName suffixes name with a timestamp, shortening name so the result
// still fits the name column.
func collisionName(name string, at time.Time) string {
	suffix := fmt.Sprintf(" (%s)", at.Format("2006-01-02 15:04:05"))
	runes := []rune(name)
	if keep := maxBudgetName - len([]rune(suffix)); len(runes) > keep {
		name = strings.TrimSpace(string(runes[:keep]))
	}
	return name + suffix
}

// recordError builds the validation error reported for the record at path.
func recordError(path string, fields map[string]string) *apperrors.AppError {
	prefixed := make(map[string]string, len(fields))
	for field, msg := range fields {
		if path == "" {
			prefixed[field] = msg
		} else {
			prefixed[path+"."+field] = msg
		}
	}
	message := "Invalid budget"
	if path != "" {
		message = "Invalid " + path
	}
	return apperrors.WithFields(apperrors.ErrValidation, message, prefixed)
}

func validateRecord(path string, record any) error {
	if err := validator.Struct(record); err != nil {
		fields := validator.FieldErrors(err)
		if fields == nil {
			fields = map[string]string{"_": err.Error()}
		}
		return recordError(path, fields)
	}
	return nil
}

// insert creates record and reports a unique violation as a validation
// error on field of the record at path.
func insert(tx *gorm.DB, path, field string, record any) error {
	if err := tx.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return recordError(path, map[string]string{field: "Duplicate within this budget"})
		}
		return err
	}
	return nil
}

// ImportBudget creates a new budget with all records of payload in one
// transaction. Category ids of the payload are remapped to the new ids. If
// the budget name is taken, the current time is appended to it. Any invalid
// record aborts the whole import and is reported as a validation error.
func (s *importService) ImportBudget(payload BudgetPayload) (*ImportResult, error) {
	if err := validateRecord("budget", &payload.Budget); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		name := payload.Budget.Name
		var taken int64
		if err := tx.Model(&models.Budget{}).Where("name = ?", name).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			name = collisionName(name, s.now())
		}

		currency := payload.Budget.Currency
		if currency == "" {
			currency = DefaultCurrency
		}
		budget := models.Budget{Name: name, Currency: currency}
		if err := insert(tx, "budget", "name", &budget); err != nil {
			return err
		}
		result.Budget = budget

		categoryIDs := make(map[SourceID]string, len(payload.Categories))
		categoryTypes := make(map[SourceID]models.CategoryType, len(payload.Categories))
		for i := range payload.Categories {
			rec := payload.Categories[i]
			path := fmt.Sprintf("categories[%d]", i)
			if err := validateRecord(path, &rec); err != nil {
				return err
			}
			if _, dup := categoryIDs[rec.ID]; dup && rec.ID != "" {
				return recordError(path, map[string]string{"id": "Duplicate category id"})
			}

			category := models.BudgetCategory{
				BudgetID:         budget.ID,
				Name:             rec.Name,
				CategoryType:     rec.CategoryType,
				Order:            rec.Order,
				IsActive:         rec.IsActive == nil || *rec.IsActive,
				InputMode:        rec.InputMode,
				CustomMonths:     rec.CustomMonths,
				CustomStartMonth: rec.CustomStartMonth,
				YearlyAmount:     rec.YearlyAmount,
			}
			if category.InputMode == "" {
				category.InputMode = models.InputModeMonthly
			}
			if err := insert(tx, path, "name", &category); err != nil {
				return err
			}
			if rec.ID != "" {
				categoryIDs[rec.ID] = category.ID
				categoryTypes[rec.ID] = category.CategoryType
			}
			result.Counts.Categories++
		}

		for i := range payload.Entries {
			rec := payload.Entries[i]
			path := fmt.Sprintf("entries[%d]", i)
			if err := validateRecord(path, &rec); err != nil {
				return err
			}
			categoryID, ok := categoryIDs[rec.Category]
			if !ok {
				return recordError(path, map[string]string{"category": "Unknown category id"})
			}

			entry := models.BudgetEntry{
				CategoryID:    categoryID,
				Month:         rec.Month,
				Year:          rec.Year,
				PlannedAmount: rec.PlannedAmount,
				ActualAmount:  rec.ActualAmount,
				Notes:         rec.Notes,
			}
			rules.ApplyStatus(&entry, categoryTypes[rec.Category])
			if err := insert(tx, path, "month", &entry); err != nil {
				return err
			}
			result.Counts.Entries++
		}

		for i := range payload.TaxEntries {
			rec := payload.TaxEntries[i]
			path := fmt.Sprintf("tax_entries[%d]", i)
			if err := validateRecord(path, &rec); err != nil {
				return err
			}
			tax := models.TaxEntry{
				BudgetID:   budget.ID,
				Name:       rec.Name,
				Percentage: rec.Percentage,
				Order:      rec.Order,
				IsActive:   rec.IsActive == nil || *rec.IsActive,
			}
			if err := insert(tx, path, "name", &tax); err != nil {
				return err
			}
			result.Counts.TaxEntries++
		}

		for i := range payload.SalaryReductions {
			rec := payload.SalaryReductions[i]
			path := fmt.Sprintf("salary_reductions[%d]", i)
			if err := validateRecord(path, &rec); err != nil {
				return err
			}
			reduction := models.SalaryReduction{
				BudgetID:      budget.ID,
				Name:          rec.Name,
				ReductionType: rec.ReductionType,
				Value:         rec.Value,
				Order:         rec.Order,
				IsActive:      rec.IsActive == nil || *rec.IsActive,
			}
			if reduction.ReductionType == "" {
				reduction.ReductionType = models.ReductionTypePercentage
			}
			if err := checkReduction(&reduction); err != nil {
				var appErr *apperrors.AppError
				errors.As(err, &appErr)
				return recordError(path, appErr.Fields)
			}
			if err := insert(tx, path, "name", &reduction); err != nil {
				return err
			}
			result.Counts.SalaryReductions++
		}

		for i := range payload.ActualBalances {
			rec := payload.ActualBalances[i]
			path := fmt.Sprintf("actual_balances[%d]", i)
			if err := validateRecord(path, &rec); err != nil {
				return err
			}
			balance := models.MonthlyActualBalance{
				BudgetID:       budget.ID,
				Month:          rec.Month,
				Year:           rec.Year,
				ActualIncome:   rec.ActualIncome,
				ActualExpenses: rec.ActualExpenses,
			}
			if err := insert(tx, path, "month", &balance); err != nil {
				return err
			}
			result.Counts.ActualBalances++
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}
