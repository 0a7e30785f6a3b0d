// Package errors provides custom error types for the Budget Planer API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional field-level messages
// and an optional internal error.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
	StatusCode int               `json:"-"`
	Internal   error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Fields:     sentinel.Fields,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Fields:     sentinel.Fields,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithFields creates a new AppError carrying field-level validation messages.
// The message is kept from the sentinel unless one is given.
func WithFields(sentinel *AppError, message string, fields map[string]string) *AppError {
	if message == "" {
		message = sentinel.Message
	}
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Fields:     fields,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrValidation     = &AppError{Code: "VALIDATION_ERROR", Message: "Validation failed", StatusCode: http.StatusBadRequest}
	ErrUnauthorized   = &AppError{Code: "UNAUTHORIZED", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrDuplicateName  = &AppError{Code: "DUPLICATE_NAME", Message: "A record with this name already exists", StatusCode: http.StatusConflict}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Budget errors.
var (
	ErrBudgetNotFound = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
)

// Entry errors.
var (
	ErrEntryNotFound  = &AppError{Code: "ENTRY_NOT_FOUND", Message: "Budget entry not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEntry = &AppError{Code: "DUPLICATE_ENTRY", Message: "An entry for this category, month and year already exists", StatusCode: http.StatusConflict}
)

// Deduction errors.
var (
	ErrSalaryReductionNotFound = &AppError{Code: "SALARY_REDUCTION_NOT_FOUND", Message: "Salary reduction not found", StatusCode: http.StatusNotFound}
	ErrTaxEntryNotFound        = &AppError{Code: "TAX_ENTRY_NOT_FOUND", Message: "Tax entry not found", StatusCode: http.StatusNotFound}
)

// Actual balance errors.
var (
	ErrActualBalanceNotFound  = &AppError{Code: "ACTUAL_BALANCE_NOT_FOUND", Message: "Monthly actual balance not found", StatusCode: http.StatusNotFound}
	ErrDuplicateActualBalance = &AppError{Code: "DUPLICATE_ENTRY", Message: "An actual balance for this month and year already exists", StatusCode: http.StatusConflict}
)

// Template errors.
var (
	ErrTemplateNotFound = &AppError{Code: "TEMPLATE_NOT_FOUND", Message: "Template not found", StatusCode: http.StatusNotFound}
)
