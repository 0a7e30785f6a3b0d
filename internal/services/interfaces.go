package services

import (
	"github.com/shopspring/decimal"

	"budgetplaner/internal/models"
	"budgetplaner/internal/pagination"
	"budgetplaner/internal/rules"
)

// BudgetSummary is a budget with its active categories and all its entries.
type BudgetSummary struct {
	Budget     models.Budget           `json:"budget"`
	Categories []models.BudgetCategory `json:"categories"`
	Entries    []models.BudgetEntry    `json:"entries"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(name, currency string) (*models.Budget, error)
	ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(budgetID string) (*models.Budget, error)
	UpdateBudget(budgetID string, name, currency *string) (*models.Budget, error)
	DeleteBudget(budgetID string) error
	GetSummary(budgetID string) (*BudgetSummary, error)
	GetMonthlySummary(budgetID string, month, year int) (*rules.MonthlySummary, error)
	GetYearlySummary(budgetID string, year int) (*rules.YearlySummary, error)
	GetActiveCategories(budgetID string) ([]models.BudgetCategory, error)
	GetAvailableYears(budgetID string) ([]int, error)
	GetSalaryBreakdown(budgetID string, gross decimal.Decimal) (*rules.SalaryBreakdown, error)
}

// CategoryInput carries the writable fields of a category. Nil fields keep
// their current value on update and take the default on create.
type CategoryInput struct {
	Name             *string
	CategoryType     *models.CategoryType
	Order            *int
	IsActive         *bool
	InputMode        *models.InputMode
	CustomMonths     *int
	CustomStartMonth *int
	YearlyAmount     *decimal.Decimal

	// Clear* reset the nullable configuration fields; they win over values.
	ClearCustomMonths     bool
	ClearCustomStartMonth bool
	ClearYearlyAmount     bool
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(budgetID string, in CategoryInput) (*models.BudgetCategory, error)
	ListCategories(page pagination.PageRequest, budgetID string) (*pagination.PageResponse[models.BudgetCategory], error)
	GetCategoryByID(categoryID string) (*models.BudgetCategory, error)
	UpdateCategory(categoryID string, in CategoryInput) (*models.BudgetCategory, error)
	ReorderCategory(categoryID string, order int) (*models.BudgetCategory, error)
	DeleteCategory(categoryID string) error
	GetMonthlyTotals(categoryID string, month, year int) (*rules.CategoryTotals, error)
	GetYearlyTotals(categoryID string, year int) (*rules.CategoryTotals, error)
}

// EntryFilter holds optional filter parameters for listing entries.
type EntryFilter struct {
	BudgetID   string
	CategoryID string
	Month      *int
	Year       *int
}

// EntryInput carries the writable fields of an entry. Status is never
// accepted; it is derived from the amounts.
type EntryInput struct {
	CategoryID    *string
	Month         *int
	Year          *int
	PlannedAmount *decimal.Decimal
	ActualAmount  *decimal.Decimal
	Notes         *string
}

// EntryServicer defines the contract for entry-related business logic.
type EntryServicer interface {
	CreateEntry(in EntryInput) (*models.BudgetEntry, error)
	ListEntries(page pagination.PageRequest, filter EntryFilter) (*pagination.PageResponse[models.BudgetEntry], error)
	GetEntryByID(entryID string) (*models.BudgetEntry, error)
	UpdateEntry(entryID string, in EntryInput) (*models.BudgetEntry, error)
	UpdateActual(entryID string, actual decimal.Decimal) (*models.BudgetEntry, error)
	DeleteEntry(entryID string) error
}

// SalaryReductionInput carries the writable fields of a salary reduction.
type SalaryReductionInput struct {
	Name          *string
	ReductionType *models.ReductionType
	Value         *decimal.Decimal
	Order         *int
	IsActive      *bool
}

// SalaryReductionServicer defines the contract for salary reduction logic.
type SalaryReductionServicer interface {
	CreateSalaryReduction(budgetID string, in SalaryReductionInput) (*models.SalaryReduction, error)
	ListSalaryReductions(page pagination.PageRequest, budgetID string) (*pagination.PageResponse[models.SalaryReduction], error)
	GetSalaryReductionByID(reductionID string) (*models.SalaryReduction, error)
	UpdateSalaryReduction(reductionID string, in SalaryReductionInput) (*models.SalaryReduction, error)
	DeleteSalaryReduction(reductionID string) error
}

// TaxEntryInput carries the writable fields of a tax entry.
type TaxEntryInput struct {
	Name       *string
	Percentage *decimal.Decimal
	Order      *int
	IsActive   *bool
}

// TaxServicer defines the contract for tax entry logic.
type TaxServicer interface {
	CreateTaxEntry(budgetID string, in TaxEntryInput) (*models.TaxEntry, error)
	ListTaxEntries(page pagination.PageRequest, budgetID string) (*pagination.PageResponse[models.TaxEntry], error)
	GetTaxEntryByID(taxID string) (*models.TaxEntry, error)
	UpdateTaxEntry(taxID string, in TaxEntryInput) (*models.TaxEntry, error)
	DeleteTaxEntry(taxID string) error
}

// ActualBalanceInput carries the writable fields of a monthly actual balance.
type ActualBalanceInput struct {
	Month          *int
	Year           *int
	ActualIncome   *decimal.Decimal
	ActualExpenses *decimal.Decimal
}

// ActualBalanceServicer defines the contract for monthly actual balances.
type ActualBalanceServicer interface {
	CreateActualBalance(budgetID string, in ActualBalanceInput) (*models.MonthlyActualBalance, error)
	ListActualBalances(page pagination.PageRequest, budgetID string, year *int) (*pagination.PageResponse[models.MonthlyActualBalance], error)
	GetActualBalanceByID(balanceID string) (*models.MonthlyActualBalance, error)
	UpdateActualBalance(balanceID string, in ActualBalanceInput) (*models.MonthlyActualBalance, error)
	DeleteActualBalance(balanceID string) error
}

// TemplateServicer defines the contract for budget templates.
type TemplateServicer interface {
	CreateTemplate(name string, categories []models.TemplateCategory) (*models.BudgetTemplate, error)
	ListTemplates(page pagination.PageRequest) (*pagination.PageResponse[models.BudgetTemplate], error)
	GetTemplateByID(templateID string) (*models.BudgetTemplate, error)
	UpdateTemplate(templateID string, name *string, categories []models.TemplateCategory) (*models.BudgetTemplate, error)
	DeleteTemplate(templateID string) error
	ApplyTemplate(templateID, budgetID string) ([]models.BudgetCategory, error)
	CreateFromBudget(budgetID, name string, overwrite bool) (template *models.BudgetTemplate, created bool, err error)
}

// ImportServicer defines the contract for importing a budget aggregate.
type ImportServicer interface {
	ImportBudget(payload BudgetPayload) (*ImportResult, error)
}

// ExportServicer loads everything needed to render or serialize a budget.
type ExportServicer interface {
	LoadBudgetYear(budgetID string, year int) (*BudgetYear, error)
	ExportPayload(budgetID string) (*BudgetPayload, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
