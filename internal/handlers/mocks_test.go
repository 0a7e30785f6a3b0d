package handlers

import (
	"github.com/shopspring/decimal"

	"budgetplaner/internal/models"
	"budgetplaner/internal/pagination"
	"budgetplaner/internal/rules"
	"budgetplaner/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn        func(name, currency string) (*models.Budget, error)
	listBudgetsFn         func(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	getBudgetByIDFn       func(budgetID string) (*models.Budget, error)
	updateBudgetFn        func(budgetID string, name, currency *string) (*models.Budget, error)
	deleteBudgetFn        func(budgetID string) error
	getSummaryFn          func(budgetID string) (*services.BudgetSummary, error)
	getMonthlySummaryFn   func(budgetID string, month, year int) (*rules.MonthlySummary, error)
	getYearlySummaryFn    func(budgetID string, year int) (*rules.YearlySummary, error)
	getActiveCategoriesFn func(budgetID string) ([]models.BudgetCategory, error)
	getAvailableYearsFn   func(budgetID string) ([]int, error)
	getSalaryBreakdownFn  func(budgetID string, gross decimal.Decimal) (*rules.SalaryBreakdown, error)
}

func (m *mockBudgetService) CreateBudget(name, currency string) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(name, currency)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	if m.listBudgetsFn != nil {
		return m.listBudgetsFn(page)
	}
	resp := pagination.NewPageResponse([]models.Budget{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockBudgetService) GetBudgetByID(budgetID string) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateBudget(budgetID string, name, currency *string) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(budgetID, name, currency)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) DeleteBudget(budgetID string) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(budgetID)
	}
	return nil
}

func (m *mockBudgetService) GetSummary(budgetID string) (*services.BudgetSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(budgetID)
	}
	return &services.BudgetSummary{}, nil
}

func (m *mockBudgetService) GetMonthlySummary(budgetID string, month, year int) (*rules.MonthlySummary, error) {
	if m.getMonthlySummaryFn != nil {
		return m.getMonthlySummaryFn(budgetID, month, year)
	}
	return &rules.MonthlySummary{Month: month, Year: year}, nil
}

func (m *mockBudgetService) GetYearlySummary(budgetID string, year int) (*rules.YearlySummary, error) {
	if m.getYearlySummaryFn != nil {
		return m.getYearlySummaryFn(budgetID, year)
	}
	return &rules.YearlySummary{Year: year}, nil
}

func (m *mockBudgetService) GetActiveCategories(budgetID string) ([]models.BudgetCategory, error) {
	if m.getActiveCategoriesFn != nil {
		return m.getActiveCategoriesFn(budgetID)
	}
	return []models.BudgetCategory{}, nil
}

func (m *mockBudgetService) GetAvailableYears(budgetID string) ([]int, error) {
	if m.getAvailableYearsFn != nil {
		return m.getAvailableYearsFn(budgetID)
	}
	return []int{}, nil
}

func (m *mockBudgetService) GetSalaryBreakdown(budgetID string, gross decimal.Decimal) (*rules.SalaryBreakdown, error) {
	if m.getSalaryBreakdownFn != nil {
		return m.getSalaryBreakdownFn(budgetID, gross)
	}
	return &rules.SalaryBreakdown{Gross: gross}, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn   func(budgetID string, in services.CategoryInput) (*models.BudgetCategory, error)
	listCategoriesFn   func(page pagination.PageRequest, budgetID string) (*pagination.PageResponse[models.BudgetCategory], error)
	getCategoryByIDFn  func(categoryID string) (*models.BudgetCategory, error)
	updateCategoryFn   func(categoryID string, in services.CategoryInput) (*models.BudgetCategory, error)
	reorderCategoryFn  func(categoryID string, order int) (*models.BudgetCategory, error)
	deleteCategoryFn   func(categoryID string) error
	getMonthlyTotalsFn func(categoryID string, month, year int) (*rules.CategoryTotals, error)
	getYearlyTotalsFn  func(categoryID string, year int) (*rules.CategoryTotals, error)
}

func (m *mockCategoryService) CreateCategory(budgetID string, in services.CategoryInput) (*models.BudgetCategory, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(budgetID, in)
	}
	return &models.BudgetCategory{}, nil
}

func (m *mockCategoryService) ListCategories(page pagination.PageRequest, budgetID string) (*pagination.PageResponse[models.BudgetCategory], error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(page, budgetID)
	}
	resp := pagination.NewPageResponse([]models.BudgetCategory{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockCategoryService) GetCategoryByID(categoryID string) (*models.BudgetCategory, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(categoryID)
	}
	return &models.BudgetCategory{}, nil
}

func (m *mockCategoryService) UpdateCategory(categoryID string, in services.CategoryInput) (*models.BudgetCategory, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(categoryID, in)
	}
	return &models.BudgetCategory{}, nil
}

func (m *mockCategoryService) ReorderCategory(categoryID string, order int) (*models.BudgetCategory, error) {
	if m.reorderCategoryFn != nil {
		return m.reorderCategoryFn(categoryID, order)
	}
	return &models.BudgetCategory{Order: order}, nil
}

func (m *mockCategoryService) DeleteCategory(categoryID string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(categoryID)
	}
	return nil
}

func (m *mockCategoryService) GetMonthlyTotals(categoryID string, month, year int) (*rules.CategoryTotals, error) {
	if m.getMonthlyTotalsFn != nil {
		return m.getMonthlyTotalsFn(categoryID, month, year)
	}
	return &rules.CategoryTotals{Month: month, Year: year}, nil
}

func (m *mockCategoryService) GetYearlyTotals(categoryID string, year int) (*rules.CategoryTotals, error) {
	if m.getYearlyTotalsFn != nil {
		return m.getYearlyTotalsFn(categoryID, year)
	}
	return &rules.CategoryTotals{Year: year}, nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

// --- mock entry service ---

type mockEntryService struct {
	createEntryFn  func(in services.EntryInput) (*models.BudgetEntry, error)
	listEntriesFn  func(page pagination.PageRequest, filter services.EntryFilter) (*pagination.PageResponse[models.BudgetEntry], error)
	getEntryByIDFn func(entryID string) (*models.BudgetEntry, error)
	updateEntryFn  func(entryID string, in services.EntryInput) (*models.BudgetEntry, error)
	updateActualFn func(entryID string, actual decimal.Decimal) (*models.BudgetEntry, error)
	deleteEntryFn  func(entryID string) error
}

func (m *mockEntryService) CreateEntry(in services.EntryInput) (*models.BudgetEntry, error) {
	if m.createEntryFn != nil {
		return m.createEntryFn(in)
	}
	return &models.BudgetEntry{}, nil
}

func (m *mockEntryService) ListEntries(page pagination.PageRequest, filter services.EntryFilter) (*pagination.PageResponse[models.BudgetEntry], error) {
	if m.listEntriesFn != nil {
		return m.listEntriesFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.BudgetEntry{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockEntryService) GetEntryByID(entryID string) (*models.BudgetEntry, error) {
	if m.getEntryByIDFn != nil {
		return m.getEntryByIDFn(entryID)
	}
	return &models.BudgetEntry{}, nil
}

func (m *mockEntryService) UpdateEntry(entryID string, in services.EntryInput) (*models.BudgetEntry, error) {
	if m.updateEntryFn != nil {
		return m.updateEntryFn(entryID, in)
	}
	return &models.BudgetEntry{}, nil
}

func (m *mockEntryService) UpdateActual(entryID string, actual decimal.Decimal) (*models.BudgetEntry, error) {
	if m.updateActualFn != nil {
		return m.updateActualFn(entryID, actual)
	}
	return &models.BudgetEntry{}, nil
}

func (m *mockEntryService) DeleteEntry(entryID string) error {
	if m.deleteEntryFn != nil {
		return m.deleteEntryFn(entryID)
	}
	return nil
}

var _ services.EntryServicer = (*mockEntryService)(nil)

// --- mock deduction services ---

type mockSalaryReductionService struct {
	createFn func(budgetID string, in services.SalaryReductionInput) (*models.SalaryReduction, error)
	deleteFn func(reductionID string) error
}

func (m *mockSalaryReductionService) CreateSalaryReduction(budgetID string, in services.SalaryReductionInput) (*models.SalaryReduction, error) {
	if m.createFn != nil {
		return m.createFn(budgetID, in)
	}
	return &models.SalaryReduction{}, nil
}

func (m *mockSalaryReductionService) ListSalaryReductions(_ pagination.PageRequest, _ string) (*pagination.PageResponse[models.SalaryReduction], error) {
	resp := pagination.NewPageResponse([]models.SalaryReduction{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockSalaryReductionService) GetSalaryReductionByID(_ string) (*models.SalaryReduction, error) {
	return &models.SalaryReduction{}, nil
}

func (m *mockSalaryReductionService) UpdateSalaryReduction(_ string, _ services.SalaryReductionInput) (*models.SalaryReduction, error) {
	return &models.SalaryReduction{}, nil
}

func (m *mockSalaryReductionService) DeleteSalaryReduction(reductionID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(reductionID)
	}
	return nil
}

var _ services.SalaryReductionServicer = (*mockSalaryReductionService)(nil)

type mockTaxService struct {
	createFn func(budgetID string, in services.TaxEntryInput) (*models.TaxEntry, error)
	updateFn func(taxID string, in services.TaxEntryInput) (*models.TaxEntry, error)
}

func (m *mockTaxService) CreateTaxEntry(budgetID string, in services.TaxEntryInput) (*models.TaxEntry, error) {
	if m.createFn != nil {
		return m.createFn(budgetID, in)
	}
	return &models.TaxEntry{}, nil
}

func (m *mockTaxService) ListTaxEntries(_ pagination.PageRequest, _ string) (*pagination.PageResponse[models.TaxEntry], error) {
	resp := pagination.NewPageResponse([]models.TaxEntry{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockTaxService) GetTaxEntryByID(_ string) (*models.TaxEntry, error) {
	return &models.TaxEntry{}, nil
}

func (m *mockTaxService) UpdateTaxEntry(taxID string, in services.TaxEntryInput) (*models.TaxEntry, error) {
	if m.updateFn != nil {
		return m.updateFn(taxID, in)
	}
	return &models.TaxEntry{}, nil
}

func (m *mockTaxService) DeleteTaxEntry(_ string) error {
	return nil
}

var _ services.TaxServicer = (*mockTaxService)(nil)

// --- mock actual balance service ---

type mockActualBalanceService struct {
	createFn func(budgetID string, in services.ActualBalanceInput) (*models.MonthlyActualBalance, error)
	listFn   func(page pagination.PageRequest, budgetID string, year *int) (*pagination.PageResponse[models.MonthlyActualBalance], error)
}

func (m *mockActualBalanceService) CreateActualBalance(budgetID string, in services.ActualBalanceInput) (*models.MonthlyActualBalance, error) {
	if m.createFn != nil {
		return m.createFn(budgetID, in)
	}
	return &models.MonthlyActualBalance{}, nil
}

func (m *mockActualBalanceService) ListActualBalances(page pagination.PageRequest, budgetID string, year *int) (*pagination.PageResponse[models.MonthlyActualBalance], error) {
	if m.listFn != nil {
		return m.listFn(page, budgetID, year)
	}
	resp := pagination.NewPageResponse([]models.MonthlyActualBalance{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockActualBalanceService) GetActualBalanceByID(_ string) (*models.MonthlyActualBalance, error) {
	return &models.MonthlyActualBalance{}, nil
}

func (m *mockActualBalanceService) UpdateActualBalance(_ string, _ services.ActualBalanceInput) (*models.MonthlyActualBalance, error) {
	return &models.MonthlyActualBalance{}, nil
}

func (m *mockActualBalanceService) DeleteActualBalance(_ string) error {
	return nil
}

var _ services.ActualBalanceServicer = (*mockActualBalanceService)(nil)

// --- mock template service ---

type mockTemplateService struct {
	createTemplateFn   func(name string, categories []models.TemplateCategory) (*models.BudgetTemplate, error)
	updateTemplateFn   func(templateID string, name *string, categories []models.TemplateCategory) (*models.BudgetTemplate, error)
	applyTemplateFn    func(templateID, budgetID string) ([]models.BudgetCategory, error)
	createFromBudgetFn func(budgetID, name string, overwrite bool) (*models.BudgetTemplate, bool, error)
}

func (m *mockTemplateService) CreateTemplate(name string, categories []models.TemplateCategory) (*models.BudgetTemplate, error) {
	if m.createTemplateFn != nil {
		return m.createTemplateFn(name, categories)
	}
	return &models.BudgetTemplate{Name: name, Categories: categories}, nil
}

func (m *mockTemplateService) ListTemplates(_ pagination.PageRequest) (*pagination.PageResponse[models.BudgetTemplate], error) {
	resp := pagination.NewPageResponse([]models.BudgetTemplate{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockTemplateService) GetTemplateByID(_ string) (*models.BudgetTemplate, error) {
	return &models.BudgetTemplate{}, nil
}

func (m *mockTemplateService) UpdateTemplate(templateID string, name *string, categories []models.TemplateCategory) (*models.BudgetTemplate, error) {
	if m.updateTemplateFn != nil {
		return m.updateTemplateFn(templateID, name, categories)
	}
	return &models.BudgetTemplate{}, nil
}

func (m *mockTemplateService) DeleteTemplate(_ string) error {
	return nil
}

func (m *mockTemplateService) ApplyTemplate(templateID, budgetID string) ([]models.BudgetCategory, error) {
	if m.applyTemplateFn != nil {
		return m.applyTemplateFn(templateID, budgetID)
	}
	return []models.BudgetCategory{}, nil
}

func (m *mockTemplateService) CreateFromBudget(budgetID, name string, overwrite bool) (*models.BudgetTemplate, bool, error) {
	if m.createFromBudgetFn != nil {
		return m.createFromBudgetFn(budgetID, name, overwrite)
	}
	return &models.BudgetTemplate{Name: name}, true, nil
}

var _ services.TemplateServicer = (*mockTemplateService)(nil)

// --- mock import/export services ---

type mockExportService struct {
	loadBudgetYearFn func(budgetID string, year int) (*services.BudgetYear, error)
	exportPayloadFn  func(budgetID string) (*services.BudgetPayload, error)
}

func (m *mockExportService) LoadBudgetYear(budgetID string, year int) (*services.BudgetYear, error) {
	if m.loadBudgetYearFn != nil {
		return m.loadBudgetYearFn(budgetID, year)
	}
	return &services.BudgetYear{Budget: models.Budget{Name: "Test"}, Year: year}, nil
}

func (m *mockExportService) ExportPayload(budgetID string) (*services.BudgetPayload, error) {
	if m.exportPayloadFn != nil {
		return m.exportPayloadFn(budgetID)
	}
	return &services.BudgetPayload{}, nil
}

var _ services.ExportServicer = (*mockExportService)(nil)

type mockImportService struct {
	importBudgetFn func(payload services.BudgetPayload) (*services.ImportResult, error)
}

func (m *mockImportService) ImportBudget(payload services.BudgetPayload) (*services.ImportResult, error) {
	if m.importBudgetFn != nil {
		return m.importBudgetFn(payload)
	}
	return &services.ImportResult{}, nil
}

var _ services.ImportServicer = (*mockImportService)(nil)

// --- mock audit service ---

type mockAuditService struct {
	actions []string
}

func (m *mockAuditService) Log(action, _, _, _ string, _ map[string]interface{}) {
	m.actions = append(m.actions, action)
}

var _ services.AuditServicer = (*mockAuditService)(nil)
