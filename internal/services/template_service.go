package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/models"
	"budgetplaner/internal/pagination"
)

// templateService handles budget templates: CRUD, applying a template to a
// budget and capturing a budget's categories as a template.
type templateService struct {
	db *gorm.DB
}

// NewTemplateService creates a new TemplateServicer.
func NewTemplateService(db *gorm.DB) TemplateServicer {
	return &templateService{db: db}
}

func duplicateTemplate(name string, err error) *apperrors.AppError {
	appErr := apperrors.WithMessage(apperrors.ErrDuplicateName, fmt.Sprintf("A template named %q already exists", name))
	appErr.Internal = err
	return appErr
}

// CreateTemplate creates a template from a list of category shapes.
func (s *templateService) CreateTemplate(name string, categories []models.TemplateCategory) (*models.BudgetTemplate, error) {
	if categories == nil {
		categories = []models.TemplateCategory{}
	}

	template := &models.BudgetTemplate{Name: name, Categories: categories}
	if err := s.db.Create(template).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateTemplate(name, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return template, nil
}

// ListTemplates returns a paginated list of templates ordered by name.
func (s *templateService) ListTemplates(page pagination.PageRequest) (*pagination.PageResponse[models.BudgetTemplate], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.BudgetTemplate{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var templates []models.BudgetTemplate
	if err := s.db.Order("name").Scopes(pagination.Paginate(page)).Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(templates, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTemplateByID returns a template by ID.
func (s *templateService) GetTemplateByID(templateID string) (*models.BudgetTemplate, error) {
	var template models.BudgetTemplate
	if err := s.db.Where("id = ?", templateID).First(&template).Error; err != nil {
		return nil, lookupError(err, apperrors.ErrTemplateNotFound)
	}
	return &template, nil
}

// UpdateTemplate renames a template and/or replaces its categories. A nil
// categories slice leaves them unchanged.
func (s *templateService) UpdateTemplate(templateID string, name *string, categories []models.TemplateCategory) (*models.BudgetTemplate, error) {
	template, err := s.GetTemplateByID(templateID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		template.Name = *name
	}
	if categories != nil {
		template.Categories = categories
	}

	if err := s.db.Save(template).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateTemplate(template.Name, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return template, nil
}

// DeleteTemplate deletes a template.
func (s *templateService) DeleteTemplate(templateID string) error {
	result := s.db.Where("id = ?", templateID).Delete(&models.BudgetTemplate{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTemplateNotFound
	}
	return nil
}

// ApplyTemplate creates every template category the budget does not have yet,
// matched by name. Existing categories are left untouched and no amounts are
// copied. Only the newly created categories are returned.
func (s *templateService) ApplyTemplate(templateID, budgetID string) ([]models.BudgetCategory, error) {
	template, err := s.GetTemplateByID(templateID)
	if err != nil {
		return nil, err
	}
	if err := budgetExists(s.db, budgetID); err != nil {
		return nil, err
	}

	created := []models.BudgetCategory{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, shape := range template.Categories {
			var count int64
			if err := tx.Model(&models.BudgetCategory{}).
				Where("budget_id = ? AND name = ?", budgetID, shape.Name).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			category := categoryFromShape(budgetID, shape)
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			created = append(created, category)
		}
		return nil
	})
	if err != nil {
		return nil, writeError(err, apperrors.ErrDuplicateName)
	}
	return created, nil
}

func categoryFromShape(budgetID string, shape models.TemplateCategory) models.BudgetCategory {
	inputMode := shape.InputMode
	if inputMode == "" {
		inputMode = models.InputModeMonthly
	}
	return models.BudgetCategory{
		BudgetID:         budgetID,
		Name:             shape.Name,
		CategoryType:     shape.CategoryType,
		Order:            shape.Order,
		IsActive:         true,
		InputMode:        inputMode,
		CustomMonths:     shape.CustomMonths,
		CustomStartMonth: shape.CustomStartMonth,
	}
}

// CreateFromBudget captures the active categories of a budget as a template.
// An existing template of the same name is replaced only with overwrite;
// otherwise DUPLICATE_NAME is returned and the template is left as is. created
// reports whether a new template was inserted.
func (s *templateService) CreateFromBudget(budgetID, name string, overwrite bool) (*models.BudgetTemplate, bool, error) {
	if err := budgetExists(s.db, budgetID); err != nil {
		return nil, false, err
	}

	var categories []models.BudgetCategory
	if err := s.db.Where("budget_id = ? AND is_active = ?", budgetID, true).
		Order("sort_order, name").Find(&categories).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	shapes := make([]models.TemplateCategory, 0, len(categories))
	for _, c := range categories {
		shapes = append(shapes, models.TemplateCategory{
			Name:             c.Name,
			CategoryType:     c.CategoryType,
			Order:            c.Order,
			InputMode:        c.InputMode,
			CustomMonths:     c.CustomMonths,
			CustomStartMonth: c.CustomStartMonth,
		})
	}

	var existing models.BudgetTemplate
	err := s.db.Where("name = ?", name).First(&existing).Error
	switch {
	case err == nil:
		if !overwrite {
			return nil, false, duplicateTemplate(name, nil)
		}
		existing.Categories = shapes
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &existing, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// A concurrent creation can still win between the lookup and the insert;
	// the unique index turns that into the same duplicate error.
	template := &models.BudgetTemplate{Name: name, Categories: shapes}
	if err := s.db.Create(template).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, duplicateTemplate(name, err)
		}
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return template, true, nil
}
