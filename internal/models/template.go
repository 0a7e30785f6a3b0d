package models

// TemplateCategory is the shape of a category without any amounts.
type TemplateCategory struct {
	Name             string       `json:"name"`
	CategoryType     CategoryType `json:"category_type"`
	Order            int          `json:"order"`
	InputMode        InputMode    `json:"input_mode,omitempty"`
	CustomMonths     *int         `json:"custom_months,omitempty"`
	CustomStartMonth *int         `json:"custom_start_month,omitempty"`
}

// BudgetTemplate is a reusable list of category shapes.
type BudgetTemplate struct {
	Base
	Name       string             `gorm:"size:200;not null;uniqueIndex:idx_budget_templates_name" json:"name"`
	Categories []TemplateCategory `gorm:"serializer:json;type:text;not null" json:"categories"`
}
