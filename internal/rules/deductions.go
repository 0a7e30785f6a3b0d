package rules

import (
	"github.com/shopspring/decimal"

	"budgetplaner/internal/models"
)

// ReductionAmount returns what r deducts from gross. A zero gross deducts
// nothing, even for fixed reductions.
func ReductionAmount(r models.SalaryReduction, gross decimal.Decimal) decimal.Decimal {
	if gross.IsZero() {
		return decimal.Zero
	}
	if r.ReductionType == models.ReductionTypePercentage {
		return gross.Mul(r.Value).Div(hundred)
	}
	return r.Value
}

// TaxAmount returns the tax t levies on salary.
func TaxAmount(t models.TaxEntry, salary decimal.Decimal) decimal.Decimal {
	if salary.IsZero() {
		return decimal.Zero
	}
	return salary.Mul(t.Percentage).Div(hundred)
}

// DeductionLine is one computed reduction or tax.
type DeductionLine struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// SalaryBreakdown lists the deductions taken from a gross salary.
type SalaryBreakdown struct {
	Gross           decimal.Decimal `json:"gross"`
	Reductions      []DeductionLine `json:"reductions"`
	Taxes           []DeductionLine `json:"taxes"`
	TotalReductions decimal.Decimal `json:"total_reductions"`
	TotalTaxes      decimal.Decimal `json:"total_taxes"`
	Net             decimal.Decimal `json:"net"`
}

// BreakdownSalary applies every active reduction and tax to gross. Both are
// computed from the gross figure; inactive rows are skipped.
func BreakdownSalary(gross decimal.Decimal, reductions []models.SalaryReduction, taxes []models.TaxEntry) SalaryBreakdown {
	b := SalaryBreakdown{
		Gross:           gross,
		Reductions:      []DeductionLine{},
		Taxes:           []DeductionLine{},
		TotalReductions: decimal.Zero,
		TotalTaxes:      decimal.Zero,
	}

	for _, r := range reductions {
		if !r.IsActive {
			continue
		}
		amount := ReductionAmount(r, gross)
		b.Reductions = append(b.Reductions, DeductionLine{
			ID: r.ID, Name: r.Name, Rate: r.Value, Type: string(r.ReductionType), Amount: amount,
		})
		b.TotalReductions = b.TotalReductions.Add(amount)
	}

	for _, t := range taxes {
		if !t.IsActive {
			continue
		}
		amount := TaxAmount(t, gross)
		b.Taxes = append(b.Taxes, DeductionLine{
			ID: t.ID, Name: t.Name, Rate: t.Percentage, Type: "TAX", Amount: amount,
		})
		b.TotalTaxes = b.TotalTaxes.Add(amount)
	}

	b.Net = gross.Sub(b.TotalReductions).Sub(b.TotalTaxes)
	return b
}
