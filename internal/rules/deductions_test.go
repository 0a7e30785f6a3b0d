package rules

import (
	"testing"

	"github.com/shopspring/decimal"

	"budgetplaner/internal/models"
)

func TestReductionAmount(t *testing.T) {
	pct := models.SalaryReduction{ReductionType: models.ReductionTypePercentage, Value: dec("5.3")}
	fixed := models.SalaryReduction{ReductionType: models.ReductionTypeFixed, Value: dec("350")}

	if got := ReductionAmount(pct, dec("8000")); !got.Equal(dec("424")) {
		t.Errorf("expected 424, got %s", got)
	}
	if got := ReductionAmount(fixed, dec("8000")); !got.Equal(dec("350")) {
		t.Errorf("expected 350, got %s", got)
	}
	if got := ReductionAmount(fixed, decimal.Zero); !got.IsZero() {
		t.Errorf("expected 0 for zero gross, got %s", got)
	}
	if got := ReductionAmount(pct, decimal.Zero); !got.IsZero() {
		t.Errorf("expected 0 for zero gross, got %s", got)
	}
}

func TestTaxAmount(t *testing.T) {
	tax := models.TaxEntry{Percentage: dec("10.5")}
	if got := TaxAmount(tax, dec("5000")); !got.Equal(dec("525")) {
		t.Errorf("expected 525, got %s", got)
	}
	if got := TaxAmount(tax, decimal.Zero); !got.IsZero() {
		t.Errorf("expected 0, got %s", got)
	}
}

func TestBreakdownSalary(t *testing.T) {
	reductions := []models.SalaryReduction{
		{Base: models.Base{ID: "r1"}, Name: "AHV", ReductionType: models.ReductionTypePercentage, Value: dec("5.3"), IsActive: true},
		{Base: models.Base{ID: "r2"}, Name: "Krankenkasse", ReductionType: models.ReductionTypeFixed, Value: dec("400"), IsActive: true},
		{Base: models.Base{ID: "r3"}, Name: "Old", ReductionType: models.ReductionTypeFixed, Value: dec("1000"), IsActive: false},
	}
	taxes := []models.TaxEntry{
		{Base: models.Base{ID: "t1"}, Name: "Einkommenssteuer", Percentage: dec("10"), IsActive: true},
	}

	b := BreakdownSalary(dec("10000"), reductions, taxes)
	if len(b.Reductions) != 2 {
		t.Fatalf("expected 2 active reductions, got %d", len(b.Reductions))
	}
	if !b.TotalReductions.Equal(dec("930")) {
		t.Errorf("expected reductions 930, got %s", b.TotalReductions)
	}
	if !b.TotalTaxes.Equal(dec("1000")) {
		t.Errorf("expected taxes 1000, got %s", b.TotalTaxes)
	}
	if !b.Net.Equal(dec("8070")) {
		t.Errorf("expected net 8070, got %s", b.Net)
	}
	if b.Taxes[0].Type != "TAX" || b.Reductions[1].Type != "FIXED" {
		t.Errorf("unexpected line types: %+v %+v", b.Taxes[0], b.Reductions[1])
	}
}
