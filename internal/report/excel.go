// Package report renders budget years as xlsx workbooks and PNG charts.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"budgetplaner/internal/models"
	"budgetplaner/internal/rules"
	"budgetplaner/internal/services"
)

// ContentTypeXLSX is the media type of the workbook export.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DeductionsSheet is the name of the second worksheet.
const DeductionsSheet = "Abzüge"

const (
	maxSheetName = 31
	totalCol     = 14
	amountFormat = 4 // #,##0.00
)

// Months are the German month names used as column headers.
var Months = [12]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// groupLabels are the row group headers, in report order.
var groupLabels = map[models.CategoryType]string{
	models.CategoryTypeIncome:          "Einnahmen",
	models.CategoryTypeFixedExpense:    "Fixkosten",
	models.CategoryTypeVariableExpense: "Variable Kosten",
	models.CategoryTypeSavings:         "Sparen",
}

var statusColors = map[models.EntryStatus]string{
	models.StatusWithinBudget: "C6EFCE",
	models.StatusWarning:      "FFEB9C",
	models.StatusOverBudget:   "FFC7CE",
}

const (
	colorHeader   = "D3D3D3"
	colorGroup    = "E8E8E8"
	colorPositive = "C6EFCE"
	colorNegative = "FFC7CE"
)

// Filename returns the download name of the workbook of data.
func Filename(data *services.BudgetYear) string {
	return fmt.Sprintf("%s_%d.xlsx", data.Budget.Name, data.Year)
}

// SheetName turns a budget name and year into a valid worksheet name.
func SheetName(name string, year int) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, name)
	clean = strings.TrimSpace(strings.Trim(clean, "'"))
	if clean == "" {
		clean = "Budget"
	}

	runes := []rune(fmt.Sprintf("%s %d", clean, year))
	if len(runes) > maxSheetName {
		runes = runes[:maxSheetName]
	}
	// Excel rejects a leading or trailing apostrophe, which truncation can expose.
	return strings.Trim(string(runes), "' ")
}

// styles holds the style ids of one workbook.
type styles struct {
	header    int
	group     int
	label     int
	amount    int
	total     int
	status    map[models.EntryStatus]int
	balance   [2]int // positive, negative
	sumLabel  int
	sumAmount int
}

func newStyles(f *excelize.File) (*styles, error) {
	s := &styles{status: make(map[models.EntryStatus]int)}
	var err error
	add := func(st *excelize.Style) int {
		if err != nil {
			return 0
		}
		var id int
		id, err = f.NewStyle(st)
		return id
	}
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}
	right := &excelize.Alignment{Horizontal: "right"}

	s.header = add(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      fill(colorHeader),
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	s.group = add(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}, Fill: fill(colorGroup)})
	s.label = add(&excelize.Style{})
	s.amount = add(&excelize.Style{NumFmt: amountFormat, Alignment: right})
	s.total = add(&excelize.Style{NumFmt: amountFormat, Alignment: right, Font: &excelize.Font{Bold: true}})
	for status, color := range statusColors {
		s.status[status] = add(&excelize.Style{NumFmt: amountFormat, Alignment: right, Fill: fill(color)})
	}
	s.balance[0] = add(&excelize.Style{NumFmt: amountFormat, Alignment: right, Font: &excelize.Font{Bold: true}, Fill: fill(colorPositive)})
	s.balance[1] = add(&excelize.Style{NumFmt: amountFormat, Alignment: right, Font: &excelize.Font{Bold: true}, Fill: fill(colorNegative)})
	s.sumLabel = add(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	s.sumAmount = add(&excelize.Style{NumFmt: amountFormat, Alignment: right, Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return nil, fmt.Errorf("create styles: %w", err)
	}
	return s, nil
}

// sheetWriter writes cells of one worksheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col, row int, value interface{}, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, cell, cell, style)
}

func (w *sheetWriter) amount(col, row int, d decimal.Decimal, style int) {
	w.set(col, row, d.InexactFloat64(), style)
}

func (w *sheetWriter) headerRow(s *styles, first string) {
	w.set(1, 1, first, s.header)
	for i, month := range Months {
		w.set(i+2, 1, month, s.header)
	}
	w.set(totalCol, 1, "Gesamt", s.header)
}

func (w *sheetWriter) widths() {
	if w.err != nil {
		return
	}
	if err := w.f.SetColWidth(w.sheet, "A", "A", 25); err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetColWidth(w.sheet, "B", "N", 12)
}

// NewWorkbook builds the xlsx export of one budget year: a planning sheet
// grouped by category type with a BILANZ row, and a deductions sheet.
// data.Entries must hold only entries of data.Year with Category loaded.
func NewWorkbook(data *services.BudgetYear) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	sheet := SheetName(data.Budget.Name, data.Year)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writePlan(f, sheet, st, data); err != nil {
		f.Close()
		return nil, fmt.Errorf("write %s: %w", sheet, err)
	}

	if _, err := f.NewSheet(DeductionsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("add sheet: %w", err)
	}
	if err := writeDeductions(f, DeductionsSheet, st, data); err != nil {
		f.Close()
		return nil, fmt.Errorf("write %s: %w", DeductionsSheet, err)
	}
	return f, nil
}

// WriteWorkbook renders the xlsx export of data to w.
func WriteWorkbook(w io.Writer, data *services.BudgetYear) error {
	f, err := NewWorkbook(data)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

func writePlan(f *excelize.File, sheet string, st *styles, data *services.BudgetYear) error {
	w := &sheetWriter{f: f, sheet: sheet}
	w.headerRow(st, "Kategorie")

	byCategory := make(map[string]map[int]models.BudgetEntry)
	for _, e := range data.Entries {
		if byCategory[e.CategoryID] == nil {
			byCategory[e.CategoryID] = make(map[int]models.BudgetEntry)
		}
		byCategory[e.CategoryID][e.Month] = e
	}

	row := 2
	for _, categoryType := range models.CategoryTypes {
		var group []models.BudgetCategory
		for _, c := range data.Categories {
			if c.IsActive && c.CategoryType == categoryType {
				group = append(group, c)
			}
		}
		if len(group) == 0 {
			continue
		}

		w.set(1, row, groupLabels[categoryType], st.group)
		row++
		for _, c := range group {
			w.set(1, row, c.Name, st.label)
			total := decimal.Zero
			for month := 1; month <= 12; month++ {
				e, ok := byCategory[c.ID][month]
				if !ok {
					w.amount(month+1, row, decimal.Zero, st.amount)
					continue
				}
				amount := rules.EffectiveAmount(e)
				total = total.Add(amount)
				style := st.amount
				if e.ActualAmount.Valid && !e.ActualAmount.Decimal.IsZero() {
					if id, ok := st.status[e.Status]; ok {
						style = id
					}
				}
				w.amount(month+1, row, amount, style)
			}
			w.amount(totalCol, row, total, st.total)
			row++
		}
		row++
	}

	summary := rules.SummarizeYear(data.Year, data.Entries)
	w.set(1, row, "BILANZ", st.sumLabel)
	for _, m := range summary.MonthlySummaries {
		style := st.balance[0]
		if m.Balance.IsNegative() {
			style = st.balance[1]
		}
		w.amount(m.Month+1, row, m.Balance, style)
	}
	w.amount(totalCol, row, summary.Balance, st.sumAmount)

	w.widths()
	return w.err
}

// writeDeductions lists, per month, the income as gross salary, every
// active reduction and tax computed from it, and the resulting net.
func writeDeductions(f *excelize.File, sheet string, st *styles, data *services.BudgetYear) error {
	w := &sheetWriter{f: f, sheet: sheet}
	w.headerRow(st, "Position")

	summary := rules.SummarizeYear(data.Year, data.Entries)
	breakdowns := make([]rules.SalaryBreakdown, 12)
	for i, m := range summary.MonthlySummaries {
		breakdowns[i] = rules.BreakdownSalary(m.TotalIncome, data.Reductions, data.Taxes)
	}

	row := 2
	line := func(label string, style, totalStyle int, amount func(b rules.SalaryBreakdown) decimal.Decimal) {
		w.set(1, row, label, st.label)
		total := decimal.Zero
		for i, b := range breakdowns {
			v := amount(b)
			total = total.Add(v)
			w.amount(i+2, row, v, style)
		}
		w.amount(totalCol, row, total, totalStyle)
		row++
	}

	line("Brutto", st.amount, st.total, func(b rules.SalaryBreakdown) decimal.Decimal { return b.Gross })

	for i, r := range activeReductions(data.Reductions) {
		label := r.Name
		if r.ReductionType == models.ReductionTypePercentage {
			label = fmt.Sprintf("%s (%s%%)", r.Name, r.Value.String())
		}
		line(label, st.amount, st.total, func(b rules.SalaryBreakdown) decimal.Decimal { return b.Reductions[i].Amount })
	}
	for i, t := range activeTaxes(data.Taxes) {
		label := fmt.Sprintf("%s (%s%%)", t.Name, t.Percentage.String())
		line(label, st.amount, st.total, func(b rules.SalaryBreakdown) decimal.Decimal { return b.Taxes[i].Amount })
	}

	w.set(1, row, "Netto", st.sumLabel)
	net := decimal.Zero
	for i, b := range breakdowns {
		net = net.Add(b.Net)
		w.amount(i+2, row, b.Net, st.total)
	}
	w.amount(totalCol, row, net, st.sumAmount)

	w.widths()
	return w.err
}

func activeReductions(in []models.SalaryReduction) []models.SalaryReduction {
	var out []models.SalaryReduction
	for _, r := range in {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out
}

func activeTaxes(in []models.TaxEntry) []models.TaxEntry {
	var out []models.TaxEntry
	for _, t := range in {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out
}
