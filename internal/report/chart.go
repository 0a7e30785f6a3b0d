package report

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"budgetplaner/internal/rules"
	"budgetplaner/internal/services"
)

// ContentTypePNG is the media type of the chart export.
const ContentTypePNG = "image/png"

var monthTicks = func() []chart.Tick {
	ticks := make([]chart.Tick, 12)
	for i, name := range Months {
		ticks[i] = chart.Tick{Value: float64(i + 1), Label: string([]rune(name)[:3])}
	}
	return ticks
}()

// WriteChart renders a PNG line chart of the monthly income, expenses and
// running balance of data to w.
func WriteChart(w io.Writer, data *services.BudgetYear) error {
	summary := rules.SummarizeYear(data.Year, data.Entries)

	months := make([]float64, 12)
	income := make([]float64, 12)
	expenses := make([]float64, 12)
	running := make([]float64, 12)
	for i, m := range summary.MonthlySummaries {
		months[i] = float64(m.Month)
		income[i] = m.TotalIncome.InexactFloat64()
		expenses[i] = m.TotalExpenses.InexactFloat64()
		running[i] = m.RunningBalance.InexactFloat64()
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s %d", data.Budget.Name, data.Year),
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding:   chart.Box{Top: 60, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			Ticks: monthTicks,
			Style: chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		},
		YAxis: chart.YAxis{
			Range: yRange(income, expenses, running),
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f %s", v.(float64), data.Budget.Currency)
			},
			Style: chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Einnahmen",
				XValues: months,
				YValues: income,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "Ausgaben",
				XValues: months,
				YValues: expenses,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "Bilanz kumuliert",
				XValues: months,
				YValues: running,
				Style: chart.Style{
					StrokeColor:     chart.ColorBlue,
					StrokeWidth:     3,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{FontSize: 12, FontColor: chart.ColorBlack}),
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// yRange spans all values with some headroom. A flat series (an empty year)
// still gets a non-zero range.
func yRange(series ...[]float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, values := range series {
		for _, v := range values {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
