package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/awlake/medallion-pipeline/internal/tables"
)

// renderMonthlyTrend draws the month-by-month sales line chart.
func renderMonthlyTrend(monthly []tables.MonthlySalesRow) ([]byte, error) {
	xs := make([]float64, len(monthly))
	ys := make([]float64, len(monthly))
	ticks := make([]chart.Tick, len(monthly))
	for i, m := range monthly {
		xs[i] = float64(i)
		ys[i] = m.MonthlySales
		ticks[i] = chart.Tick{
			Value: float64(i),
			Label: fmt.Sprintf("%d-%02d", m.Year, m.Month),
		}
	}

	graph := chart.Chart{
		Title:  "Monthly Sales Trend",
		Width:  1200,
		Height: 600,
		XAxis: chart.XAxis{
			Name:  "Year-Month",
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "Sales Amount ($)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Monthly Sales",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render monthly trend: %w", err)
	}
	return buf.Bytes(), nil
}

// renderTopProducts draws the top-10-products-by-sales bar chart. The
// summary view is already sorted by TotalSales descending.
func renderTopProducts(summary []tables.SalesSummaryRow) ([]byte, error) {
	top := summary
	if len(top) > 10 {
		top = top[:10]
	}

	bars := make([]chart.Value, len(top))
	for i, s := range top {
		bars[i] = chart.Value{
			Value: s.TotalSales,
			Label: s.ProductName,
		}
	}

	graph := chart.BarChart{
		Title:    "Top 10 Products by Sales",
		Width:    1200,
		Height:   800,
		BarWidth: 80,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render top products: %w", err)
	}
	return buf.Bytes(), nil
}

// renderCustomerSegments draws the segment distribution pie beside the
// average-spend-per-segment bar chart and composes them into one image.
func renderCustomerSegments(insights []tables.CustomerInsightRow) ([]byte, error) {
	spend := make([]float64, len(insights))
	for i, c := range insights {
		spend[i] = c.TotalSpend
	}
	summary := SummarizeSegments(spend)

	var pieValues []chart.Value
	var barValues []chart.Value
	for _, s := range summary {
		if s.CustomerCount > 0 {
			pieValues = append(pieValues, chart.Value{
				Value: float64(s.CustomerCount),
				Label: s.Label,
			})
		}
		avg := s.AvgSpend
		if math.IsNaN(avg) {
			avg = 0
		}
		barValues = append(barValues, chart.Value{
			Value: avg,
			Label: s.Label,
		})
	}

	pie := chart.PieChart{
		Title:  "Customer Distribution by Spending Segment",
		Width:  600,
		Height: 600,
		Values: pieValues,
	}
	var pieBuf bytes.Buffer
	if err := pie.Render(chart.PNG, &pieBuf); err != nil {
		return nil, fmt.Errorf("render segment pie: %w", err)
	}

	bar := chart.BarChart{
		Title:    "Average Spend by Segment",
		Width:    600,
		Height:   600,
		BarWidth: 90,
		Bars:     barValues,
	}
	var barBuf bytes.Buffer
	if err := bar.Render(chart.PNG, &barBuf); err != nil {
		return nil, fmt.Errorf("render segment bars: %w", err)
	}

	pieImg, err := imaging.Decode(bytes.NewReader(pieBuf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("decode segment pie: %w", err)
	}
	barImg, err := imaging.Decode(bytes.NewReader(barBuf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("decode segment bars: %w", err)
	}

	canvas := imaging.New(1200, 600, color.White)
	canvas = imaging.Paste(canvas, pieImg, image.Pt(0, 0))
	canvas = imaging.Paste(canvas, barImg, image.Pt(600, 0))

	var out bytes.Buffer
	if err := imaging.Encode(&out, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode segments image: %w", err)
	}
	return out.Bytes(), nil
}
