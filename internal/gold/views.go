package gold

import (
	"math"
	"sort"
	"time"

	"github.com/awlake/medallion-pipeline/internal/tables"
)

// meanAcc accumulates a NaN-skipping sum and mean: NaN inputs are excluded
// from both the numerator and the denominator. A group with only NaN
// values sums to 0 and has a NaN mean.
type meanAcc struct {
	sum float64
	n   int64
}

func (a *meanAcc) add(v float64) {
	if !math.IsNaN(v) {
		a.sum += v
		a.n++
	}
}

func (a *meanAcc) mean() float64 {
	if a.n == 0 {
		return math.NaN()
	}
	return a.sum / float64(a.n)
}

// BuildSalesSummary inner-joins sales with products on ProductKey and
// aggregates per (ProductKey, ProductName, ModelName), sorted by
// TotalSales descending. Order lines without a matching product are
// dropped from the view.
func BuildSalesSummary(sales []tables.SalesRow, products []tables.ProductRow) []tables.SalesSummaryRow {
	byKey := make(map[int32]tables.ProductRow, len(products))
	for _, p := range products {
		byKey[p.ProductKey] = p
	}

	type acc struct {
		row   tables.SalesSummaryRow
		sales meanAcc
		price meanAcc
	}
	groups := make(map[int32]*acc)
	var order []int32

	for _, s := range sales {
		p, ok := byKey[s.ProductKey]
		if !ok {
			continue
		}

		g, ok := groups[s.ProductKey]
		if !ok {
			g = &acc{row: tables.SalesSummaryRow{
				ProductKey:  p.ProductKey,
				ProductName: p.ProductName,
				ModelName:   p.ModelName,
			}}
			groups[s.ProductKey] = g
			order = append(order, s.ProductKey)
		}

		g.row.TotalQuantity += int64(s.OrderQuantity)
		g.sales.add(s.SalesAmount)
		g.price.add(s.UnitPrice)
		g.row.OrderCount++
	}

	out := make([]tables.SalesSummaryRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.row.TotalSales = g.sales.sum
		g.row.AvgUnitPrice = g.price.mean()
		out = append(out, g.row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSales > out[j].TotalSales
	})
	return out
}

// BuildCustomerInsights inner-joins sales with customers on CustomerKey
// and aggregates per customer, sorted by TotalSpend descending.
func BuildCustomerInsights(sales []tables.SalesRow, customers []tables.CustomerRow) []tables.CustomerInsightRow {
	byKey := make(map[int32]tables.CustomerRow, len(customers))
	for _, c := range customers {
		byKey[c.CustomerKey] = c
	}

	type acc struct {
		row   tables.CustomerInsightRow
		spend meanAcc
	}
	groups := make(map[int32]*acc)
	var order []int32

	for _, s := range sales {
		c, ok := byKey[s.CustomerKey]
		if !ok {
			continue
		}

		g, ok := groups[s.CustomerKey]
		if !ok {
			g = &acc{row: tables.CustomerInsightRow{
				CustomerKey:   c.CustomerKey,
				FirstName:     c.FirstName,
				LastName:      c.LastName,
				Gender:        c.Gender,
				MaritalStatus: c.MaritalStatus,
			}}
			groups[s.CustomerKey] = g
			order = append(order, s.CustomerKey)
		}

		g.spend.add(s.SalesAmount)
		g.row.OrderCount++
	}

	out := make([]tables.CustomerInsightRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.row.TotalSpend = g.spend.sum
		g.row.AvgOrderValue = g.spend.mean()
		out = append(out, g.row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSpend > out[j].TotalSpend
	})
	return out
}

// BuildMonthlySales inner-joins sales with the calendar on
// OrderDate = Date and aggregates per (Year, Month), sorted ascending.
func BuildMonthlySales(sales []tables.SalesRow, calendar []tables.CalendarRow) []tables.MonthlySalesRow {
	byDate := make(map[time.Time]tables.CalendarRow, len(calendar))
	for _, c := range calendar {
		byDate[c.Date.UTC()] = c
	}

	type monthKey struct {
		year, month int32
	}
	type acc struct {
		row   tables.MonthlySalesRow
		sales meanAcc
	}
	groups := make(map[monthKey]*acc)
	var order []monthKey

	for _, s := range sales {
		c, ok := byDate[s.OrderDate.UTC()]
		if !ok {
			continue
		}

		key := monthKey{year: c.Year, month: c.Month}
		g, ok := groups[key]
		if !ok {
			g = &acc{row: tables.MonthlySalesRow{Year: c.Year, Month: c.Month}}
			groups[key] = g
			order = append(order, key)
		}

		g.sales.add(s.SalesAmount)
		g.row.OrderCount++
	}

	out := make([]tables.MonthlySalesRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.row.MonthlySales = g.sales.sum
		g.row.AvgOrderValue = g.sales.mean()
		out = append(out, g.row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
