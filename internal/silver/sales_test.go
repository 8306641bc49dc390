package silver

import (
	"math"
	"testing"
	"time"

	"github.com/awlake/medallion-pipeline/internal/bronze"
)

var salesColumns = []string{
	"OrderDate", "StockDate", "OrderNumber", "ProductKey", "CustomerKey",
	"TerritoryKey", "OrderLineItem", "OrderQuantity",
}

func productsFixture() *bronze.Table {
	return bronze.NewTable("AdventureWorks_Products",
		[]string{"ProductKey", "ProductPrice"},
		[][]string{
			{"214", "34.99"},
			{"215", "10.00"},
			{"216", ""}, // listed product without a price
		})
}

func TestTransformSalesMetrics(t *testing.T) {
	raw := bronze.NewTable("AdventureWorks_Sales", salesColumns,
		[][]string{
			{"2017-01-02", "2016-12-01", "SO1", "215", "11000", "4", "1", "3"},
		})

	rows, err := TransformSales(raw, productsFixture(), 0.7)
	if err != nil {
		t.Fatalf("TransformSales failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	s := rows[0]
	if !s.OrderDate.Equal(time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected order date: %v", s.OrderDate)
	}
	if s.OrderNumber != "SO1" || s.ProductKey != 215 || s.CustomerKey != 11000 {
		t.Errorf("unexpected identifiers: %+v", s)
	}
	if s.UnitPrice != 10.0 {
		t.Errorf("expected joined unit price 10, got %v", s.UnitPrice)
	}
	if s.SalesAmount != 30.0 {
		t.Errorf("SalesAmount = quantity * price: got %v", s.SalesAmount)
	}
	if math.Abs(s.TotalProductCost-21.0) > 1e-9 {
		t.Errorf("TotalProductCost = SalesAmount * 0.7: got %v", s.TotalProductCost)
	}
	if math.Abs(s.Profit-9.0) > 1e-9 {
		t.Errorf("Profit = SalesAmount - cost: got %v", s.Profit)
	}
	if math.Abs(s.ProfitMargin-0.3) > 1e-9 {
		t.Errorf("ProfitMargin = Profit / SalesAmount: got %v", s.ProfitMargin)
	}
}

func TestTransformSalesUnmatchedProduct(t *testing.T) {
	raw := bronze.NewTable("AdventureWorks_Sales", salesColumns,
		[][]string{
			{"2017-01-02", "2016-12-01", "SO1", "999", "11000", "4", "1", "2"},
		})

	rows, err := TransformSales(raw, productsFixture(), 0.7)
	if err != nil {
		t.Fatalf("TransformSales failed: %v", err)
	}

	s := rows[0]
	for name, v := range map[string]float64{
		"UnitPrice":        s.UnitPrice,
		"SalesAmount":      s.SalesAmount,
		"TotalProductCost": s.TotalProductCost,
		"Profit":           s.Profit,
		"ProfitMargin":     s.ProfitMargin,
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s should be NaN for an unmatched product, got %v", name, v)
		}
	}
}

func TestTransformSalesNaNPricePropagates(t *testing.T) {
	raw := bronze.NewTable("AdventureWorks_Sales", salesColumns,
		[][]string{
			{"2017-01-02", "2016-12-01", "SO1", "216", "11000", "4", "1", "2"},
		})

	rows, err := TransformSales(raw, productsFixture(), 0.7)
	if err != nil {
		t.Fatalf("TransformSales failed: %v", err)
	}
	if !math.IsNaN(rows[0].UnitPrice) || !math.IsNaN(rows[0].SalesAmount) {
		t.Errorf("priceless product should propagate NaN: %+v", rows[0])
	}
}

func TestTransformSalesOptionalFields(t *testing.T) {
	raw := bronze.NewTable("AdventureWorks_Sales", salesColumns,
		[][]string{
			{"2017-01-02", "2016-12-01", "SO1", "214", "11000", "", "", "1"},
		})

	rows, err := TransformSales(raw, productsFixture(), 0.7)
	if err != nil {
		t.Fatalf("TransformSales failed: %v", err)
	}
	if rows[0].TerritoryKey != 0 || rows[0].OrderLineItem != 0 {
		t.Errorf("missing optional keys should default to 0: %+v", rows[0])
	}
}

func TestTransformSalesBadQuantity(t *testing.T) {
	raw := bronze.NewTable("AdventureWorks_Sales", salesColumns,
		[][]string{
			{"2017-01-02", "2016-12-01", "SO1", "214", "11000", "4", "1", "many"},
		})

	if _, err := TransformSales(raw, productsFixture(), 0.7); err == nil {
		t.Fatal("expected error for non-numeric quantity")
	}
}
