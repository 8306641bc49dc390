package tables

// SalesSummaryRow aggregates order lines per product.
// Sorted by TotalSales descending in the gold view.
type SalesSummaryRow struct {
	ProductKey    int32   `parquet:"ProductKey"`
	ProductName   string  `parquet:"ProductName"`
	ModelName     string  `parquet:"ModelName"`
	TotalQuantity int64   `parquet:"TotalQuantity"`
	TotalSales    float64 `parquet:"TotalSales"`
	AvgUnitPrice  float64 `parquet:"AvgUnitPrice"`
	OrderCount    int64   `parquet:"OrderCount"`
}

// CustomerInsightRow aggregates order lines per customer.
// Sorted by TotalSpend descending in the gold view.
type CustomerInsightRow struct {
	CustomerKey   int32   `parquet:"CustomerKey"`
	FirstName     string  `parquet:"FirstName"`
	LastName      string  `parquet:"LastName"`
	Gender        string  `parquet:"Gender"`
	MaritalStatus string  `parquet:"MaritalStatus"`
	TotalSpend    float64 `parquet:"TotalSpend"`
	OrderCount    int64   `parquet:"OrderCount"`
	AvgOrderValue float64 `parquet:"AvgOrderValue"`
}

// MonthlySalesRow aggregates order lines per calendar month.
// Sorted ascending by (Year, Month) in the gold view.
type MonthlySalesRow struct {
	Year          int32   `parquet:"Year"`
	Month         int32   `parquet:"Month"`
	MonthlySales  float64 `parquet:"MonthlySales"`
	OrderCount    int64   `parquet:"OrderCount"`
	AvgOrderValue float64 `parquet:"AvgOrderValue"`
}
