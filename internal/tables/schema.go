package tables

import (
	"time"
)

// Canonical table names. Silver files keep the names of the bronze extracts
// they are derived from; gold views use their own short names.
const (
	CalendarTable  = "AdventureWorks_Calendar"
	CustomersTable = "AdventureWorks_Customers"
	ProductsTable  = "AdventureWorks_Products"
	SalesTable     = "AdventureWorks_Sales"

	SalesSummaryView     = "sales_summary"
	CustomerInsightsView = "customer_insights"
	MonthlySalesView     = "monthly_sales"
)

// ParquetFile returns the file name for a table within its layer directory.
func ParquetFile(table string) string {
	return table + ".parquet"
}

// CalendarRow is one day of the silver calendar dimension.
// All fields besides Date are derived from it.
type CalendarRow struct {
	Date      time.Time `parquet:"Date,timestamp(millisecond)"`
	Year      int32     `parquet:"Year"`
	Month     int32     `parquet:"Month"`
	Day       int32     `parquet:"Day"`
	DayOfWeek int32     `parquet:"DayOfWeek"` // Monday=0 .. Sunday=6
	DayName   string    `parquet:"DayName"`
	MonthName string    `parquet:"MonthName"`
	Quarter   int32     `parquet:"Quarter"`
}

// CustomerRow is a cleaned silver customer record.
type CustomerRow struct {
	CustomerKey   int32  `parquet:"CustomerKey"`
	FirstName     string `parquet:"FirstName"`
	LastName      string `parquet:"LastName"`
	Gender        string `parquet:"Gender"`
	MaritalStatus string `parquet:"MaritalStatus"`
}

// ProductRow is a cleaned silver product record.
type ProductRow struct {
	ProductKey            int32   `parquet:"ProductKey"`
	ProductSubcategoryKey int32   `parquet:"ProductSubcategoryKey"`
	ProductName           string  `parquet:"ProductName"`
	ModelName             string  `parquet:"ModelName"`
	ProductPrice          float64 `parquet:"ProductPrice"`
}

// SalesRow is one order line in the silver sales fact table.
//
// UnitPrice comes from a left join against the product table; when the
// ProductKey has no match the price is NaN and every derived money field
// propagates NaN. ProfitMargin is also NaN when SalesAmount is zero.
type SalesRow struct {
	OrderDate        time.Time `parquet:"OrderDate,timestamp(millisecond)"`
	StockDate        time.Time `parquet:"StockDate,timestamp(millisecond)"`
	OrderNumber      string    `parquet:"OrderNumber"`
	ProductKey       int32     `parquet:"ProductKey"`
	CustomerKey      int32     `parquet:"CustomerKey"`
	TerritoryKey     int32     `parquet:"TerritoryKey"`
	OrderLineItem    int32     `parquet:"OrderLineItem"`
	OrderQuantity    int32     `parquet:"OrderQuantity"`
	UnitPrice        float64   `parquet:"UnitPrice"`
	SalesAmount      float64   `parquet:"SalesAmount"`
	TotalProductCost float64   `parquet:"TotalProductCost"`
	Profit           float64   `parquet:"Profit"`
	ProfitMargin     float64   `parquet:"ProfitMargin"`
}

// SchemaVersion is the version of the silver/gold table schemas.
// Increment on breaking changes.
const SchemaVersion = "1.0.0"
