package silver

import (
	"math"

	"github.com/awlake/medallion-pipeline/internal/bronze"
	"github.com/awlake/medallion-pipeline/internal/tables"
)

// TransformSales builds the silver sales fact table. Pricing comes from a
// left join against the raw product extract on ProductKey: order lines
// without a matching product keep a NaN UnitPrice, and NaN propagates
// through SalesAmount, cost, profit and margin. This is deliberately
// looser than the gold-stage inner joins.
func TransformSales(sales, products *bronze.Table, costRatio float64) ([]tables.SalesRow, error) {
	prices, err := productPrices(products)
	if err != nil {
		return nil, err
	}

	rows := make([]tables.SalesRow, 0, sales.Len())
	for i, rec := range sales.Rows {
		orderDate, err := parseDate(sales.Source, "OrderDate", sales.Field(rec, "OrderDate"), i)
		if err != nil {
			return nil, err
		}
		stockDate, err := parseDate(sales.Source, "StockDate", sales.Field(rec, "StockDate"), i)
		if err != nil {
			return nil, err
		}

		productKey, err := parseKey(sales.Source, "ProductKey", sales.Field(rec, "ProductKey"), i)
		if err != nil {
			return nil, err
		}
		customerKey, err := parseKey(sales.Source, "CustomerKey", sales.Field(rec, "CustomerKey"), i)
		if err != nil {
			return nil, err
		}
		quantity, err := parseKey(sales.Source, "OrderQuantity", sales.Field(rec, "OrderQuantity"), i)
		if err != nil {
			return nil, err
		}
		territoryKey, err := parseKeyDefault(sales.Source, "TerritoryKey", sales.Field(rec, "TerritoryKey"), i, 0)
		if err != nil {
			return nil, err
		}
		lineItem, err := parseKeyDefault(sales.Source, "OrderLineItem", sales.Field(rec, "OrderLineItem"), i, 0)
		if err != nil {
			return nil, err
		}

		unitPrice, ok := prices[productKey]
		if !ok {
			unitPrice = math.NaN()
		}

		salesAmount := float64(quantity) * unitPrice
		cost := salesAmount * costRatio
		profit := salesAmount - cost

		rows = append(rows, tables.SalesRow{
			OrderDate:        orderDate,
			StockDate:        stockDate,
			OrderNumber:      sales.Field(rec, "OrderNumber"),
			ProductKey:       productKey,
			CustomerKey:      customerKey,
			TerritoryKey:     territoryKey,
			OrderLineItem:    lineItem,
			OrderQuantity:    quantity,
			UnitPrice:        unitPrice,
			SalesAmount:      salesAmount,
			TotalProductCost: cost,
			Profit:           profit,
			ProfitMargin:     profit / salesAmount, // NaN when SalesAmount is 0 or NaN
		})
	}

	return rows, nil
}

// productPrices indexes ProductPrice by ProductKey from the raw extract.
func productPrices(products *bronze.Table) (map[int32]float64, error) {
	prices := make(map[int32]float64, products.Len())
	for i, rec := range products.Rows {
		key, err := parseKey(products.Source, "ProductKey", products.Field(rec, "ProductKey"), i)
		if err != nil {
			return nil, err
		}
		price, err := parseMoney(products.Source, "ProductPrice", products.Field(rec, "ProductPrice"), i)
		if err != nil {
			return nil, err
		}
		prices[key] = price
	}
	return prices, nil
}
