package silver

import (
	"github.com/awlake/medallion-pipeline/internal/bronze"
	"github.com/awlake/medallion-pipeline/internal/tables"
)

// TransformProduct cleans the product dimension: integer keys, placeholder
// names for missing ProductName/ModelName, -1 for a missing subcategory.
func TransformProduct(t *bronze.Table) ([]tables.ProductRow, error) {
	rows := make([]tables.ProductRow, 0, t.Len())

	for i, rec := range t.Rows {
		key, err := parseKey(t.Source, "ProductKey", t.Field(rec, "ProductKey"), i)
		if err != nil {
			return nil, err
		}

		subKey, err := parseKeyDefault(t.Source, "ProductSubcategoryKey", t.Field(rec, "ProductSubcategoryKey"), i, -1)
		if err != nil {
			return nil, err
		}

		price, err := parseMoney(t.Source, "ProductPrice", t.Field(rec, "ProductPrice"), i)
		if err != nil {
			return nil, err
		}

		rows = append(rows, tables.ProductRow{
			ProductKey:            key,
			ProductSubcategoryKey: subKey,
			ProductName:           fieldOr(t.Field(rec, "ProductName"), "Unknown Product"),
			ModelName:             fieldOr(t.Field(rec, "ModelName"), "Unknown Model"),
			ProductPrice:          price,
		})
	}

	return rows, nil
}
