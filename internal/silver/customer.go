package silver

import (
	"github.com/awlake/medallion-pipeline/internal/bronze"
	"github.com/awlake/medallion-pipeline/internal/tables"
)

// TransformCustomer cleans the customer dimension: integer CustomerKey,
// missing Gender/MaritalStatus filled with "Unknown".
func TransformCustomer(t *bronze.Table) ([]tables.CustomerRow, error) {
	rows := make([]tables.CustomerRow, 0, t.Len())

	for i, rec := range t.Rows {
		key, err := parseKey(t.Source, "CustomerKey", t.Field(rec, "CustomerKey"), i)
		if err != nil {
			return nil, err
		}

		rows = append(rows, tables.CustomerRow{
			CustomerKey:   key,
			FirstName:     t.Field(rec, "FirstName"),
			LastName:      t.Field(rec, "LastName"),
			Gender:        fieldOr(t.Field(rec, "Gender"), "Unknown"),
			MaritalStatus: fieldOr(t.Field(rec, "MaritalStatus"), "Unknown"),
		})
	}

	return rows, nil
}
