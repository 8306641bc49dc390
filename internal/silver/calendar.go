package silver

import (
	"github.com/awlake/medallion-pipeline/internal/bronze"
	"github.com/awlake/medallion-pipeline/internal/tables"
)

// TransformCalendar derives the calendar dimension from the Date column.
// Day-of-week numbering is Monday=0; names are English, locale-independent.
func TransformCalendar(t *bronze.Table) ([]tables.CalendarRow, error) {
	rows := make([]tables.CalendarRow, 0, t.Len())

	for i, rec := range t.Rows {
		d, err := parseDate(t.Source, "Date", t.Field(rec, "Date"), i)
		if err != nil {
			return nil, err
		}

		rows = append(rows, tables.CalendarRow{
			Date:      d,
			Year:      int32(d.Year()),
			Month:     int32(d.Month()),
			Day:       int32(d.Day()),
			DayOfWeek: int32((int(d.Weekday()) + 6) % 7),
			DayName:   d.Weekday().String(),
			MonthName: d.Month().String(),
			Quarter:   (int32(d.Month())-1)/3 + 1,
		})
	}

	return rows, nil
}
