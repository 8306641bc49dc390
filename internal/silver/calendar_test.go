package silver

import (
	"errors"
	"testing"
	"time"

	"github.com/awlake/medallion-pipeline/internal/bronze"
)

func calendarTable(dates ...string) *bronze.Table {
	rows := make([][]string, len(dates))
	for i, d := range dates {
		rows[i] = []string{d}
	}
	return bronze.NewTable("AdventureWorks_Calendar", []string{"Date"}, rows)
}

func TestTransformCalendar(t *testing.T) {
	// 2017-01-02 was a Monday.
	rows, err := TransformCalendar(calendarTable("2017-01-02", "2017-01-08", "2017-10-15"))
	if err != nil {
		t.Fatalf("TransformCalendar failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	monday := rows[0]
	if !monday.Date.Equal(time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date: %v", monday.Date)
	}
	if monday.Year != 2017 || monday.Month != 1 || monday.Day != 2 {
		t.Errorf("unexpected date parts: %+v", monday)
	}
	if monday.DayOfWeek != 0 {
		t.Errorf("Monday should be day-of-week 0, got %d", monday.DayOfWeek)
	}
	if monday.DayName != "Monday" || monday.MonthName != "January" {
		t.Errorf("unexpected names: %q %q", monday.DayName, monday.MonthName)
	}
	if monday.Quarter != 1 {
		t.Errorf("January should be quarter 1, got %d", monday.Quarter)
	}

	sunday := rows[1]
	if sunday.DayOfWeek != 6 {
		t.Errorf("Sunday should be day-of-week 6, got %d", sunday.DayOfWeek)
	}

	october := rows[2]
	if october.Quarter != 4 {
		t.Errorf("October should be quarter 4, got %d", october.Quarter)
	}
}

func TestTransformCalendarDateFormats(t *testing.T) {
	rows, err := TransformCalendar(calendarTable("1/2/2017", "2017-03-04 00:00:00"))
	if err != nil {
		t.Fatalf("TransformCalendar failed: %v", err)
	}
	if rows[0].Month != 1 || rows[0].Day != 2 {
		t.Errorf("slash date parsed wrong: %+v", rows[0])
	}
	if rows[1].Month != 3 || rows[1].Day != 4 {
		t.Errorf("datetime parsed wrong: %+v", rows[1])
	}
}

func TestTransformCalendarBadDate(t *testing.T) {
	_, err := TransformCalendar(calendarTable("2017-01-02", "not-a-date"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Row != 1 || parseErr.Column != "Date" {
		t.Errorf("unexpected error location: row %d column %q", parseErr.Row, parseErr.Column)
	}
}
