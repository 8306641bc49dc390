package silver

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted in bronze extracts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// parseDate parses a bronze date field at UTC midnight.
func parseDate(source, column, value string, row int) (time.Time, error) {
	v := strings.TrimSpace(value)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, &ParseError{Source: source, Column: column, Value: value, Row: row, Err: lastErr}
}

// parseKey coerces a required integer key field.
func parseKey(source, column, value string, row int) (int32, error) {
	v := strings.TrimSpace(value)
	if n, err := strconv.ParseInt(v, 10, 32); err == nil {
		return int32(n), nil
	}
	// pandas round-trips integer columns with NaN as floats ("123.0")
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int32(f), nil
	}
	return 0, &TypeError{Source: source, Column: column, Value: value, Row: row}
}

// parseKeyDefault coerces an optional integer field, falling back to def
// when the field is empty.
func parseKeyDefault(source, column, value string, row int, def int32) (int32, error) {
	if strings.TrimSpace(value) == "" {
		return def, nil
	}
	return parseKey(source, column, value, row)
}

// parseMoney parses a price field, tolerating currency formatting.
// Empty fields become NaN.
func parseMoney(source, column, value string, row int) (float64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return math.NaN(), nil
	}
	v = strings.ReplaceAll(strings.TrimPrefix(v, "$"), ",", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &TypeError{Source: source, Column: column, Value: value, Row: row}
	}
	return f, nil
}

// fieldOr substitutes def for empty categorical fields.
func fieldOr(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
