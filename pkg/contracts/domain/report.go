package domain

import (
	"math"
	"strconv"
	"strings"
)

// Record represents a single incident report row. Column values are either
// string, float64, int, bool or nil; a missing value is stored as nil or an
// absent key.
type Record map[string]interface{}

// Table is an ordered collection of incident report records. The column list
// preserves the order columns were discovered in; the schema is not fixed in
// advance.
type Table struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// Stats summarizes one preprocessing run. Produced once at the end of the
// pipeline and read-only afterward. Field names are part of the stable API
// contract.
type Stats struct {
	OriginalCount      int      `json:"original_count"`
	FilteredCount      int      `json:"filtered_count"`
	FinalCount         int      `json:"final_count"`
	FilterRatio        float64  `json:"filter_ratio"`
	Columns            []string `json:"columns"`
	MotorKeywordsFound []string `json:"motor_keywords_found"`
}

// NewTable creates a table with the given column order.
func NewTable(columns []string) *Table {
	return &Table{Columns: columns, Records: make([]Record, 0)}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether the named column exists in the table schema.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column to the schema if it is not already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Head returns up to n leading records. The returned slice shares the
// underlying records.
func (t *Table) Head(n int) []Record {
	if t == nil || n <= 0 {
		return []Record{}
	}
	if n > len(t.Records) {
		n = len(t.Records)
	}
	return t.Records[:n]
}

// Clone returns a deep copy of the table. Transforms operate on copies so the
// caller's table is never mutated.
func (t *Table) Clone() *Table {
	clone := &Table{
		Columns: append([]string(nil), t.Columns...),
		Records: make([]Record, len(t.Records)),
	}
	for i, rec := range t.Records {
		copied := make(Record, len(rec))
		for k, v := range rec {
			copied[k] = v
		}
		clone.Records[i] = copied
	}
	return clone
}

// IsMissing reports whether a value counts as missing.
func IsMissing(v interface{}) bool {
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok {
		return math.IsNaN(f)
	}
	return false
}

// AsString converts a cell value to its textual form. Missing values become
// the empty string.
func AsString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if math.IsNaN(val) {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// AsFloat converts a cell value to a float64 when possible.
func AsFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) {
			return 0, false
		}
		return val, true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsNumericColumn reports whether every present value in the column can be
// interpreted as a number. Columns with no present values are not numeric.
func (t *Table) IsNumericColumn(name string) bool {
	present := 0
	for _, rec := range t.Records {
		v, ok := rec[name]
		if !ok || IsMissing(v) {
			continue
		}
		if _, isNum := AsFloat(v); !isNum {
			return false
		}
		present++
	}
	return present > 0
}

// IsTextColumn reports whether the column holds textual data: at least one
// present string value and not a numeric column.
func (t *Table) IsTextColumn(name string) bool {
	present := 0
	for _, rec := range t.Records {
		v, ok := rec[name]
		if !ok || IsMissing(v) {
			continue
		}
		if _, isStr := v.(string); !isStr {
			return false
		}
		present++
	}
	return present > 0 && !t.IsNumericColumn(name)
}

// TextColumns returns all columns holding textual data, in schema order.
func (t *Table) TextColumns() []string {
	var cols []string
	for _, col := range t.Columns {
		if t.IsTextColumn(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

// ColumnValues returns the raw values of a column for every record, with
// missing cells reported as nil.
func (t *Table) ColumnValues(name string) []interface{} {
	values := make([]interface{}, len(t.Records))
	for i, rec := range t.Records {
		if v, ok := rec[name]; ok {
			values[i] = v
		}
	}
	return values
}
