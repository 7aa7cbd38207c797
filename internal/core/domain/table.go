package domain

import (
	"strings"

	"github.com/kamal-hamza/wp-cli/pkg/normalize"
)

// Row is one record from the source table keyed by column header.
// Values are string, float64, bool, time.Time or nil.
type Row struct {
	// Number is the 1-based spreadsheet row (the header is row 1)
	Number int
	values []any
	index  map[string]int
}

// Table is a header row plus the data rows beneath it
type Table struct {
	Sheet   string
	Headers []string
	Rows    []Row
}

// NewTable builds a table from raw records; the first record is the header.
// Header cells are trimmed, blank headers are ignored and a repeated header
// resolves to its last column.
func NewTable(sheet string, records [][]any) *Table {
	t := &Table{Sheet: sheet}
	if len(records) == 0 {
		return t
	}

	index := make(map[string]int)
	for i, cell := range records[0] {
		h := strings.TrimSpace(normalize.Stringify(cell))
		t.Headers = append(t.Headers, h)
		if h != "" {
			index[h] = i
		}
	}

	for i, values := range records[1:] {
		t.Rows = append(t.Rows, Row{
			Number: i + 2,
			values: values,
			index:  index,
		})
	}
	return t
}

// IsEmpty reports whether the sheet had no rows at all
func (t *Table) IsEmpty() bool {
	return len(t.Headers) == 0 && len(t.Rows) == 0
}

// HasColumn reports whether the header row contains name
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Lookup returns the cell under header name.
// ok is false when the column is absent or the row is short.
func (r Row) Lookup(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok || i >= len(r.values) {
		return nil, false
	}
	return r.values[i], true
}

// Value returns the cell under header name, or nil
func (r Row) Value(name string) any {
	v, _ := r.Lookup(name)
	return v
}
