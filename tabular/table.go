// Package tabular adapts tables of name records to and from the engine:
// column-name recognition, record conversion, CSV and GEDCOM input and the
// flat result table.
package tabular

// Row is one input row, keyed by column name.
type Row map[string]string

// Table is an ordered table: the column order of the input is preserved so
// column recognition and output stay deterministic.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates a table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// HasColumn reports whether the table carries the column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column filled with the given values. Missing values
// default to the empty string.
func (t *Table) AddColumn(name string, values []string) {
	t.Columns = append(t.Columns, name)
	for i, row := range t.Rows {
		if i < len(values) {
			row[name] = values[i]
		} else {
			row[name] = ""
		}
	}
}
