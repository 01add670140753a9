package types

import (
	"strings"
	"time"
)

// Row is one canonical record. ID is the store-assigned identity; an
// empty ID means the row has never been persisted. Cells maps
// non-identity column names to values: nil (typed null), string
// (text/enum), or time.Time (date).
type Row struct {
	ID    string
	Cells map[string]any
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	cells := make(map[string]any, len(r.Cells))
	for k, v := range r.Cells {
		cells[k] = v
	}
	return Row{ID: r.ID, Cells: cells}
}

// Blank reports whether every cell is empty: nil, a blank or
// whitespace-only string, or a zero time.
func (r Row) Blank() bool {
	for _, v := range r.Cells {
		switch val := v.(type) {
		case nil:
		case string:
			if strings.TrimSpace(val) != "" {
				return false
			}
		case time.Time:
			if !val.IsZero() {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Table is an ordered sequence of rows sharing one schema, loaded
// wholesale from the store.
type Table struct {
	Schema Schema
	Rows   []Row
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.Clone()
	}
	return &Table{Schema: t.Schema, Rows: rows}
}
