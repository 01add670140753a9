package grid

import (
	"strings"
	"time"

	"github.com/NSC-Rick/stjregistry/pkg/types"
)

// Predicate decides whether a row belongs to a filtered view.
type Predicate func(types.Row) bool

// All matches every row.
func All(types.Row) bool { return true }

// ColumnEquals matches rows whose column equals want exactly.
func ColumnEquals(column, want string) Predicate {
	return func(r types.Row) bool {
		return cellString(r, column) == want
	}
}

// ColumnContains matches rows whose column contains substr,
// case-insensitively.
func ColumnContains(column, substr string) Predicate {
	needle := strings.ToLower(substr)
	return func(r types.Row) bool {
		return strings.Contains(strings.ToLower(cellString(r, column)), needle)
	}
}

// And matches rows satisfying every predicate.
func And(preds ...Predicate) Predicate {
	return func(r types.Row) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Filter returns a new table holding copies of the rows matching the
// predicate. The input table is never mutated; row identities and cell
// values carry over unchanged. Rows excluded here are excluded from the
// editing cycle: the reconciler never touches rows outside the working
// view.
func Filter(t *types.Table, pred Predicate) *types.Table {
	if pred == nil {
		pred = All
	}
	out := &types.Table{Schema: t.Schema}
	for _, r := range t.Rows {
		if pred(r) {
			out.Rows = append(out.Rows, r.Clone())
		}
	}
	return out
}

// cellString renders a cell for matching: strings as-is, dates in wire
// form, nulls as the empty string.
func cellString(r types.Row, column string) string {
	switch v := r.Cells[column].(type) {
	case string:
		return v
	case time.Time:
		return v.Format(dateWire)
	default:
		return ""
	}
}
