package grid

import "github.com/NSC-Rick/stjregistry/pkg/types"

// Session holds one editing session's working copy of a filtered view.
// Identities are retained internally but are not editable through the
// session surface; they only ever arrive from a prior load. All
// mutation methods are synchronous, complete-or-fail calls.
type Session struct {
	schema types.Schema
	rows   []types.Row
}

// NewSession starts an editing session over the given view. The view is
// copied; later changes to it do not affect the session.
func NewSession(view *types.Table) *Session {
	c := view.Clone()
	return &Session{schema: c.Schema, rows: c.Rows}
}

// Len returns the number of rows in the working copy.
func (s *Session) Len() int { return len(s.rows) }

// EditCell sets the value of one cell. Read-only and identity columns
// are rejected with ErrReadOnlyColumn, undeclared columns with
// ErrUnknownColumn. Enum values outside the allowed set are accepted
// here; the store is the source of truth for enum enforcement.
func (s *Session) EditCell(row int, column string, value any) error {
	if row < 0 || row >= len(s.rows) {
		return ErrRowOutOfRange
	}
	col, ok := s.schema.Column(column)
	if !ok {
		return ErrUnknownColumn
	}
	if col.ReadOnly || col.Kind == types.KindID {
		return ErrReadOnlyColumn
	}
	s.rows[row].Cells[column] = value
	return nil
}

// AddRow appends a new row with every data column at its schema default
// and no identity. Returns the new row's index.
func (s *Session) AddRow() int {
	row := types.Row{Cells: make(map[string]any, len(s.schema.Columns))}
	for _, col := range s.schema.DataColumns() {
		row.Cells[col.Name] = col.Default()
	}
	s.rows = append(s.rows, row)
	return len(s.rows) - 1
}

// DeleteRow removes the row at the given index. Removing a
// pre-existing row only takes it out of this save cycle; the stored
// record is not deleted.
func (s *Session) DeleteRow(row int) error {
	if row < 0 || row >= len(s.rows) {
		return ErrRowOutOfRange
	}
	s.rows = append(s.rows[:row], s.rows[row+1:]...)
	return nil
}

// Snapshot returns a deep copy of the working rows in order. Failed
// saves never mutate the session, so a snapshot taken before a save
// attempt equals one taken after a failure.
func (s *Session) Snapshot() []types.Row {
	out := make([]types.Row, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.Clone()
	}
	return out
}
