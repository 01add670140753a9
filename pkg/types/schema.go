// Package types defines the entity schema model, canonical rows and
// tables, the RecordStore interface, and standard errors for the
// registry portal core.
package types

import "errors"

// ColumnKind identifies the semantic type of a column.
type ColumnKind string

// Supported column kinds.
const (
	KindText ColumnKind = "text"
	KindEnum ColumnKind = "enum"
	KindDate ColumnKind = "date"
	KindID   ColumnKind = "id"
)

// validKinds is the set of recognized column kinds.
var validKinds = map[ColumnKind]bool{
	KindText: true,
	KindEnum: true,
	KindDate: true,
	KindID:   true,
}

// Column describes one column of an entity schema.
type Column struct {
	Name     string     `yaml:"name"`
	Kind     ColumnKind `yaml:"kind"`
	ReadOnly bool       `yaml:"read_only"`
	Required bool       `yaml:"required"`
	Options  []string   `yaml:"options,omitempty"` // allowed values for enum columns
}

// Schema describes one entity: its store table name, ordered columns,
// and the natural sort column used when loading.
type Schema struct {
	Entity  string   `yaml:"entity"`
	Columns []Column `yaml:"columns"`
	SortBy  string   `yaml:"sort_by"`
}

// Schema validation errors.
var (
	ErrEntityEmpty     = errors.New("entity name must not be empty")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrKindUnknown     = errors.New("unknown column kind")
	ErrNoIdentity      = errors.New("schema must declare exactly one read-only id column")
	ErrSortByUnknown   = errors.New("sort column is not declared")
	ErrEnumNoOptions   = errors.New("enum column has no options")
)

// Validate checks that the schema is well-formed: a non-empty entity
// name, unique column names, exactly one read-only id-kind column, a
// declared sort column, and options on every enum column.
func (s Schema) Validate() error {
	if s.Entity == "" {
		return ErrEntityEmpty
	}
	seen := make(map[string]bool, len(s.Columns))
	idCount := 0
	for _, c := range s.Columns {
		if seen[c.Name] {
			return ErrDuplicateColumn
		}
		seen[c.Name] = true
		if !validKinds[c.Kind] {
			return ErrKindUnknown
		}
		if c.Kind == KindID {
			if !c.ReadOnly {
				return ErrNoIdentity
			}
			idCount++
		}
		if c.Kind == KindEnum && len(c.Options) == 0 {
			return ErrEnumNoOptions
		}
	}
	if idCount != 1 {
		return ErrNoIdentity
	}
	if s.SortBy != "" && !seen[s.SortBy] {
		return ErrSortByUnknown
	}
	return nil
}

// IdentityColumn returns the name of the schema's id-kind column.
// Returns "id" if the schema declares none; Validate rejects such
// schemas, so this is a fallback for zero-value use in tests.
func (s Schema) IdentityColumn() string {
	for _, c := range s.Columns {
		if c.Kind == KindID {
			return c.Name
		}
	}
	return "id"
}

// Column returns the declared column with the given name.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// DataColumns returns the declared columns excluding the identity
// column, in declaration order.
func (s Schema) DataColumns() []Column {
	cols := make([]Column, 0, len(s.Columns))
	for _, c := range s.Columns {
		if c.Kind != KindID {
			cols = append(cols, c)
		}
	}
	return cols
}

// Writable returns the names of columns a save may carry: every
// declared column that is neither read-only nor the identity column.
func (s Schema) Writable() []string {
	names := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		if c.Kind == KindID || c.ReadOnly {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// Default returns the load-time default value for a column: empty
// string for text, typed null (nil) for enum and date columns.
func (c Column) Default() any {
	if c.Kind == KindText {
		return ""
	}
	return nil
}
