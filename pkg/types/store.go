package types

import (
	"context"
	"errors"
)

// RecordStore provides uniform access to a named remote table. Rows
// cross this boundary as plain string-keyed mappings; the store does
// not enforce a typed schema, only its own column constraints.
type RecordStore interface {
	// Select returns all rows of the table ordered by the given
	// column. An empty orderBy returns rows in store order.
	Select(ctx context.Context, table, orderBy string) ([]map[string]any, error)

	// Upsert writes rows that carry an identity, creating or
	// replacing by id. The whole call succeeds or fails.
	Upsert(ctx context.Context, table string, rows []map[string]any) error

	// Insert writes rows without an identity; the store assigns one.
	// The whole call succeeds or fails.
	Insert(ctx context.Context, table string, rows []map[string]any) error
}

// Store access errors.
var (
	ErrNoCredentials   = errors.New("store credentials not configured")
	ErrTableUnknown    = errors.New("table not known to store")
	ErrStoreClosed     = errors.New("store is closed")
	ErrInvalidOrder    = errors.New("order column is not declared")
	ErrMissingIdentity = errors.New("row is missing its identity")
)
