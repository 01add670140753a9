// Package postgres implements the record store over the hosted
// Postgres database behind the registry (the production backend). The
// store assigns identities through the id column default and enforces
// enum options through its own constraints; validation failures
// surface verbatim to the caller.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NSC-Rick/stjregistry/pkg/types"
)

// Store implements types.RecordStore over a pgx connection pool.
type Store struct {
	pool    *pgxpool.Pool
	schemas map[string]types.Schema
}

// Open connects to the database named by url and verifies the
// connection. An empty url is a credentials error; the caller must
// halt before any load.
func Open(ctx context.Context, url string, schemas []types.Schema) (*Store, error) {
	if url == "" {
		return nil, types.ErrNoCredentials
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	st := &Store{pool: pool, schemas: make(map[string]types.Schema, len(schemas))}
	for _, s := range schemas {
		if err := s.Validate(); err != nil {
			pool.Close()
			return nil, fmt.Errorf("schema %q: %w", s.Entity, err)
		}
		st.schemas[s.Entity] = s
	}
	return st, nil
}

// Close releases the connection pool.
func (st *Store) Close() {
	st.pool.Close()
}

// Select returns all rows of the table ordered by the given column.
func (st *Store) Select(ctx context.Context, table, orderBy string) ([]map[string]any, error) {
	schema, ok := st.schemas[table]
	if !ok {
		return nil, types.ErrTableUnknown
	}

	query := fmt.Sprintf("SELECT * FROM %s", quote(table))
	if orderBy != "" {
		if _, ok := schema.Column(orderBy); !ok {
			return nil, fmt.Errorf("order by %q: %w", orderBy, types.ErrInvalidOrder)
		}
		query += fmt.Sprintf(" ORDER BY %s", quote(orderBy))
	}

	rows, err := st.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []map[string]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rec := make(map[string]any, len(fields))
		for i, f := range fields {
			rec[f.Name] = wireValue(vals[i])
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Upsert writes rows carrying an identity with INSERT … ON CONFLICT,
// all in one transaction.
func (st *Store) Upsert(ctx context.Context, table string, recs []map[string]any) error {
	return st.write(ctx, table, recs, true)
}

// Insert writes rows without an identity; the id column default
// assigns one. The whole call runs in one transaction.
func (st *Store) Insert(ctx context.Context, table string, recs []map[string]any) error {
	return st.write(ctx, table, recs, false)
}

func (st *Store) write(ctx context.Context, table string, recs []map[string]any, upsert bool) error {
	schema, ok := st.schemas[table]
	if !ok {
		return types.ErrTableUnknown
	}
	if len(recs) == 0 {
		return nil
	}

	tx, err := st.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	idCol := schema.IdentityColumn()
	now := time.Now().UTC()

	for _, rec := range recs {
		var cols []string
		var args []any

		if upsert {
			id, ok := rec[idCol].(string)
			if !ok || strings.TrimSpace(id) == "" {
				return fmt.Errorf("upsert row without %s: %w", idCol, types.ErrMissingIdentity)
			}
			cols = append(cols, idCol)
			args = append(args, id)
		}
		for _, name := range schema.Writable() {
			v, ok := rec[name]
			if !ok {
				continue
			}
			cols = append(cols, name)
			args = append(args, v)
		}
		if _, ok := schema.Column("updated_at"); ok {
			cols = append(cols, "updated_at")
			args = append(args, now)
		}

		if err := execInsert(ctx, tx, table, idCol, cols, args, upsert); err != nil {
			return fmt.Errorf("write %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}

func execInsert(ctx context.Context, tx pgx.Tx, table, idCol string, cols []string, args []any, upsert bool) error {
	placeholders := make([]string, len(cols))
	quoted := make([]string, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		quoted[i] = quote(c)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	if upsert {
		sets := make([]string, 0, len(cols)-1)
		for _, c := range cols {
			if c == idCol {
				continue
			}
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", quote(c), quote(c)))
		}
		query += fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s", quote(idCol), strings.Join(sets, ", "))
	}
	_, err := tx.Exec(ctx, query, args...)
	return err
}

// wireValue flattens driver values to the plain wire forms the loader
// understands: strings, time.Time, nil.
func wireValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case [16]byte: // uuid columns scan as raw bytes
		return fmt.Sprintf("%x-%x-%x-%x-%x", val[0:4], val[4:6], val[6:8], val[8:10], val[10:16])
	default:
		return v
	}
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
