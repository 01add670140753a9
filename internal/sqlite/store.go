// Package sqlite implements the record store over a local SQLite
// database. It is the development and single-host backend; the table
// layout is generated from the entity schemas, with CHECK constraints
// on enum columns so that invalid option values fail store-side.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/NSC-Rick/stjregistry/pkg/types"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "registry.db"

// Store implements types.RecordStore over modernc.org/sqlite.
type Store struct {
	mu      sync.RWMutex
	db      *sql.DB
	schemas map[string]types.Schema
}

// Open creates the data directory if needed, opens the database, and
// ensures a table exists for every schema.
func Open(dataDir string, schemas []types.Schema) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, err
	}

	st := &Store{db: db, schemas: make(map[string]types.Schema, len(schemas))}
	for _, s := range schemas {
		if err := s.Validate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("schema %q: %w", s.Entity, err)
		}
		if _, err := db.Exec(createTableSQL(s)); err != nil {
			db.Close()
			return nil, fmt.Errorf("create table %s: %w", s.Entity, err)
		}
		st.schemas[s.Entity] = s
	}
	return st, nil
}

// Close releases the database handle. Idempotent; operations after
// Close return ErrStoreClosed.
func (st *Store) Close() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.db == nil {
		return nil
	}
	err := st.db.Close()
	st.db = nil
	return err
}

// Select returns all rows of the table ordered by the given column.
func (st *Store) Select(ctx context.Context, table, orderBy string) ([]map[string]any, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	schema, err := st.schemaFor(table)
	if err != nil {
		return nil, err
	}

	names := columnNames(schema)
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoteAll(names), ", "), quote(table))
	if orderBy != "" {
		if _, ok := schema.Column(orderBy); !ok {
			return nil, fmt.Errorf("order by %q: %w", orderBy, types.ErrInvalidOrder)
		}
		query += fmt.Sprintf(" ORDER BY %s", quote(orderBy))
	}

	rows, err := st.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		vals := make([]sql.NullString, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(map[string]any, len(names))
		for i, name := range names {
			if vals[i].Valid {
				rec[name] = vals[i].String
			} else {
				rec[name] = nil
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Upsert writes rows carrying an identity, creating or replacing by
// id. The whole call runs in one transaction.
func (st *Store) Upsert(ctx context.Context, table string, recs []map[string]any) error {
	return st.write(ctx, table, recs, true)
}

// Insert writes rows without an identity; a UUID v7 is assigned to
// each. The whole call runs in one transaction.
func (st *Store) Insert(ctx context.Context, table string, recs []map[string]any) error {
	return st.write(ctx, table, recs, false)
}

func (st *Store) write(ctx context.Context, table string, recs []map[string]any, upsert bool) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	schema, err := st.schemaFor(table)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	idCol := schema.IdentityColumn()
	now := time.Now().UTC().Format(time.RFC3339)

	for _, rec := range recs {
		id := ""
		if upsert {
			s, ok := rec[idCol].(string)
			if !ok || strings.TrimSpace(s) == "" {
				return fmt.Errorf("upsert row without %s: %w", idCol, types.ErrMissingIdentity)
			}
			id = s
		} else {
			id = newUUID()
		}

		cols := []string{idCol}
		args := []any{id}
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

		query := insertSQL(table, idCol, cols, upsert)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("write %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// schemaFor returns the schema for a table name. The caller must hold
// st.mu.
func (st *Store) schemaFor(table string) (types.Schema, error) {
	if st.db == nil {
		return types.Schema{}, types.ErrStoreClosed
	}
	schema, ok := st.schemas[table]
	if !ok {
		return types.Schema{}, types.ErrTableUnknown
	}
	return schema, nil
}

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// createTableSQL generates DDL for one entity schema. Every column is
// TEXT; the identity column is the primary key; enum columns carry a
// CHECK over their allowed options (NULL passes).
func createTableSQL(s types.Schema) string {
	defs := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		def := quote(c.Name) + " TEXT"
		if c.Kind == types.KindID {
			def += " PRIMARY KEY"
		}
		if c.Kind == types.KindEnum {
			opts := make([]string, len(c.Options))
			for i, o := range c.Options {
				opts[i] = "'" + strings.ReplaceAll(o, "'", "''") + "'"
			}
			def += fmt.Sprintf(" CHECK (%s IN (%s))", quote(c.Name), strings.Join(opts, ", "))
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(s.Entity), strings.Join(defs, ", "))
}

// insertSQL builds the parameterized insert for one row, with an
// ON CONFLICT upsert clause when requested.
func insertSQL(table, idCol string, cols []string, upsert bool) string {
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(table), strings.Join(quoteAll(cols), ", "), strings.Join(placeholders, ", "))
	if upsert {
		sets := make([]string, 0, len(cols)-1)
		for _, c := range cols {
			if c == idCol {
				continue
			}
			sets = append(sets, fmt.Sprintf("%s = excluded.%s", quote(c), quote(c)))
		}
		query += fmt.Sprintf(" ON CONFLICT(%s) DO UPDATE SET %s", quote(idCol), strings.Join(sets, ", "))
	}
	return query
}

// columnNames returns every declared column name in order.
func columnNames(s types.Schema) []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func quoteAll(idents []string) []string {
	out := make([]string, len(idents))
	for i, id := range idents {
		out[i] = quote(id)
	}
	return out
}
