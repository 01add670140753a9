package grid

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/NSC-Rick/stjregistry/pkg/types"
)

// DefaultTTL is the freshness window of the loader cache.
const DefaultTTL = 60 * time.Second

// dateWire is the wire form of date values.
const dateWire = "2006-01-02"

// Loader fetches all rows of one entity from the record store and
// serves them as a canonical table through a read-through cache. Every
// declared schema column is present on every loaded row, in declared
// order semantics, regardless of store drift.
type Loader struct {
	store  types.RecordStore
	schema types.Schema
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	cached   []types.Row
	loadedAt time.Time
}

// NewLoader creates a loader for the given entity schema. A zero or
// negative ttl falls back to DefaultTTL.
func NewLoader(store types.RecordStore, schema types.Schema, ttl time.Duration) *Loader {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Loader{
		store:  store,
		schema: schema,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Load returns the canonical table, fetching from the store when the
// cache is empty or older than the freshness window. The returned table
// is a deep copy; callers may mutate it freely. A store failure is
// reported as a *LoadError and leaves any previous cache in place.
func (l *Loader) Load(ctx context.Context) (*types.Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached == nil || l.now().Sub(l.loadedAt) >= l.ttl {
		raw, err := l.store.Select(ctx, l.schema.Entity, l.schema.SortBy)
		if err != nil {
			return nil, &LoadError{Entity: l.schema.Entity, Err: err}
		}
		l.cached = l.canonicalize(raw)
		l.loadedAt = l.now()
	}

	t := types.Table{Schema: l.schema, Rows: l.cached}
	return t.Clone(), nil
}

// Invalidate discards the cache so the next Load re-fetches.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
	l.loadedAt = time.Time{}
}

// canonicalize turns raw store rows into canonical rows: known columns
// coerced to their semantic type, declared-but-missing columns filled
// with typed defaults, undeclared columns dropped.
func (l *Loader) canonicalize(raw []map[string]any) []types.Row {
	idCol := l.schema.IdentityColumn()
	rows := make([]types.Row, 0, len(raw))
	for _, rec := range raw {
		row := types.Row{Cells: make(map[string]any, len(l.schema.Columns))}
		if v, ok := rec[idCol]; ok {
			row.ID = asString(v)
		}
		for _, col := range l.schema.DataColumns() {
			v, ok := rec[col.Name]
			if !ok || v == nil {
				row.Cells[col.Name] = col.Default()
				continue
			}
			row.Cells[col.Name] = coerce(col, v)
		}
		rows = append(rows, row)
	}
	return rows
}

// coerce converts a raw store value to the column's canonical type.
// Unparsable dates become typed null rather than failing the load.
func coerce(col types.Column, v any) any {
	switch col.Kind {
	case types.KindDate:
		switch val := v.(type) {
		case time.Time:
			return val
		case string:
			if d, ok := parseDate(val); ok {
				return d
			}
			return nil
		default:
			return nil
		}
	default:
		return asString(v)
	}
}

// parseDate parses a wire date, tolerating timestamp forms by reading
// only the calendar-date prefix.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(dateWire) {
		s = s[:len(dateWire)]
	}
	d, err := time.Parse(dateWire, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
