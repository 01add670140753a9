// Shared helpers for registry CLI commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NSC-Rick/stjregistry/internal/postgres"
	"github.com/NSC-Rick/stjregistry/internal/secrets"
	"github.com/NSC-Rick/stjregistry/internal/sqlite"
	"github.com/NSC-Rick/stjregistry/pkg/grid"
	"github.com/NSC-Rick/stjregistry/pkg/schemas"
	"github.com/NSC-Rick/stjregistry/pkg/types"
)

// loadSchemaSet returns the built-in schemas merged with any extras
// from the configured schema file.
func loadSchemaSet() (map[string]types.Schema, error) {
	set := schemas.Builtin()
	if cfg.SchemaFile == "" {
		return set, nil
	}
	extras, err := schemas.LoadFile(cfg.SchemaFile)
	if err != nil {
		return nil, err
	}
	for name, s := range extras {
		set[name] = s
	}
	return set, nil
}

// schemaFor resolves an entity name against the schema set, with a
// helpful error listing valid names.
func schemaFor(entity string, set map[string]types.Schema) (types.Schema, error) {
	s, ok := set[entity]
	if !ok {
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		return types.Schema{}, fmt.Errorf("unknown entity %q (valid: %s)", entity, strings.Join(names, ", "))
	}
	return s, nil
}

// openStore opens the configured record store backend over the full
// schema set. The returned closer releases the store.
func openStore(ctx context.Context, set map[string]types.Schema) (types.RecordStore, func(), error) {
	all := make([]types.Schema, 0, len(set))
	for _, s := range set {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Entity < all[j].Entity })

	conf := types.Config{Backend: cfg.Backend}
	switch conf.Backend {
	case types.BackendSQLite:
		dataDir, err := resolveDataDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve data dir: %w", err)
		}
		conf.DataDir = dataDir
	case types.BackendPostgres:
		url, err := secrets.DatabaseURL()
		if err != nil {
			return nil, nil, err
		}
		conf.URL = url
	}
	if err := conf.Validate(); err != nil {
		return nil, nil, err
	}

	if conf.Backend == types.BackendPostgres {
		st, err := postgres.Open(ctx, conf.URL, all)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		return st, st.Close, nil
	}
	st, err := sqlite.Open(conf.DataDir, all)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return st, func() { st.Close() }, nil
}

// viewPredicate builds the filter predicate from the --status and
// --contains flags. A nil predicate means no filtering.
func viewPredicate(status string, contains []string) (grid.Predicate, error) {
	var preds []grid.Predicate
	if status != "" {
		preds = append(preds, grid.ColumnEquals("status", status))
	}
	for _, c := range contains {
		parts := strings.SplitN(c, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --contains %q (expected column=substring)", c)
		}
		preds = append(preds, grid.ColumnContains(parts[0], parts[1]))
	}
	if len(preds) == 0 {
		return nil, nil
	}
	return grid.And(preds...), nil
}

// printTable renders a table as aligned text or, in --json mode, as an
// array of row objects.
func printTable(t *types.Table) error {
	if flagJSON {
		return printTableJSON(t)
	}

	names := []string{t.Schema.IdentityColumn()}
	for _, c := range t.Schema.DataColumns() {
		names = append(names, c.Name)
	}

	widths := make([]int, len(names))
	for i, n := range names {
		widths[i] = len(n)
	}
	cells := make([][]string, len(t.Rows))
	for ri, r := range t.Rows {
		cells[ri] = make([]string, len(names))
		cells[ri][0] = r.ID
		for ci, n := range names[1:] {
			cells[ri][ci+1] = renderCell(r.Cells[n])
		}
		for ci, s := range cells[ri] {
			if len(s) > widths[ci] {
				widths[ci] = len(s)
			}
		}
	}

	printRow(names, widths)
	for _, row := range cells {
		printRow(row, widths)
	}
	return nil
}

func printRow(fields []string, widths []int) {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%-*s", widths[i], f)
	}
	fmt.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
}

func printTableJSON(t *types.Table) error {
	out := make([]map[string]any, len(t.Rows))
	idCol := t.Schema.IdentityColumn()
	for i, r := range t.Rows {
		rec := make(map[string]any, len(r.Cells)+1)
		rec[idCol] = r.ID
		for k, v := range r.Cells {
			if d, ok := v.(time.Time); ok {
				rec[k] = d.Format("2006-01-02")
				continue
			}
			rec[k] = v
		}
		out[i] = rec
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal rows: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// renderCell formats a canonical cell value for text output.
func renderCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format("2006-01-02")
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
