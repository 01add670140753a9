// Edit command applies a batch of grid edits to an entity and saves
// them: cell edits, added rows, and removed rows are reconciled into
// update and insert batches. Filters scope the working view; rows
// outside the view are untouched by the save.
package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/NSC-Rick/stjregistry/pkg/grid"
	"github.com/NSC-Rick/stjregistry/pkg/types"
)

var (
	editStatus   string
	editContains []string
	editSets     []string
	editAdds     []string
	editDeletes  []int
	editDryRun   bool
)

var editCmd = &cobra.Command{
	Use:   "edit <entity>",
	Short: "Edit an entity grid and save the changes",
	Long: `Edit loads an entity grid, applies the requested mutations to a
working copy, and saves the reconciled changes back to the record store.

Row indexes refer to the filtered view, starting at 0. Deletions are
applied first, then cell edits, then added rows.

Example:
  registry edit initiatives --set "0:status=Completed"
  registry edit initiatives --add "initiative_name=Pilot,status=Proposed"
  registry edit initiatives --status Active --set "2:next_check_in=2025-04-01"
  registry edit initiatives --delete 3 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editStatus, "status", "", "scope the view to rows with this status")
	editCmd.Flags().StringArrayVar(&editContains, "contains", nil, "scope the view to rows whose column contains a substring (column=substring)")
	editCmd.Flags().StringArrayVar(&editSets, "set", nil, "edit a cell (row:column=value)")
	editCmd.Flags().StringArrayVar(&editAdds, "add", nil, "append a row (column=value,column=value,...)")
	editCmd.Flags().IntSliceVar(&editDeletes, "delete", nil, "remove a row from this save cycle (view row index)")
	editCmd.Flags().BoolVar(&editDryRun, "dry-run", false, "print the write batch instead of saving")
}

func runEdit(cmd *cobra.Command, args []string) error {
	set, err := loadSchemaSet()
	if err != nil {
		return err
	}
	schema, err := schemaFor(args[0], set)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, closeStore, err := openStore(ctx, set)
	if err != nil {
		return err
	}
	defer closeStore()

	loader := grid.NewLoader(store, schema, cfg.CacheTTL)
	table, err := loader.Load(ctx)
	if err != nil {
		// Editing partial data risks clobbering rows; halt instead.
		return err
	}

	pred, err := viewPredicate(editStatus, editContains)
	if err != nil {
		return err
	}
	if pred != nil {
		table = grid.Filter(table, pred)
	}

	session := grid.NewSession(table)
	if err := applyMutations(session, schema); err != nil {
		return err
	}

	batch := grid.Reconcile(session.Snapshot(), schema)
	if batch.Empty() {
		fmt.Println("No changes to save.")
		return nil
	}

	if editDryRun {
		data, err := json.MarshalIndent(batch, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	coord := grid.NewCoordinator(store, loader)
	if err := coord.Save(ctx, batch); err != nil {
		color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), "Failed to save changes.")
		return err
	}

	color.New(color.FgGreen).Println("Registry updated successfully.")
	fmt.Printf("%d updated, %d inserted\n", len(batch.Updates), len(batch.Inserts))
	return nil
}

// applyMutations runs deletions (highest index first, so earlier
// indexes stay valid), then cell edits, then row additions.
func applyMutations(session *grid.Session, schema types.Schema) error {
	deletes := append([]int(nil), editDeletes...)
	sort.Sort(sort.Reverse(sort.IntSlice(deletes)))
	for _, row := range deletes {
		if err := session.DeleteRow(row); err != nil {
			return fmt.Errorf("delete row %d: %w", row, err)
		}
	}

	for _, spec := range editSets {
		row, column, value, err := parseSet(spec)
		if err != nil {
			return err
		}
		col, ok := schema.Column(column)
		if !ok {
			return fmt.Errorf("set %q: %w", spec, grid.ErrUnknownColumn)
		}
		if err := session.EditCell(row, column, parseCellValue(col, value)); err != nil {
			return fmt.Errorf("set %q: %w", spec, err)
		}
	}

	for _, spec := range editAdds {
		row := session.AddRow()
		for _, pair := range strings.Split(spec, ",") {
			parts := strings.SplitN(pair, "=", 2)
			if len(parts) != 2 {
				return fmt.Errorf("invalid --add field %q (expected column=value)", pair)
			}
			col, ok := schema.Column(parts[0])
			if !ok {
				return fmt.Errorf("add %q: %w", parts[0], grid.ErrUnknownColumn)
			}
			if err := session.EditCell(row, parts[0], parseCellValue(col, parts[1])); err != nil {
				return fmt.Errorf("add %q: %w", parts[0], err)
			}
		}
	}
	return nil
}

// parseSet splits a --set spec of the form row:column=value.
func parseSet(spec string) (row int, column, value string, err error) {
	head, value, ok := strings.Cut(spec, "=")
	if !ok {
		return 0, "", "", fmt.Errorf("invalid --set %q (expected row:column=value)", spec)
	}
	rowStr, column, ok := strings.Cut(head, ":")
	if !ok {
		return 0, "", "", fmt.Errorf("invalid --set %q (expected row:column=value)", spec)
	}
	row, err = strconv.Atoi(rowStr)
	if err != nil {
		return 0, "", "", fmt.Errorf("invalid --set row %q: %w", rowStr, err)
	}
	return row, column, value, nil
}

// parseCellValue coerces a flag string to the column's canonical type.
// An empty string clears enum and date cells to typed null. Date values
// that do not parse are kept as text; the loader coerces them to null
// on the next load.
func parseCellValue(col types.Column, raw string) any {
	if raw == "" && col.Kind != types.KindText {
		return nil
	}
	if col.Kind == types.KindDate {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			return d
		}
	}
	return raw
}
