// Stats command prints the dashboard check-in summary for an entity.
package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/NSC-Rick/stjregistry/pkg/grid"
)

var (
	statsColumn string
	statsWindow int
)

var statsCmd = &cobra.Command{
	Use:   "stats <entity>",
	Short: "Print overdue and due-soon check-in counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsColumn, "column", "next_check_in", "date column to summarize")
	statsCmd.Flags().IntVar(&statsWindow, "window", 7, "due-soon window in days")
}

func runStats(cmd *cobra.Command, args []string) error {
	set, err := loadSchemaSet()
	if err != nil {
		return err
	}
	schema, err := schemaFor(args[0], set)
	if err != nil {
		return err
	}
	if _, ok := schema.Column(statsColumn); !ok {
		return fmt.Errorf("entity %q has no column %q", schema.Entity, statsColumn)
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
		return err
	}

	summary := grid.SummarizeCheckIns(table, statsColumn, time.Now().UTC(), statsWindow)
	if flagJSON {
		data, err := json.Marshal(map[string]int{
			"overdue":  summary.Overdue,
			"due_soon": summary.DueSoon,
		})
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("overdue: %d\n", summary.Overdue)
	fmt.Printf("due soon (next %d days): %d\n", statsWindow, summary.DueSoon)
	return nil
}
