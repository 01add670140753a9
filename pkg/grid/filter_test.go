package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NSC-Rick/stjregistry/pkg/types"
)

func filterFixture() *types.Table {
	return &types.Table{
		Schema: testSchema(),
		Rows: []types.Row{
			{ID: "a1", Cells: map[string]any{"initiative_name": "Broadband", "region": "Lamoille Valley", "status": "Active"}},
			{ID: "a2", Cells: map[string]any{"initiative_name": "Maker Space", "region": "Kingdom East", "status": "Paused"}},
			{ID: "a3", Cells: map[string]any{"initiative_name": "Farm Share", "region": "kingdom west", "status": "Active"}},
		},
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	table := filterFixture()
	before := table.Clone()

	out := Filter(table, ColumnEquals("status", "Active"))
	require.Len(t, out.Rows, 2)

	// Mutating the view must not leak back either.
	out.Rows[0].Cells["status"] = "Completed"

	assert.Equal(t, before.Rows, table.Rows)
}

func TestFilterPreservesIdentity(t *testing.T) {
	out := Filter(filterFixture(), ColumnEquals("status", "Active"))
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "a1", out.Rows[0].ID)
	assert.Equal(t, "a3", out.Rows[1].ID)
}

func TestColumnContainsIsCaseInsensitive(t *testing.T) {
	out := Filter(filterFixture(), ColumnContains("region", "KINGDOM"))
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "a2", out.Rows[0].ID)
	assert.Equal(t, "a3", out.Rows[1].ID)
}

func TestAndCombinesPredicates(t *testing.T) {
	out := Filter(filterFixture(), And(
		ColumnEquals("status", "Active"),
		ColumnContains("region", "kingdom"),
	))
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "a3", out.Rows[0].ID)
}

func TestFilterMatchesDateCellsInWireForm(t *testing.T) {
	table := &types.Table{
		Schema: testSchema(),
		Rows: []types.Row{
			{ID: "a1", Cells: map[string]any{"next_check_in": time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}},
		},
	}
	out := Filter(table, ColumnContains("next_check_in", "2025-03"))
	assert.Len(t, out.Rows, 1)
}

func TestNilPredicateMatchesAll(t *testing.T) {
	out := Filter(filterFixture(), nil)
	assert.Len(t, out.Rows, 3)
}
