package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRowBlank(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want bool
	}{
		{"empty cells", Row{Cells: map[string]any{}}, true},
		{"nils and blanks", Row{Cells: map[string]any{"a": nil, "b": "", "c": "   "}}, true},
		{"zero time", Row{Cells: map[string]any{"d": time.Time{}}}, true},
		{"text present", Row{Cells: map[string]any{"a": "x"}}, false},
		{"date present", Row{Cells: map[string]any{"d": time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}}, false},
		{"identity does not count", Row{ID: "abc123", Cells: map[string]any{"a": nil}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.row.Blank())
		})
	}
}

func TestTableCloneIsDeep(t *testing.T) {
	table := &Table{Rows: []Row{{ID: "a1", Cells: map[string]any{"name": "X"}}}}
	clone := table.Clone()
	clone.Rows[0].Cells["name"] = "Y"
	clone.Rows[0].ID = "a2"

	assert.Equal(t, "X", table.Rows[0].Cells["name"])
	assert.Equal(t, "a1", table.Rows[0].ID)
}
