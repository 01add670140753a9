package grid

import (
	"context"

	"github.com/NSC-Rick/stjregistry/pkg/types"
)

// fakeStore is an in-memory RecordStore for pipeline tests. It records
// every call and can be primed to fail any operation.
type fakeStore struct {
	rows []map[string]any

	selectErr error
	upsertErr error
	insertErr error

	selects int
	upserts [][]map[string]any
	inserts [][]map[string]any
}

func (f *fakeStore) Select(ctx context.Context, table, orderBy string) ([]map[string]any, error) {
	f.selects++
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	out := make([]map[string]any, len(f.rows))
	for i, r := range f.rows {
		rec := make(map[string]any, len(r))
		for k, v := range r {
			rec[k] = v
		}
		out[i] = rec
	}
	return out, nil
}

func (f *fakeStore) Upsert(ctx context.Context, table string, rows []map[string]any) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, rows)
	return nil
}

func (f *fakeStore) Insert(ctx context.Context, table string, rows []map[string]any) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserts = append(f.inserts, rows)
	return nil
}

// testSchema is the initiative-shaped schema used across grid tests.
func testSchema() types.Schema {
	return types.Schema{
		Entity: "initiatives",
		SortBy: "initiative_name",
		Columns: []types.Column{
			{Name: "id", Kind: types.KindID, ReadOnly: true},
			{Name: "initiative_name", Kind: types.KindText, Required: true},
			{Name: "region", Kind: types.KindText},
			{Name: "status", Kind: types.KindEnum, Required: true, Options: []string{"Proposed", "Active", "Paused", "Completed"}},
			{Name: "next_check_in", Kind: types.KindDate},
			{Name: "notes", Kind: types.KindText},
			{Name: "updated_at", Kind: types.KindText, ReadOnly: true},
		},
	}
}
