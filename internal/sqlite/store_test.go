package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NSC-Rick/stjregistry/pkg/schemas"
	"github.com/NSC-Rick/stjregistry/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(t.TempDir(), []types.Schema{schemas.Initiatives()})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestInsertAssignsIdentity(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.Insert(ctx, "initiatives", []map[string]any{
		{"initiative_name": "Pilot", "status": "Proposed"},
	})
	require.NoError(t, err)

	rows, err := st.Select(ctx, "initiatives", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotEmpty(t, rows[0]["id"])
	assert.Equal(t, "Pilot", rows[0]["initiative_name"])
	assert.NotNil(t, rows[0]["updated_at"])
}

func TestSelectOrdersByColumn(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.Insert(ctx, "initiatives", []map[string]any{
		{"initiative_name": "Zebra Trail", "status": "Active"},
		{"initiative_name": "Apple Orchard", "status": "Active"},
	})
	require.NoError(t, err)

	rows, err := st.Select(ctx, "initiatives", "initiative_name")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Apple Orchard", rows[0]["initiative_name"])
	assert.Equal(t, "Zebra Trail", rows[1]["initiative_name"])
}

func TestSelectRejectsUndeclaredOrderColumn(t *testing.T) {
	st := openTestStore(t)
	_, err := st.Select(context.Background(), "initiatives", "priority; DROP TABLE initiatives")
	assert.ErrorIs(t, err, types.ErrInvalidOrder)
}

func TestUpsertReplacesById(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Insert(ctx, "initiatives", []map[string]any{
		{"initiative_name": "Broadband", "status": "Active"},
	}))
	rows, err := st.Select(ctx, "initiatives", "")
	require.NoError(t, err)
	id := rows[0]["id"].(string)

	err = st.Upsert(ctx, "initiatives", []map[string]any{
		{"id": id, "initiative_name": "Broadband", "status": "Completed"},
	})
	require.NoError(t, err)

	rows, err = st.Select(ctx, "initiatives", "")
	require.NoError(t, err)
	require.Len(t, rows, 1, "upsert must not duplicate the row")
	assert.Equal(t, "Completed", rows[0]["status"])
}

func TestUpsertCreatesUnknownId(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.Upsert(ctx, "initiatives", []map[string]any{
		{"id": "ext-1", "initiative_name": "Imported", "status": "Proposed"},
	})
	require.NoError(t, err)

	rows, err := st.Select(ctx, "initiatives", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ext-1", rows[0]["id"])
}

func TestUpsertRequiresIdentity(t *testing.T) {
	st := openTestStore(t)
	err := st.Upsert(context.Background(), "initiatives", []map[string]any{
		{"initiative_name": "No ID"},
	})
	assert.ErrorIs(t, err, types.ErrMissingIdentity)
}

func TestEnumCheckEnforcedStoreSide(t *testing.T) {
	st := openTestStore(t)
	err := st.Insert(context.Background(), "initiatives", []map[string]any{
		{"initiative_name": "Bad Status", "status": "Abandoned"},
	})
	require.Error(t, err, "out-of-set enum value must be rejected by the store")

	rows, selErr := st.Select(context.Background(), "initiatives", "")
	require.NoError(t, selErr)
	assert.Empty(t, rows, "failed insert transaction must not leave rows behind")
}

func TestWriteFailureRollsBackWholeBatch(t *testing.T) {
	st := openTestStore(t)
	err := st.Insert(context.Background(), "initiatives", []map[string]any{
		{"initiative_name": "Good", "status": "Active"},
		{"initiative_name": "Bad", "status": "NotAnOption"},
	})
	require.Error(t, err)

	rows, selErr := st.Select(context.Background(), "initiatives", "")
	require.NoError(t, selErr)
	assert.Empty(t, rows)
}

func TestNullsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Insert(ctx, "initiatives", []map[string]any{
		{"initiative_name": "Sparse", "status": "Proposed", "next_check_in": nil},
	}))

	rows, err := st.Select(ctx, "initiatives", "")
	require.NoError(t, err)
	assert.Nil(t, rows[0]["next_check_in"])
}

func TestUnknownTable(t *testing.T) {
	st := openTestStore(t)
	_, err := st.Select(context.Background(), "grants", "")
	assert.ErrorIs(t, err, types.ErrTableUnknown)
}

func TestClosedStore(t *testing.T) {
	st, err := Open(t.TempDir(), []types.Schema{schemas.Initiatives()})
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.NoError(t, st.Close(), "close is idempotent")

	_, err = st.Select(context.Background(), "initiatives", "")
	assert.ErrorIs(t, err, types.ErrStoreClosed)
}

func TestOpenRejectsInvalidSchema(t *testing.T) {
	_, err := Open(t.TempDir(), []types.Schema{{Entity: "broken"}})
	assert.ErrorIs(t, err, types.ErrNoIdentity)
}
