package grid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveIssuesOneCallPerBatchSide(t *testing.T) {
	store := &fakeStore{rows: []map[string]any{{"id": "a1", "initiative_name": "X", "status": "Active"}}}
	loader := NewLoader(store, testSchema(), time.Hour)
	coord := NewCoordinator(store, loader)

	batch := WriteBatch{
		Updates: []map[string]any{{"id": "a1", "status": "Completed"}, {"id": "a2", "status": "Paused"}},
		Inserts: []map[string]any{{"initiative_name": "Pilot"}},
	}
	require.NoError(t, coord.Save(context.Background(), batch))

	require.Len(t, store.upserts, 1)
	assert.Len(t, store.upserts[0], 2)
	require.Len(t, store.inserts, 1)
	assert.Len(t, store.inserts[0], 1)
}

func TestSaveSkipsEmptySides(t *testing.T) {
	store := &fakeStore{}
	loader := NewLoader(store, testSchema(), time.Hour)
	coord := NewCoordinator(store, loader)

	require.NoError(t, coord.Save(context.Background(), WriteBatch{
		Inserts: []map[string]any{{"initiative_name": "Pilot"}},
	}))
	assert.Empty(t, store.upserts)
	assert.Len(t, store.inserts, 1)
}

func TestSaveInvalidatesCacheOnSuccess(t *testing.T) {
	store := &fakeStore{rows: []map[string]any{{"id": "a1", "initiative_name": "X", "status": "Active"}}}
	loader := NewLoader(store, testSchema(), time.Hour)
	coord := NewCoordinator(store, loader)

	_, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, store.selects)

	err = coord.Save(context.Background(), WriteBatch{Updates: []map[string]any{{"id": "a1"}}})
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, store.selects, "save should have invalidated the cache")
}

func TestFailedSaveKeepsCacheAndSession(t *testing.T) {
	store := &fakeStore{rows: []map[string]any{{"id": "a1", "initiative_name": "X", "status": "Active"}}}
	loader := NewLoader(store, testSchema(), time.Hour)
	coord := NewCoordinator(store, loader)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	session := NewSession(table)
	require.NoError(t, session.EditCell(0, "status", "Bogus"))
	before := session.Snapshot()

	cause := errors.New("invalid input value for enum")
	store.upsertErr = cause

	batch := Reconcile(session.Snapshot(), testSchema())
	err = coord.Save(context.Background(), batch)
	require.Error(t, err)

	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, "upsert", saveErr.Stage)
	assert.ErrorIs(t, err, cause)

	// Working copy preserved for correction and retry.
	assert.Equal(t, before, session.Snapshot())

	// Cache not invalidated: next load is served without a re-fetch.
	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.selects)
}

func TestFailedInsertReportsInsertStage(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("boom")}
	loader := NewLoader(store, testSchema(), time.Hour)
	coord := NewCoordinator(store, loader)

	err := coord.Save(context.Background(), WriteBatch{Inserts: []map[string]any{{"initiative_name": "Pilot"}}})
	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, "insert", saveErr.Stage)
}

func TestEmptyBatchSaveIsANoOp(t *testing.T) {
	store := &fakeStore{rows: []map[string]any{{"id": "a1", "initiative_name": "X", "status": "Active"}}}
	loader := NewLoader(store, testSchema(), time.Hour)
	coord := NewCoordinator(store, loader)

	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, coord.Save(context.Background(), WriteBatch{}))

	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.selects, "empty save must not invalidate the cache")
}
