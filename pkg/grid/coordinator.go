package grid

import (
	"context"

	"github.com/NSC-Rick/stjregistry/pkg/types"
)

// Coordinator applies a write batch to the record store and keeps the
// loader cache consistent with what was actually persisted.
type Coordinator struct {
	store  types.RecordStore
	loader *Loader
	entity string
}

// NewCoordinator creates a coordinator writing to the loader's entity.
func NewCoordinator(store types.RecordStore, loader *Loader) *Coordinator {
	return &Coordinator{store: store, loader: loader, entity: loader.schema.Entity}
}

// Save issues at most one upsert call and one insert call for the
// batch. Each store call is atomic from this side: a partial failure of
// one row fails the whole call. Only when every call succeeds is the
// loader cache invalidated; on failure the cache is left as it was.
func (c *Coordinator) Save(ctx context.Context, batch WriteBatch) error {
	if len(batch.Updates) > 0 {
		if err := c.store.Upsert(ctx, c.entity, batch.Updates); err != nil {
			return &SaveError{Entity: c.entity, Stage: "upsert", Err: err}
		}
	}
	if len(batch.Inserts) > 0 {
		if err := c.store.Insert(ctx, c.entity, batch.Inserts); err != nil {
			return &SaveError{Entity: c.entity, Stage: "insert", Err: err}
		}
	}
	if !batch.Empty() {
		c.loader.Invalidate()
	}
	return nil
}
