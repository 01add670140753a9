package grid

import (
	"strings"
	"time"

	"github.com/NSC-Rick/stjregistry/pkg/types"
)

// WriteBatch is the update/insert partition produced at save time.
// Update rows carry the identity column; insert rows omit it entirely
// so the store assigns one.
type WriteBatch struct {
	Updates []map[string]any
	Inserts []map[string]any
}

// Empty reports whether the batch has nothing to write.
func (b WriteBatch) Empty() bool {
	return len(b.Updates) == 0 && len(b.Inserts) == 0
}

// Reconcile partitions a session snapshot into a write batch. Every
// snapshot row lands in exactly one of dropped-as-blank, Updates, or
// Inserts:
//
//  1. rows blank across all non-identity columns are dropped,
//  2. values are normalized to wire form (null for typed null,
//     YYYY-MM-DD for dates, text unchanged; out-of-set enum values are
//     retained and left for the store to reject),
//  3. columns are restricted to the schema's writable set,
//  4. rows with a trimmed non-empty identity go to Updates with the
//     identity column set; the rest go to Inserts with no identity key.
//
// Reconcile reads the snapshot without mutating it; reconciling the
// same snapshot twice yields identical batches.
func Reconcile(snapshot []types.Row, schema types.Schema) WriteBatch {
	var batch WriteBatch
	idCol := schema.IdentityColumn()
	writable := schema.Writable()

	for _, row := range snapshot {
		if row.Blank() {
			continue
		}
		rec := make(map[string]any, len(writable)+1)
		for _, name := range writable {
			rec[name] = normalize(row.Cells[name])
		}
		if id := strings.TrimSpace(row.ID); id != "" {
			rec[idCol] = id
			batch.Updates = append(batch.Updates, rec)
		} else {
			batch.Inserts = append(batch.Inserts, rec)
		}
	}
	return batch
}

// normalize converts a canonical cell value to its wire representation.
func normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		if val.IsZero() {
			return nil
		}
		return val.Format(dateWire)
	case string:
		return val
	default:
		return asString(val)
	}
}
