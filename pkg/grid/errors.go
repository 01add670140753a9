// Package grid implements the editable-grid pipeline: loading a remote
// table into canonical form, filtering a view, holding an editing
// session, reconciling the edited rows into update and insert batches,
// and saving them back to the record store.
package grid

import (
	"errors"
	"fmt"
)

// Session mutation errors.
var (
	ErrReadOnlyColumn = errors.New("column is read-only")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrRowOutOfRange  = errors.New("row index out of range")
)

// LoadError reports a failed table load. The caller decides whether to
// halt or degrade to an empty table with a warning.
type LoadError struct {
	Entity string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Entity, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a failed save. Stage names the store call that
// failed ("upsert" or "insert"). The loader cache is left untouched and
// the editing session remains valid for retry.
type SaveError struct {
	Entity string
	Stage  string
	Err    error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s (%s): %v", e.Entity, e.Stage, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
