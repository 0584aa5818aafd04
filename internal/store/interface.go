package store

import (
	"context"

	"github.com/dancojocaru2000/ttt-server/internal/model"
)

// Store is the document store holding all users and games.
//
// The database is a single aggregate: Load returns the whole thing and
// Update rewrites the whole thing. At most one Update or Save body runs
// at a time process-wide; a second call blocks until the first
// completes so load/mutate/save cycles never interleave.
type Store interface {
	// Load reads the current database without entering the exclusive
	// section. A missing or unreadable backing store is treated as a
	// first run and yields an empty database, not an error. Callers
	// that need a consistent multi-field snapshot, or that mutate,
	// must use Update instead.
	Load(ctx context.Context) (*model.Database, error)

	// Update runs fn with exclusive mutable access to the database and
	// persists the result in full. If fn returns an error the save is
	// skipped, the in-memory copy is discarded and the error is
	// returned. A failed save also discards the mutation; the backing
	// store keeps its last successfully written contents.
	Update(ctx context.Context, fn func(db *model.Database) error) error

	// Save overwrites the backing store with db inside the exclusive
	// section. Prefer Update; Save exists for whole-database imports.
	Save(ctx context.Context, db *model.Database) error

	// Close releases any resources held by the backing store
	Close() error
}

// With runs fn inside the store's exclusive section and returns its
// result alongside any error. It is the typed companion to Update for
// callers that need a value out of the mutation.
func With[T any](ctx context.Context, s Store, fn func(db *model.Database) (T, error)) (T, error) {
	var result T
	err := s.Update(ctx, func(db *model.Database) error {
		var fnErr error
		result, fnErr = fn(db)
		return fnErr
	})
	return result, err
}
