// Package file implements the document store on a single JSON file.
//
// This is the default backend. The whole database lives in db.json
// inside the configured directory and is rewritten in full on every
// save; there is no incremental or append format.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dancojocaru2000/ttt-server/internal/model"
	"github.com/dancojocaru2000/ttt-server/internal/store"
)

// DatabaseFileName is the name of the backing file inside the store directory
const DatabaseFileName = "db.json"

// Storage is a file-backed implementation of the store interface
type Storage struct {
	path   string
	logger *slog.Logger

	// mu is the exclusive section: it serializes every
	// load/mutate/save cycle and every direct save process-wide.
	mu sync.Mutex
}

// New creates a file store backed by db.json inside dir.
// An empty dir means the process working directory.
func New(dir string, logger *slog.Logger) *Storage {
	if dir == "" {
		dir = "."
	}
	return &Storage{
		path:   filepath.Join(dir, DatabaseFileName),
		logger: logger,
	}
}

// Ensure Storage implements the interface
var _ store.Store = (*Storage)(nil)

// Load reads and parses the backing file. Absence and corruption are
// both treated as a first run: the caller gets a fresh empty database
// and never an error. This tolerance is deliberate; callers must not
// assume a non-empty store.
func (s *Storage) Load(ctx context.Context) (*model.Database, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("database file unreadable, starting fresh",
				slog.String("path", s.path),
				slog.String("error", err.Error()),
			)
		}
		return model.NewDatabase(), nil
	}

	var db model.Database
	if err := json.Unmarshal(data, &db); err != nil {
		s.logger.Warn("database file corrupt, starting fresh",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return model.NewDatabase(), nil
	}

	db.Normalize()
	return &db, nil
}

// Update implements the exclusive load/mutate/save cycle
func (s *Storage) Update(ctx context.Context, fn func(db *model.Database) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.Load(ctx)
	if err != nil {
		return err
	}

	if err := fn(db); err != nil {
		// The mutated copy is discarded; nothing is persisted.
		return err
	}

	return s.save(db)
}

// Save overwrites the backing file with db inside the exclusive section
func (s *Storage) Save(ctx context.Context, db *model.Database) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(db)
}

// save writes the whole database. Callers must hold mu.
func (s *Storage) save(db *model.Database) error {
	data, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("serializing database: %w", err)
	}

	// Write to a sibling temp file and rename so a failed write never
	// truncates the last good contents.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing database file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing database file: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend
func (s *Storage) Close() error {
	return nil
}
