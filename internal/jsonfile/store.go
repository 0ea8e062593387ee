// Package jsonfile persists the application collection as a single JSON
// array in one file, the direct analogue of the original flat storage blob.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ptdn/hoso-portal/internal/domain/application"
)

// Store reads and rewrites the whole collection on every call. There are no
// partial writes and no transactions; the caller serializes mutations.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a store backed by the file at path. The file may not exist
// yet; it is created on the first save.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, logger: logger}
}

// Load returns the persisted collection in insertion order. A missing file
// or a malformed blob yields an empty collection, not an error: bad data
// must not take the portal down.
func (s *Store) Load(ctx context.Context) ([]application.Application, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []application.Application{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var apps []application.Application
	if err := json.Unmarshal(data, &apps); err != nil {
		s.logger.Warn("discarding malformed application blob", "path", s.path, "error", err)
		return []application.Application{}, nil
	}
	return apps, nil
}

// SaveAll overwrites the file with the full collection. The write goes
// through a temp file and rename so a crash mid-write cannot leave a
// truncated blob behind.
func (s *Store) SaveAll(ctx context.Context, apps []application.Application) error {
	data, err := json.Marshal(apps)
	if err != nil {
		return fmt.Errorf("encoding applications: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing applications: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
