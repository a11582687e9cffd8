package filterstate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpattn/clientdesk/internal/domain"
)

// FileStore keeps the snapshot as a JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path. The directory is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

func (s *FileStore) Load(_ context.Context) (domain.ClientFilter, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ClientFilter{}, ErrNoSnapshot
		}
		return domain.ClientFilter{}, fmt.Errorf("failed to read filter snapshot: %w", err)
	}
	return Decode(payload)
}

// Save writes to a temp file and renames it so readers never see a partial snapshot.
func (s *FileStore) Save(_ context.Context, filter domain.ClientFilter) error {
	payload, err := Encode(filter)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".filter-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write filter snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close filter snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace filter snapshot: %w", err)
	}
	return nil
}
