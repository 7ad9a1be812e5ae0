package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore writes profile photos under a single directory on local disk.
// Stored names are flattened with filepath.Base so a caller-supplied name
// can never escape the directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *DiskStore) Save(name string, content io.Reader) error {
	f, err := os.Create(s.path(name))
	if err != nil {
		return fmt.Errorf("create photo file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write photo file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close photo file: %w", err)
	}
	return nil
}

// Remove deletes a stored photo. A missing file is not an error so that a
// stale reference can always be cleared.
func (s *DiskStore) Remove(name string) error {
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove photo file: %w", err)
	}
	return nil
}
