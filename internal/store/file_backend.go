package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataFileName is the fixed document name inside the authorized directory.
const DataFileName = "alkhaled-data.json"

// FileBackend persists the document as a single JSON file in a
// user-authorized directory.
type FileBackend struct {
	dir string
}

// NewFileBackend binds to a directory after verifying access to it.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := VerifyDirectoryAccess(dir); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir}, nil
}

// VerifyDirectoryAccess is the permission check run at every session start:
// the directory must exist and accept a write probe. Failures map to
// ErrPermissionDenied so the controller can fall back instead of blocking.
func VerifyDirectoryAccess(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, dir)
	}
	probe := filepath.Join(dir, ".alkhaled-probe")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, dir)
	}
	f.Close()
	os.Remove(probe)
	return nil
}

func (b *FileBackend) Name() string { return "file" }

// Dir returns the bound directory.
func (b *FileBackend) Dir() string { return b.dir }

func (b *FileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(b.dir, DataFileName))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return data, nil
}

func (b *FileBackend) Save(data []byte) error {
	if err := os.WriteFile(filepath.Join(b.dir, DataFileName), data, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}
