package store

import (
	"os"
	"path/filepath"
)

// FileBackend stores each collection as a pretty-printed JSON file named
// <name>.json under a single data directory. Writes replace the whole file;
// there is no cross-process locking, so the last writer wins at the file
// level.
type FileBackend struct {
	dir string
}

// NewFileBackend creates the data directory if needed and returns a backend
// rooted there.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

func (b *FileBackend) Read(name string) ([]byte, error) {
	return os.ReadFile(b.path(name))
}

func (b *FileBackend) Write(name string, data []byte) error {
	return os.WriteFile(b.path(name), data, 0o644)
}
