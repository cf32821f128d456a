package receipt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rtetrack/tracking-desk/internal/core/ports"
)

var ErrExists = errors.New("receipt file already exists")

// FileStore saves synthesised receipts into a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}
}

// Save writes the download under its own file name and returns the full path.
// Existing files are never overwritten.
func (s *FileStore) Save(d *ports.ReceiptDownload) (string, error) {
	if d == nil {
		return "", errors.New("save receipt: nothing to save")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("save receipt: %w", err)
	}

	path := filepath.Join(s.dir, filepath.Base(d.FileName))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("save receipt %s: %w", path, ErrExists)
		}
		return "", fmt.Errorf("save receipt: %w", err)
	}

	if _, err := f.Write(d.Data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("save receipt %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("save receipt %s: %w", path, err)
	}
	return path, nil
}
