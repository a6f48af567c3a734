// Package local stores outputs in a directory on the local filesystem.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"photo-brander/internal/repository/output"
)

type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Save writes data to <dir>/<name>. The data goes to a hidden temporary file
// first and is renamed into place only once fully written, so a failed save
// never leaves a partial file under the final name.
func (r *FileRepository) Save(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", output.ErrInvalidName, name)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(r.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: failed to create temp file: %w", output.ErrStorageError, err)
	}
	tmpPath := tmp.Name()

	if err := writeAndClose(tmp, data); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: failed to write %s: %w", output.ErrStorageError, name, err)
	}

	path := filepath.Join(r.dir, name)
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: failed to move %s into place: %w", output.ErrStorageError, name, err)
	}

	return path, nil
}

func writeAndClose(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
