// Package source discovers the input images of a batch.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"photo-brander/internal/domain"
)

type Repository struct {
	dir        string
	extensions map[string]struct{}
}

func NewRepository(dir string) *Repository {
	extensions := make(map[string]struct{}, len(domain.SourceExtensions))
	for _, ext := range domain.SourceExtensions {
		extensions[ext] = struct{}{}
	}

	return &Repository{
		dir:        dir,
		extensions: extensions,
	}
}

// List returns the paths of supported images directly inside the input
// directory, sorted lexicographically.
func (r *Repository) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := r.extensions[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		paths = append(paths, filepath.Join(r.dir, e.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}

// EnsureDirs creates every directory in dirs that does not exist yet.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
