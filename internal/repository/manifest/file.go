package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/houdini-package/internal/domain/houdini"
)

const (
	// Filename is the manifest name inside a package folder.
	Filename = "houdini-package.yaml"

	// filePermissions is applied to the written manifest.
	filePermissions = 0o644
)

// ErrNotFound is returned when no manifest has been written yet.
var ErrNotFound = errors.New("manifest not found")

// Repository defines persistence operations for the package manifest.
type Repository interface {
	Load(ctx context.Context) (*houdini.Manifest, error)
	Save(ctx context.Context, m *houdini.Manifest) error
}

// FileRepository keeps the manifest of one package folder on disk.
type FileRepository struct {
	// path is the manifest location.
	path string
	// mu serialises access to the manifest file.
	mu sync.Mutex
}

// NewFileRepository returns a repository for the manifest of packageFolder.
func NewFileRepository(packageFolder string) *FileRepository {
	return &FileRepository{
		path: filepath.Join(filepath.Clean(packageFolder), Filename),
	}
}

// Path returns the manifest location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the manifest from disk.
func (r *FileRepository) Load(_ context.Context) (*houdini.Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m houdini.Manifest
	if err = yaml.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to disk.
func (r *FileRepository) Save(_ context.Context, m *houdini.Manifest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err = os.WriteFile(r.path, data, filePermissions); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
