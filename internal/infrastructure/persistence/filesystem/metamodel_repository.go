// Package filesystem provides disk-backed implementations of domain repositories.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/repositories"
)

// Ensure interface compliance
var _ repositories.MetamodelRepository = (*MetamodelRepository)(nil)

const defaultFileMode fs.FileMode = 0o644

// MetamodelValidator validates an encoded metamodel before it is decoded.
type MetamodelValidator interface {
	ValidateMetamodel(data []byte) error
}

// MetamodelRepository stores metamodels as JSON files.
// Writes go to a temporary file in the target directory that is renamed over
// the target, so readers never observe a partial document.
type MetamodelRepository struct {
	validator MetamodelValidator
}

// NewMetamodelRepository creates a new filesystem repository. A nil validator
// skips schema validation on load.
func NewMetamodelRepository(validator MetamodelValidator) *MetamodelRepository {
	return &MetamodelRepository{validator: validator}
}

// Load reads and decodes the metamodel at location.
func (r *MetamodelRepository) Load(ctx context.Context, location string) (*repositories.StoredMetamodel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := readFile(location)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if r.validator != nil {
		if err := r.validator.ValidateMetamodel(data); err != nil {
			return nil, fmt.Errorf("metamodel %s is invalid: %w", location, err)
		}
	}

	doc, err := entities.DecodeMetamodel(data)
	if err != nil {
		return nil, fmt.Errorf("metamodel %s: %w", location, err)
	}
	return &repositories.StoredMetamodel{Document: doc, Raw: data}, nil
}

// Save atomically replaces the file at location with data.
func (r *MetamodelRepository) Save(ctx context.Context, location string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(location)
	mode := defaultFileMode
	if info, err := os.Stat(location); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(location)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName) // Best-effort cleanup
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write metamodel: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync metamodel: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close metamodel: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to set metamodel permissions: %w", err)
	}
	if err := os.Rename(tmpName, location); err != nil {
		return fmt.Errorf("failed to replace metamodel: %w", err)
	}
	committed = true
	return nil
}

// readFile reads a file through os.OpenRoot so the name cannot escape its directory.
func readFile(path string) ([]byte, error) {
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open metamodel directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(filepath.Base(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to open metamodel: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read metamodel: %w", err)
	}
	return data, nil
}
