package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

const document = `{
  "schemaVersion": "2.0.0",
  "code": "UU-APP",
  "roleGroupProfileList": [{"code": "Authorities"}],
  "useCaseProfileMap": {}
}`

type stubValidator struct{ err error }

func (s stubValidator) ValidateMetamodel(_ []byte) error { return s.err }

func TestMetamodelRepository_LoadMissing(t *testing.T) {
	t.Parallel()

	repo := NewMetamodelRepository(nil)
	stored, err := repo.Load(context.Background(), filepath.Join(t.TempDir(), "metamodel.json"))
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestMetamodelRepository_MissingDirectory(t *testing.T) {
	t.Parallel()

	repo := NewMetamodelRepository(nil)
	stored, err := repo.Load(context.Background(), filepath.Join(t.TempDir(), "nope", "metamodel.json"))
	require.NoError(t, err)
	assert.Nil(t, stored, "a missing directory is a first run")
}

func TestMetamodelRepository_SaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metamodel.json")
	repo := NewMetamodelRepository(stubValidator{})
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, path, []byte(document)))

	stored, err := repo.Load(ctx, path)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, values.ShapeV2, stored.Document.Shape())
	assert.Equal(t, document, string(stored.Raw))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestMetamodelRepository_SaveReplacesAndKeepsMode(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "metamodel.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	require.NoError(t, NewMetamodelRepository(nil).Save(context.Background(), path, []byte(document)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, document, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMetamodelRepository_SaveIntoMissingDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "missing-dir", "metamodel.json")

	err := NewMetamodelRepository(nil).Save(context.Background(), path, []byte(document))
	assert.Error(t, err)
}

func TestMetamodelRepository_ValidatorRejects(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metamodel.json")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	repo := NewMetamodelRepository(stubValidator{err: errors.New("bad mask")})
	_, err := repo.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad mask")
}

func TestMetamodelRepository_InvalidJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metamodel.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"code":`), 0o600))

	_, err := NewMetamodelRepository(nil).Load(context.Background(), path)
	assert.Error(t, err)
}

func TestMetamodelRepository_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMetamodelRepository(nil)
	_, err := repo.Load(ctx, filepath.Join(t.TempDir(), "m.json"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Save(ctx, filepath.Join(t.TempDir(), "m.json"), nil), context.Canceled)
}
