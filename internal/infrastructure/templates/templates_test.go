package templates

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

func TestProvider_EmbeddedTemplates(t *testing.T) {
	t.Parallel()

	p := NewProvider(Overrides{})

	v1, err := p.Template(context.Background(), values.ShapeV1)
	require.NoError(t, err)
	doc1, ok := v1.(*entities.MetamodelV1)
	require.True(t, ok)
	assert.Equal(t, "1.0.0", doc1.SchemaVersion.String())
	assert.Empty(t, doc1.ProfileList)
	assert.Nil(t, doc1.DefaultCategory)
	assert.Nil(t, doc1.TypeMap)
	assert.Nil(t, doc1.AncestorPathMap)

	v2, err := p.Template(context.Background(), values.ShapeV2)
	require.NoError(t, err)
	doc2, ok := v2.(*entities.MetamodelV2)
	require.True(t, ok)
	assert.Equal(t, "2.0.0", doc2.SchemaVersion.String())
	require.NotNil(t, doc2.DefaultCategory)
	assert.NotNil(t, doc2.TypeMap)
	assert.NotNil(t, doc2.AncestorPathMap)
	assert.NotNil(t, doc2.AncestorPathList)
	assert.JSONEq(t, `[]`, string(doc2.RoleProfileList))
}

func TestProvider_ReturnsFreshDocuments(t *testing.T) {
	t.Parallel()

	p := NewProvider(Overrides{})
	first, err := p.Template(context.Background(), values.ShapeV2)
	require.NoError(t, err)
	first.Head().Code = "mutated"

	second, err := p.Template(context.Background(), values.ShapeV2)
	require.NoError(t, err)
	assert.Equal(t, "APP-CODE", second.Head().Code)
}

func TestProvider_Override(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "v1.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schemaVersion": "1.5.0", "code": "MY-APP", "profileList": [], "useCaseProfileMap": {}}`), 0o600))

	p := NewProvider(Overrides{V1: path})
	doc, err := p.Template(context.Background(), values.ShapeV1)
	require.NoError(t, err)
	assert.Equal(t, "MY-APP", doc.Head().Code)

	// V2 still comes from the embedded set.
	doc, err = p.Template(context.Background(), values.ShapeV2)
	require.NoError(t, err)
	assert.Equal(t, "APP-CODE", doc.Head().Code)
}

func TestProvider_OverrideErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	wrongShape := filepath.Join(dir, "wrong.json")
	require.NoError(t, os.WriteFile(wrongShape, []byte(`{"schemaVersion": "2.0.0"}`), 0o600))

	_, err := NewProvider(Overrides{V1: wrongShape}).Template(context.Background(), values.ShapeV1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a v1 template")

	_, err = NewProvider(Overrides{V2: filepath.Join(dir, "missing.json")}).Template(context.Background(), values.ShapeV2)
	assert.Error(t, err)
}

func TestEmbedded_UnknownShape(t *testing.T) {
	t.Parallel()

	_, err := Embedded(values.Shape(0))
	assert.Error(t, err)
}
