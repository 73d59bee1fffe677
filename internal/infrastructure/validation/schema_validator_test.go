package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ValidateDefinition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "list entries",
			doc:  `{"*": {"useCaseMap": {"item/get": ["Readers"]}, "profileList": ["Readers"]}}`,
		},
		{
			name: "object entries",
			doc:  `{"*": {"useCaseMap": {"item/get": {"profileList": ["Readers"], "note": 1}}, "profileList": ["Readers"]}}`,
		},
		{
			name: "extra domains",
			doc:  `{"*": {"useCaseMap": {}, "profileList": []}, "other": {"useCaseMap": {}, "profileList": []}}`,
		},
		{
			name:    "missing wildcard",
			doc:     `{"app": {"useCaseMap": {}, "profileList": []}}`,
			wantErr: "(root)",
		},
		{
			name:    "missing profileList",
			doc:     `{"*": {"useCaseMap": {}}}`,
			wantErr: "/*",
		},
		{
			name:    "null entry profiles",
			doc:     `{"*": {"useCaseMap": {"a": {"profileList": null}}, "profileList": []}}`,
			wantErr: "/*/useCaseMap/a",
		},
		{
			name:    "non string profile",
			doc:     `{"*": {"useCaseMap": {}, "profileList": [1]}}`,
			wantErr: "/*/profileList/0",
		},
	}

	v := NewSchemaValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.ValidateDefinition([]byte(tt.doc))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func Test_ValidateMetamodel(t *testing.T) {
	t.Parallel()

	v := NewSchemaValidator()

	assert.NoError(t, v.ValidateMetamodel([]byte(`{
		"schemaVersion": "1.0.0",
		"profileList": [{"code": "Authorities"}],
		"useCaseProfileMap": {"a/b": "10000000-00000000-00000000-00000000"}
	}`)))

	assert.NoError(t, v.ValidateMetamodel([]byte(`{
		"schemaVersion": 2,
		"roleGroupProfileList": [{"code": "Authorities"}],
		"useCaseProfileMap": {"a/b": {"roleGroupProfileMaskList": ["10000000-00000000-00000000-00000000"], "roleProfileMaskList": null}}
	}`)))

	err := v.ValidateMetamodel([]byte(`{"useCaseProfileMap": {"a/b": "1010"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/useCaseProfileMap/a~1b")

	err = v.ValidateMetamodel([]byte(`{"profileList": [{"name": "x"}]}`))
	assert.Error(t, err)

	err = v.ValidateMetamodel([]byte(`not json`))
	assert.Error(t, err)
}

func Test_SchemaValidator_CachesCompiledSchemas(t *testing.T) {
	t.Parallel()

	v := NewSchemaValidator()
	require.NoError(t, v.ValidateMetamodel([]byte(`{}`)))
	require.NoError(t, v.ValidateMetamodel([]byte(`{}`)))
	assert.Len(t, v.compiled, 1)
}

func Test_ValidateDefinition_ReadableLocations(t *testing.T) {
	t.Parallel()

	err := NewSchemaValidator().ValidateDefinition([]byte(`{"*": {"useCaseMap": {}, "profileList": [1]}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/*/profileList/0: ")
	assert.NotContains(t, err.Error(), "%2A")
}

func Test_ReadableLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/%2A/profileList/0", want: "/*/profileList/0"},
		{in: "/%2A/useCaseMap/item~1get", want: "/*/useCaseMap/item~1get"},
		{in: "/bad%zz", want: "/bad%zz"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, readableLocation(tt.in))
		})
	}
}

func Test_DecodeInstance(t *testing.T) {
	t.Parallel()

	doc, err := decodeInstance([]byte(`{"n": 12345678901234567890}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567890"), doc.(map[string]any)["n"])

	_, err = decodeInstance([]byte(`{"a": 1} {"b": 2}`))
	assert.Error(t, err)

	_, err = decodeInstance([]byte(`{"a":`))
	assert.Error(t, err)
}

func FuzzValidateDefinition(f *testing.F) {
	f.Add([]byte(`{"*": {"useCaseMap": {"a": ["b"]}, "profileList": ["b"]}}`))
	f.Add([]byte(`{"*": null}`))
	f.Add([]byte(`[]`))

	v := NewSchemaValidator()
	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("ValidateDefinition panicked: %v", r)
			}
		}()
		_ = v.ValidateDefinition(data)
	})
}
