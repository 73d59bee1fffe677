package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/metamodelgen/internal/application/dto"
	"github.com/reglet-dev/metamodelgen/internal/application/ports"
	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
)

func sampleInspection() *dto.InspectMetamodelResponse {
	return &dto.InspectMetamodelResponse{
		Shape:         "v2",
		SchemaVersion: "2.0.0",
		Code:          "UU-APP",
		Profiles:      []string{"Authorities", "Readers"},
		UseCases: []dto.UseCaseView{
			{Key: "UU-APP/item/get", UseCase: "item/get", Masks: []string{"01000000-00000000-00000000-00000000"}, Profiles: []string{"Readers"}},
			{Key: "UU-APP/item/noop", UseCase: "item/noop", Masks: []string{"00000000-00000000-00000000-00000000"}},
		},
		Total:       3,
		Diagnostics: dto.Diagnostics{Warnings: []string{"not rendered"}},
	}
}

func TestFormatterFactory(t *testing.T) {
	t.Parallel()

	factory := NewFormatterFactory()
	assert.Equal(t, []string{"table", "json", "yaml"}, factory.SupportedFormats())

	for _, format := range factory.SupportedFormats() {
		f, err := factory.Create(format, &bytes.Buffer{}, ports.FormatterOptions{})
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := factory.Create("sarif", &bytes.Buffer{}, ports.FormatterOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format: sarif")
}

func TestTableFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := NewTableFormatter(&buf)
	f.EnableColor = false
	require.NoError(t, f.Format(sampleInspection()))

	out := buf.String()
	assert.Contains(t, out, "Metamodel: UU-APP (schema 2.0.0, v2)")
	assert.Contains(t, out, "Profiles:  Authorities, Readers")
	assert.Contains(t, out, "item/get")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "Showing 2 of 3 use cases")
	assert.NotContains(t, out, "\033[")
}

func TestTableFormatter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	result := sampleInspection()
	result.UseCases = nil

	require.NoError(t, NewTableFormatter(&buf).Format(result))
	assert.Contains(t, buf.String(), "No use cases matched.")
}

func TestJSONFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, true).Format(sampleInspection()))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "UU-APP", decoded["code"])
	assert.Len(t, decoded["useCases"], 2)
	assert.NotContains(t, decoded, "Metadata")
	assert.NotContains(t, decoded, "Diagnostics")
}

func TestJSONFormatter_KeepsHTMLCharacters(t *testing.T) {
	t.Parallel()

	result := sampleInspection()
	result.UseCases[0].UseCase = "R&D/<list>"

	for _, indent := range []bool{true, false} {
		var buf bytes.Buffer
		require.NoError(t, NewJSONFormatter(&buf, indent).Format(result))
		assert.Contains(t, buf.String(), `"R&D/<list>"`)
		assert.NotContains(t, buf.String(), `\u0026`)
		assert.True(t, strings.HasSuffix(buf.String(), "}\n"), "indent=%v", indent)
	}
}

func TestYAMLFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf).Format(sampleInspection()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "v2", decoded["shape"])
	assert.Contains(t, buf.String(), "useCase: item/get")
}

func TestDiagnosticsWriter_ReportMismatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := NewDiagnosticsWriter(&buf).ReportMismatch(&dto.ProfileMismatch{
		Incoming:  []string{"Authorities", "Writers"},
		Persisted: []string{"Authorities", "Readers"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"Profiles are not same !!!\n"+
			"profiles.json : Authorities, Writers\n"+
			"metamodel.json: Authorities, Readers\n",
		buf.String())
}

func TestMetamodelEncoder(t *testing.T) {
	t.Parallel()

	doc, err := entities.DecodeMetamodel([]byte(`{"schemaVersion":"1.0.0","code":"A&B","profileList":[],"useCaseProfileMap":{"A&B/x":"00000000-00000000-00000000-00000000"}}`))
	require.NoError(t, err)

	data, err := NewMetamodelEncoder(0).Encode(doc)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "{\n  \"schemaVersion\": \"1.0.0\""), out)
	assert.Contains(t, out, `"code": "A&B"`, "HTML characters are not escaped")
	assert.False(t, strings.HasSuffix(out, "\n"))

	data, err = NewMetamodelEncoder(4).Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"code\"")
}

func TestMetamodelEncoder_KeepsHTMLCharactersEverywhere(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "v1",
			doc: `{"schemaVersion":"1.0.0","code":"A","name":"R&D <x>","routeMap":{"a":"/x?a=1&b=2"},
				"x-note":"<b>","profileList":[{"code":"P&Q","name":"<p>"}],"useCaseProfileMap":{}}`,
		},
		{
			name: "v2",
			doc: `{"schemaVersion":"2.0.0","code":"A","name":"R&D <x>","routeMap":{"a":"/x?a=1&b=2"},
				"defaultCategory":"a&b","x-note":"<b>","roleGroupProfileList":[{"code":"P&Q","name":"<p>"}],
				"roleProfileList":[{"code":"<r>"}],"useCaseProfileMap":{"A/x&y":{"roleGroupProfileMaskList":[],"roleProfileMaskList":["<m>"]}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := entities.DecodeMetamodel([]byte(tt.doc))
			require.NoError(t, err)
			data, err := NewMetamodelEncoder(2).Encode(doc)
			require.NoError(t, err)

			out := string(data)
			for _, escaped := range []string{`\u0026`, `\u003c`, `\u003e`} {
				assert.NotContains(t, out, escaped)
			}
			assert.Contains(t, out, `"name": "R&D <x>"`)
			assert.Contains(t, out, `"a": "/x?a=1&b=2"`)
			assert.Contains(t, out, `"x-note": "<b>"`)
			assert.Contains(t, out, `"code": "P&Q"`)
		})
	}
}
