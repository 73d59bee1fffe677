package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/metamodelgen/internal/version"
)

func TestWriteVersion(t *testing.T) {
	t.Parallel()

	info := version.Info{
		Version:   "1.4.0",
		Commit:    "abc123",
		BuildDate: "2026-01-02",
		GoVersion: "go1.25.5",
		Platform:  "linux/amd64",
	}

	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, out []byte)
	}{
		{
			name:   "text",
			format: "text",
			check: func(t *testing.T, out []byte) {
				assert.Equal(t, "metamodelgen version 1.4.0 (commit abc123, built 2026-01-02, go1.25.5 linux/amd64)\n", string(out))
			},
		},
		{
			name:   "json",
			format: "json",
			check: func(t *testing.T, out []byte) {
				var got version.Info
				require.NoError(t, json.Unmarshal(out, &got))
				assert.Equal(t, info, got)
				assert.Contains(t, string(out), `"buildDate": "2026-01-02"`)
			},
		},
		{
			name:   "yaml",
			format: "yaml",
			check: func(t *testing.T, out []byte) {
				var got version.Info
				require.NoError(t, yaml.Unmarshal(out, &got))
				assert.Equal(t, info, got)
				assert.Contains(t, string(out), "goVersion: go1.25.5")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, writeVersion(&buf, tt.format, info))
			tt.check(t, buf.Bytes())
		})
	}
}

func TestWriteVersion_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := writeVersion(&buf, "xml", version.Info{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format: xml")
	assert.Empty(t, buf.String())
}
