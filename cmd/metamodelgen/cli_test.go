package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/metamodelgen/internal/application/dto"
)

const cliProfiles = `{
	// trailing commas and comments are accepted
	"*": {
		"profileList": ["Admins", "Managers", "Inspectors", "Readers", "Public",],
		"useCaseMap": {
			"item/get": ["Readers", "Public"],
			"item/create": ["Admins"],
		},
	},
}`

func runCLI(t *testing.T, args ...string) (string, int) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	code := Execute(context.Background())
	return out.String(), code
}

// The command tree shares package state, so the steps run in sequence.
func TestCLI_GenerateCheckInspect(t *testing.T) {
	dir := t.TempDir()
	profiles := filepath.Join(dir, "profiles.json")
	metamodel := filepath.Join(dir, "metamodel.json")
	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(profiles, []byte(cliProfiles), 0o644))
	require.NoError(t, os.WriteFile(config, []byte("mandatory_profiles: [Admins, Managers, Inspectors]\n"), 0o644))

	out, code := runCLI(t, "--config", config, "generate", "--profiles", profiles, "--metamodel", metamodel)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "✓ Metamodel written to "+metamodel)

	out, code = runCLI(t, "--config", config, "generate", "--profiles", profiles, "--metamodel", metamodel, "--check")
	assert.Equal(t, exitOutdated, code, "second run rewrites the header")
	assert.Contains(t, out, "is out of date")

	out, code = runCLI(t, "--config", config, "generate", "--profiles", profiles, "--metamodel", metamodel, "--check=false")
	require.Equal(t, 0, code, out)

	out, code = runCLI(t, "--config", config, "generate", "--profiles", profiles, "--metamodel", metamodel, "--check")
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "is up to date")

	out, code = runCLI(t, "--config", config, "inspect", metamodel, "--format", "json", "--profile", "Readers")
	require.Equal(t, 0, code, out)

	var view dto.InspectMetamodelResponse
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, []string{"Admins", "Managers", "Inspectors", "Readers"}, view.Profiles)
	require.Len(t, view.UseCases, 1)
	assert.Equal(t, "item/get", view.UseCases[0].UseCase)
	assert.Equal(t, []string{"00010000-00000000-00000000-00000000"}, view.UseCases[0].Masks)
}

func TestCLI_Version(t *testing.T) {
	out, code := runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "metamodelgen version dev")

	out, code = runCLI(t, "version", "--format", "json")
	require.Equal(t, 0, code, out)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info["version"])

	_, code = runCLI(t, "version", "--format", "text")
	assert.Equal(t, 0, code)
}
