package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/winpack/internal/manifest"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

// TestLoadAndResolve reads JSONC documents with comments and trailing commas.
func TestLoadAndResolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	paths := Paths{
		AppConfig: writeFile(t, dir, "app.json", `{
			// base document
			"productName": "Test App",
			"version": "1.0.0",
			"identifier": "com.example.testapp",
		}`),
		AppConfigOverride: writeFile(t, dir, "app.windows.json", `{"version": "1.2"}`),
		PackagingConfig: writeFile(t, dir, "packaging.json", `{
			"publisher": "CN=TestCompany",
			"capabilities": {"general": ["internetClient"]},
			"extensions": {"startupTask": true},
		}`),
	}

	merged, err := LoadAndResolve(paths)
	require.NoError(t, err)
	require.Equal(t, "Test App", merged.DisplayName)
	require.Equal(t, "1.2.0.0", merged.Version)
	require.True(t, merged.Extensions.StartupTask.Declared)
}

// TestLoadAndResolve_MissingOverride treats an absent override as empty.
func TestLoadAndResolve_MissingOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	merged, err := LoadAndResolve(Paths{
		AppConfig:         writeFile(t, dir, "app.json", `{"productName": "Solo"}`),
		AppConfigOverride: filepath.Join(dir, "missing.json"),
		PackagingConfig:   writeFile(t, dir, "packaging.json", `{"publisher": "CN=X"}`),
	})
	require.NoError(t, err)
	require.Equal(t, "Solo", merged.DisplayName)
}

// TestLoadPackagingConfig_Errors distinguishes missing and malformed documents.
func TestLoadPackagingConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := filepath.Join(dir, "packaging.json")

	_, err := LoadPackagingConfig(missing)
	require.True(t, IsKind(err, KindMissingInput))
	require.Contains(t, err.Error(), missing)

	_, err = LoadPackagingConfig(writeFile(t, dir, "bad.json", `{"publisher": `))
	require.True(t, IsKind(err, KindMalformedDocument))
	require.Contains(t, err.Error(), DocumentPackagingConfig)
}

// TestLoadAppDocument_NotObject rejects arrays at the top level.
func TestLoadAppDocument_NotObject(t *testing.T) {
	t.Parallel()

	_, err := LoadAppDocument(writeFile(t, t.TempDir(), "app.json", `[1, 2]`))
	require.True(t, IsKind(err, KindMalformedDocument))
	require.ErrorIs(t, err, errNotAnObject)
}

// TestLoadTemplate falls back to the built-in template and reports missing files.
func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	template, err := LoadTemplate("")
	require.NoError(t, err)
	require.Equal(t, manifest.DefaultTemplate, template)

	dir := t.TempDir()

	template, err = LoadTemplate(writeFile(t, dir, "tpl.xml", "{{IDENTIFIER}}"))
	require.NoError(t, err)
	require.Equal(t, "{{IDENTIFIER}}", template)

	_, err = LoadTemplate(filepath.Join(dir, "nope.xml"))
	require.True(t, IsKind(err, KindMissingInput))
}
