package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults, architecture and minimum version validation.
func TestValidate(t *testing.T) {
	t.Parallel()

	settings := new(Config)
	require.NoError(t, Validate(settings))
	require.Equal(t, DefaultArchitectures, settings.Architectures)
	require.Equal(t, DefaultMinVersion, settings.MinVersion)
	require.Equal(t, DefaultPackagingConfig, settings.PackagingConfig)

	settings = &Config{Architectures: []string{" ARM64 ", "x86"}}
	require.NoError(t, Validate(settings))
	require.Equal(t, []string{"arm64", "x86"}, settings.Architectures)

	settings = &Config{Architectures: []string{"sparc"}}
	require.ErrorIs(t, Validate(settings), errUnsupportedArchitecture)

	settings = &Config{MinVersion: "10.0"}
	require.ErrorIs(t, Validate(settings), errInvalidMinVersion)

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "winpack.yaml")

	settings := &Config{
		PackagingConfig: "config/packaging.json",
		OutputDir:       "out",
		Architectures:   []string{"x64", "arm64"},
		MinVersion:      "10.0.19041.0",
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings.PackagingConfig, loaded.PackagingConfig)
	require.Equal(t, settings.OutputDir, loaded.OutputDir)
	require.Equal(t, settings.Architectures, loaded.Architectures)
	require.Equal(t, settings.MinVersion, loaded.MinVersion)
	require.Equal(t, DefaultAppConfig, loaded.AppConfig)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoad_MissingExplicitPath fails, while a missing default file yields defaults.
func TestLoad_MissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

// TestLoad_EnvOverride applies WINPACK_ variables over the file.
func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "winpack.yaml")
	require.NoError(t, Save(path, &Config{OutputDir: "from-file"}))

	t.Setenv("WINPACK_OUTPUT_DIR", "from-env")
	t.Setenv("WINPACK_ARCHITECTURES", "x86,arm64")

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", loaded.OutputDir)
	require.Equal(t, []string{"x86", "arm64"}, loaded.Architectures)
}
