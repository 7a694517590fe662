package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/oshokin/winpack/internal/domain/packaging"
	"github.com/oshokin/winpack/internal/manifest"
)

// Paths locates the input documents on disk.
type Paths struct {
	// AppConfig is the base application document. Required.
	AppConfig string
	// AppConfigOverride is the platform override document. Optional.
	AppConfigOverride string
	// PackagingConfig is the packaging document. Required.
	PackagingConfig string
}

// LoadAndResolve reads the documents named by paths and resolves them.
func LoadAndResolve(paths Paths) (*packaging.Merged, error) {
	base, err := LoadAppDocument(paths.AppConfig)
	if err != nil {
		return nil, err
	}

	override, err := LoadOptionalAppDocument(paths.AppConfigOverride)
	if err != nil {
		return nil, err
	}

	pkg, err := LoadPackagingConfig(paths.PackagingConfig)
	if err != nil {
		return nil, err
	}

	return Resolve(base, override, pkg)
}

// LoadAppDocument reads the base app document.
func LoadAppDocument(path string) (map[string]any, error) {
	return readObject(path, DocumentAppConfig)
}

// LoadOptionalAppDocument reads the override document. A missing file or an empty path yields nil.
func LoadOptionalAppDocument(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil //nolint:nilnil // Absent override is not an error.
	}

	document, err := readObject(path, DocumentAppConfigOverride)
	if IsKind(err, KindMissingInput) {
		return nil, nil //nolint:nilnil // Absent override is not an error.
	}

	return document, err
}

// LoadPackagingConfig reads and decodes the packaging document.
func LoadPackagingConfig(path string) (*packaging.Config, error) {
	contents, err := readFile(path, DocumentPackagingConfig)
	if err != nil {
		return nil, err
	}

	var cfg packaging.Config
	if err = json.Unmarshal(jsonc.ToJSON(contents), &cfg); err != nil {
		return nil, malformed(DocumentPackagingConfig, path, err)
	}

	return &cfg, nil
}

// LoadTemplate reads the manifest template. An empty path selects the built-in template.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return manifest.DefaultTemplate, nil
	}

	contents, err := readFile(path, DocumentManifestTemplate)
	if err != nil {
		return "", err
	}

	return string(contents), nil
}

func readObject(path, document string) (map[string]any, error) {
	contents, err := readFile(path, document)
	if err != nil {
		return nil, err
	}

	var value any
	if err = json.Unmarshal(jsonc.ToJSON(contents), &value); err != nil {
		return nil, malformed(document, path, err)
	}

	object, ok := value.(map[string]any)
	if !ok {
		return nil, malformed(document, path, errNotAnObject)
	}

	return object, nil
}

func readFile(path, document string) ([]byte, error) {
	path = filepath.Clean(path)

	contents, err := os.ReadFile(path)
	if err == nil {
		return contents, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil, &ConfigurationError{
			Kind:     KindMissingInput,
			Document: document,
			Path:     path,
			Cause:    err,
		}
	}

	return nil, fmt.Errorf("read %s %s: %w", document, path, err)
}

func malformed(document, path string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Kind:     KindMalformedDocument,
		Document: document,
		Path:     path,
		Cause:    cause,
	}
}
