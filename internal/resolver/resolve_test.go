package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/winpack/internal/capability"
	"github.com/oshokin/winpack/internal/domain/packaging"
)

// TestResolve_Defaults fills every fallback from an empty app document.
func TestResolve_Defaults(t *testing.T) {
	t.Parallel()

	merged, err := Resolve(map[string]any{}, nil, &packaging.Config{Publisher: "CN=X"})
	require.NoError(t, err)
	require.Equal(t, "App", merged.DisplayName)
	require.Equal(t, "1.0.0.0", merged.Version)
	require.Equal(t, "App", merged.Description)
	require.Equal(t, "com.example.app", merged.Identifier)
	require.Equal(t, "CN=X", merged.Publisher)
	require.Equal(t, "CN=X", merged.PublisherDisplayName)
}

// TestResolve_OverrideWins applies the platform override over the base document.
func TestResolve_OverrideWins(t *testing.T) {
	t.Parallel()

	base := map[string]any{
		"productName": "Base",
		"version":     "1.0",
		"identifier":  "com.example.base",
		"bundle": map[string]any{
			"shortDescription": "Base description",
			"publisher":        "CN=Base",
			"icon":             []any{"a.png", "b.png"},
		},
	}
	override := map[string]any{
		"productName": "Windows",
		"version":     "2.1.3",
		"bundle": map[string]any{
			"shortDescription": nil,
			"windows":          map[string]any{"certificateThumbprint": "ABC123"},
		},
	}

	merged, err := Resolve(base, override, &packaging.Config{})
	require.NoError(t, err)
	require.Equal(t, "Windows", merged.DisplayName)
	require.Equal(t, "2.1.3.0", merged.Version)
	require.Equal(t, "com.example.base", merged.Identifier)
	// The override deleted the description, so the display name is used.
	require.Equal(t, "Windows", merged.Description)
	require.Equal(t, "CN=Base", merged.Publisher)
	require.Equal(t, "ABC123", merged.CertificateThumbprint)

	// Inputs stay untouched.
	require.Equal(t, "Base description", base["bundle"].(map[string]any)["shortDescription"])
}

// TestResolve_PublisherChain covers each step of the publisher fallback.
func TestResolve_PublisherChain(t *testing.T) {
	t.Parallel()

	app := map[string]any{"bundle": map[string]any{"publisher": "CN=Bundle"}}

	merged, err := Resolve(app, nil, &packaging.Config{Publisher: "CN=Packaging"})
	require.NoError(t, err)
	require.Equal(t, "CN=Packaging", merged.Publisher)

	merged, err = Resolve(app, nil, &packaging.Config{})
	require.NoError(t, err)
	require.Equal(t, "CN=Bundle", merged.Publisher)
	require.Equal(t, "CN=Bundle", merged.PublisherDisplayName)

	_, err = Resolve(map[string]any{}, nil, nil)
	require.ErrorIs(t, err, ErrPublisherRequired)
	require.True(t, IsKind(err, KindMissingField))
	require.Contains(t, err.Error(), "Publisher is required")
}

// TestResolve_PublisherDisplayName prefers the packaging value over the raw publisher.
func TestResolve_PublisherDisplayName(t *testing.T) {
	t.Parallel()

	merged, err := Resolve(map[string]any{}, nil, &packaging.Config{
		Publisher:            "CN=X",
		PublisherDisplayName: "X Corp",
	})
	require.NoError(t, err)
	require.Equal(t, "X Corp", merged.PublisherDisplayName)
}

// TestResolve_CarriesPackagingFields keeps capabilities, extensions, signing and resource indexing.
func TestResolve_CarriesPackagingFields(t *testing.T) {
	t.Parallel()

	pkg := &packaging.Config{
		Publisher:     "CN=X",
		Capabilities:  &packaging.Capabilities{General: []string{"internetClient"}},
		Extensions:    &packaging.Extensions{ShareTarget: true},
		Signing:       &packaging.Signing{Certificate: "cert.pfx", Password: "secret"},
		ResourceIndex: &packaging.ResourceIndex{Enabled: true},
	}

	merged, err := Resolve(map[string]any{}, nil, pkg)
	require.NoError(t, err)
	require.Equal(t, []string{"internetClient"}, merged.Capabilities.General)
	require.True(t, merged.Extensions.ShareTarget)
	require.Equal(t, "cert.pfx", merged.Signing.Certificate)
	require.True(t, merged.ResourceIndexEnabled())
}

// TestResolve_InvalidCapabilities reports every bad token in one error.
func TestResolve_InvalidCapabilities(t *testing.T) {
	t.Parallel()

	_, err := Resolve(map[string]any{}, nil, &packaging.Config{
		Publisher: "CN=X",
		Capabilities: &packaging.Capabilities{
			General: []string{"bad1"},
			Device:  []string{"bad2"},
		},
	})
	require.Error(t, err)

	var configErr *ConfigurationError
	require.True(t, errors.As(err, &configErr))
	require.Equal(t, KindInvalidCapability, configErr.Kind)
	require.Len(t, configErr.Violations, 2)
	require.Contains(t, configErr.Violations[0], `"bad1"`)
	require.Contains(t, configErr.Violations[1], `"bad2"`)
	require.Contains(t, err.Error(), "\n  - ")

	var tokenErr *capability.InvalidTokenError
	require.ErrorAs(t, err, &tokenErr)
	require.Equal(t, capability.CategoryGeneral, tokenErr.Category)
	require.Equal(t, "bad1", tokenErr.Token)
}

// TestResolve_MalformedAppField rejects app documents with wrongly typed fields.
func TestResolve_MalformedAppField(t *testing.T) {
	t.Parallel()

	_, err := Resolve(map[string]any{"version": 3}, nil, &packaging.Config{Publisher: "CN=X"})
	require.True(t, IsKind(err, KindMalformedDocument))
}

// TestResolve_IndependentOfPackagingConfig keeps the result unchanged when the input is edited later.
func TestResolve_IndependentOfPackagingConfig(t *testing.T) {
	t.Parallel()

	enabled := true
	pkg := &packaging.Config{
		Publisher:    "CN=X",
		Capabilities: &packaging.Capabilities{General: []string{"internetClient"}},
		Extensions: &packaging.Extensions{
			FileAssociations: []packaging.FileAssociation{{Name: "text", Extensions: []string{".txt"}}},
			StartupTask:      packaging.On(packaging.StartupTask{Enabled: &enabled}),
		},
		Signing: &packaging.Signing{Certificate: "cert.pfx"},
	}

	merged, err := Resolve(map[string]any{}, nil, pkg)
	require.NoError(t, err)

	pkg.Capabilities.General[0] = "webcam"
	pkg.Extensions.FileAssociations[0].Extensions[0] = ".md"
	pkg.Extensions.FileAssociations[0].Name = "markdown"
	enabled = false
	pkg.Signing.Certificate = "other.pfx"

	require.Equal(t, []string{"internetClient"}, merged.Capabilities.General)
	require.Equal(t, "text", merged.Extensions.FileAssociations[0].Name)
	require.Equal(t, []string{".txt"}, merged.Extensions.FileAssociations[0].Extensions)
	require.True(t, *merged.Extensions.StartupTask.Value.Enabled)
	require.Equal(t, "cert.pfx", merged.Signing.Certificate)
}
