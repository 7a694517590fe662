package resolver

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/oshokin/winpack/internal/capability"
	"github.com/oshokin/winpack/internal/domain/packaging"
	"github.com/oshokin/winpack/internal/merge"
)

// Defaults used when the app documents leave a field unset.
const (
	DefaultDisplayName = "App"
	DefaultVersion     = "1.0.0"
	DefaultIdentifier  = "com.example.app"
)

// Resolve merges override over base and combines the result with the packaging document.
// override may be nil. The returned value is independent of the inputs.
func Resolve(base, override map[string]any, pkg *packaging.Config) (*packaging.Merged, error) {
	app, err := decodeAppConfig(merge.Documents(base, override))
	if err != nil {
		return nil, &ConfigurationError{
			Kind:     KindMalformedDocument,
			Document: DocumentAppConfig,
			Cause:    err,
		}
	}

	if pkg == nil {
		pkg = new(packaging.Config)
	}

	displayName := firstNonEmpty(app.ProductName, DefaultDisplayName)

	publisher := firstNonEmpty(pkg.Publisher, app.BundlePublisher())
	if publisher == "" {
		return nil, &ConfigurationError{
			Kind:  KindMissingField,
			Field: "publisher",
			Cause: ErrPublisherRequired,
		}
	}

	merged := &packaging.Merged{
		DisplayName: displayName,
		Version:     NormalizeVersion(firstNonEmpty(app.Version, DefaultVersion)),
		Description: firstNonEmpty(app.ShortDescription(), displayName),
		Identifier:  firstNonEmpty(app.Identifier, DefaultIdentifier),
		Publisher:   publisher,
		// The raw publisher, distinguished-name prefix included, is the display fallback.
		PublisherDisplayName:  firstNonEmpty(pkg.PublisherDisplayName, publisher),
		CertificateThumbprint: app.CertificateThumbprint(),
		Capabilities:          pkg.Capabilities.Clone(),
		Extensions:            pkg.Extensions.Clone(),
		Signing:               pkg.Signing.Clone(),
		ResourceIndex:         pkg.ResourceIndex.Clone(),
	}

	if err = validateCapabilities(&merged.Capabilities); err != nil {
		return nil, err
	}

	return merged, nil
}

// validateCapabilities wraps every invalid token into a single exhaustive error.
// The cause keeps each *capability.InvalidTokenError reachable through errors.As.
func validateCapabilities(capabilities *packaging.Capabilities) error {
	combined := capability.Check(capabilities)
	if combined == nil {
		return nil
	}

	return &ConfigurationError{
		Kind:     KindInvalidCapability,
		Document: DocumentPackagingConfig,
		Violations: lo.Map(multierr.Errors(combined), func(err error, _ int) string {
			return err.Error()
		}),
		Cause: combined,
	}
}

// decodeAppConfig converts the merged generic document into AppConfig.
func decodeAppConfig(document map[string]any) (*packaging.AppConfig, error) {
	raw, err := json.Marshal(document)
	if err != nil {
		return nil, err
	}

	var app packaging.AppConfig
	if err = json.Unmarshal(raw, &app); err != nil {
		return nil, err
	}

	return &app, nil
}

// firstNonEmpty returns the first value that is not blank.
func firstNonEmpty(values ...string) string {
	trimmed := lo.Map(values, func(value string, _ int) string {
		return strings.TrimSpace(value)
	})

	result, _ := lo.Coalesce(trimmed...)

	return result
}
