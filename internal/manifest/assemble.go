package manifest

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/oshokin/winpack/internal/capability"
	"github.com/oshokin/winpack/internal/domain/packaging"
)

// Template placeholders filled by Assemble.
const (
	PlaceholderIdentifier           = "IDENTIFIER"
	PlaceholderPublisher            = "PUBLISHER"
	PlaceholderVersion              = "VERSION"
	PlaceholderArchitecture         = "ARCHITECTURE"
	PlaceholderDisplayName          = "DISPLAY_NAME"
	PlaceholderPublisherDisplayName = "PUBLISHER_DISPLAY_NAME"
	PlaceholderMinVersion           = "MIN_VERSION"
	PlaceholderExecutable           = "EXECUTABLE"
	PlaceholderDescription          = "DESCRIPTION"
	PlaceholderCapabilities         = "CAPABILITIES"
	PlaceholderExtensions           = "EXTENSIONS"
)

// ErrUnresolvedPlaceholder means the template uses a placeholder nothing produces.
var ErrUnresolvedPlaceholder = errors.New("unresolved template placeholders")

// Assemble renders template for one processor architecture.
func Assemble(merged *packaging.Merged, architecture, minVersion, template string) (string, error) {
	extensions, err := RenderExtensions(merged)
	if err != nil {
		return "", fmt.Errorf("render extensions: %w", err)
	}

	description := lo.Ternary(merged.Description != "", merged.Description, merged.DisplayName)

	values := map[string]string{
		PlaceholderIdentifier:           escape(merged.Identifier),
		PlaceholderPublisher:            escape(merged.Publisher),
		PlaceholderVersion:              escape(merged.Version),
		PlaceholderArchitecture:         escape(architecture),
		PlaceholderDisplayName:          escape(merged.DisplayName),
		PlaceholderPublisherDisplayName: escape(merged.PublisherDisplayName),
		PlaceholderMinVersion:           escape(minVersion),
		PlaceholderExecutable:           escape(ExecutableName(merged.DisplayName)),
		PlaceholderDescription:          escape(description),
		PlaceholderCapabilities:         capability.RenderXML(&merged.Capabilities),
		PlaceholderExtensions:           extensions,
	}

	if err = checkPlaceholders("manifest template", template, values); err != nil {
		return "", err
	}

	return substitute(template, values), nil
}
