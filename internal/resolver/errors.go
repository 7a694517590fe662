package resolver

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a ConfigurationError.
type Kind string

// Configuration error kinds.
const (
	KindMissingInput      Kind = "MISSING_INPUT"
	KindMalformedDocument Kind = "MALFORMED_DOCUMENT"
	KindMissingField      Kind = "MISSING_FIELD"
	KindInvalidCapability Kind = "INVALID_CAPABILITY"
)

// Document names used in error messages.
const (
	DocumentAppConfig         = "app config"
	DocumentAppConfigOverride = "app config override"
	DocumentPackagingConfig   = "packaging config"
	DocumentManifestTemplate  = "manifest template"
)

// ErrPublisherRequired is returned when no document provides a publisher.
//
//nolint:revive,stylecheck // User-facing message wording is fixed.
var ErrPublisherRequired = errors.New(
	`Publisher is required: set "publisher" in the packaging config or "bundle.publisher" in the app config`,
)

// errNotAnObject is the cause for documents whose top-level value is not a JSON object.
var errNotAnObject = errors.New("top-level value must be a JSON object")

// ConfigurationError describes why the inputs could not be resolved.
type ConfigurationError struct {
	// Kind classifies the failure.
	Kind Kind
	// Document names the offending input, if any.
	Document string
	// Path is the file path of the offending input, if known.
	Path string
	// Field is the missing field for KindMissingField.
	Field string
	// Violations lists every invalid capability for KindInvalidCapability.
	Violations []string
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	switch e.Kind {
	case KindMissingInput:
		return fmt.Sprintf("%s not found at %s", e.Document, e.Path)
	case KindMalformedDocument:
		if e.Path == "" {
			return fmt.Sprintf("parse %s: %v", e.Document, e.Cause)
		}

		return fmt.Sprintf("parse %s %s: %v", e.Document, e.Path, e.Cause)
	case KindInvalidCapability:
		var builder strings.Builder

		builder.WriteString("invalid capabilities:")

		for _, violation := range e.Violations {
			builder.WriteString("\n  - ")
			builder.WriteString(violation)
		}

		return builder.String()
	default:
		if e.Cause != nil {
			return e.Cause.Error()
		}

		return fmt.Sprintf("%s is required", e.Field)
	}
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is a ConfigurationError of the given kind.
func IsKind(err error, kind Kind) bool {
	var configErr *ConfigurationError

	return errors.As(err, &configErr) && configErr.Kind == kind
}
