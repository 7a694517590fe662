// Package resolver loads the application and packaging documents and reduces
// them to a single packaging.Merged value.
//
// The base and override app documents are combined with JSON Merge Patch,
// then field-specific fallbacks (display name, version, description,
// identifier, publisher) are applied and capabilities are validated. Every
// failure is a *ConfigurationError so callers can tell a missing file from a
// syntax error, a missing publisher or bad capability tokens.
package resolver
