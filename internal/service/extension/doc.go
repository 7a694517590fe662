// Package extension manages the extensions section of the packaging document:
// listing declared integrations, adding entries and removing whole kinds.
// Edits are applied as JSON Merge Patches so unrelated keys are preserved.
package extension
