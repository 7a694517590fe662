// Package manifest renders the application manifest.
//
// RenderExtensions turns the declared extensions into the <Extensions> block,
// PseudoCLSID derives stable COM class identifiers, and Assemble substitutes
// every value into the manifest template for one processor architecture.
// All functions are pure: documents in, text out.
package manifest
