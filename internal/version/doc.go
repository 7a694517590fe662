// Package version exposes winpack build metadata.
//
// Version, Commit and BuildTime are injected with -ldflags at build time.
package version
