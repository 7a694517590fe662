// Package packaging contains the configuration documents consumed by the
// manifest generator.
//
// AppConfig is the application-level document (base plus platform override),
// Config is the packaging document with capabilities, extensions and signing,
// and Merged is the resolved view that renderers work from.
package packaging
