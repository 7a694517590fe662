// Package packager implements the winpack build workflow.
//
// It resolves the configuration documents once, renders and writes one
// AppxManifest.xml per target architecture in parallel, and optionally hands
// each resulting WorkItem to a Packer that drives the external toolchain
// (makepri, makeappx, signtool).
package packager
