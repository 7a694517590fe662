// Package capability holds the closed capability vocabularies of the platform,
// validates declared tokens against them and renders the manifest
// <Capabilities> children.
package capability
