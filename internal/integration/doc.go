// Package integration holds end-to-end tests that drive winpack services against real files.
package integration
