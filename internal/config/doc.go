// Package config defines the winpack settings file and provides helpers to
// load, validate and save it in YAML format.
//
// Settings name the input documents, the output directory, target
// architectures and packaging tools. Every key can be overridden through a
// WINPACK_ environment variable (WINPACK_OUTPUT_DIR, WINPACK_ARCHITECTURES...).
package config
