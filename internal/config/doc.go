// Package config defines the packager settings file and helpers to load,
// validate and save it in YAML format.
//
// The file supplies defaults (target settings, packages directory, environment
// overrides, log level); command-line flags take precedence over it.
package config
