// Package install locates an existing Houdini installation.
//
// Resolve takes the environment as an explicit input instead of reading the
// process environment, so callers (and tests) decide which overrides apply.
package install
