// Package version exposes build metadata of houdini-packager.
//
// Version, Commit and BuildTime are injected with -ldflags; when they are left
// at their defaults, Full falls back to the module information embedded by
// the Go toolchain.
package version
