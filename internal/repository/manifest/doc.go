// Package manifest persists the package manifest.
//
// The FileRepository stores the manifest as YAML at the root of a package
// folder and exposes a Repository interface the packager service depends on.
package manifest
