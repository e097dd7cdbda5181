// Package packager turns a local Houdini installation into a dependency package.
//
// Run executes three steps in order: build (nothing to do, Houdini ships
// pre-built), package (resolve the install directory and mirror it into the
// package folder) and package_info (publish the link descriptor in the
// package manifest). Any failure ends the run.
package packager
