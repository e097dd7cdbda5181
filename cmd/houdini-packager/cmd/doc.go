// Package cmd wires the houdini-packager command line: create, resolve, info and init.
package cmd
