// Package houdini holds the domain types of a Houdini dependency package:
// the recipe identity, the package Reference, the build Settings recorded for
// artifact identification, and the static link Descriptor consumers use.
package houdini
