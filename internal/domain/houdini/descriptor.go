package houdini

import "slices"

// LibDir is the package-relative directory holding the link libraries.
const LibDir = "dsolib"

// linkOrder lists the libraries in the order they must appear on the link line.
//
//nolint:gochecknoglobals // Static table; PackageInfo hands out copies.
var linkOrder = []string{
	"HoudiniUI",
	"HoudiniOPZ",
	"HoudiniOP3",
	"HoudiniOP2",
	"HoudiniOP1",
	"HoudiniGEO",
	"HoudiniPRM",
	"HoudiniUT",
}

// Descriptor tells consumers where to find libraries and which to link.
type Descriptor struct {
	// LibDirs are library search directories relative to the package root.
	LibDirs []string `yaml:"libdirs"`
	// Libs are library names in link order.
	Libs []string `yaml:"libs"`
}

// PackageInfo returns the link descriptor of every Houdini package.
// It does not look at the packaged files; the same value is returned for any
// platform, version or install override.
func PackageInfo() Descriptor {
	return Descriptor{
		LibDirs: []string{LibDir},
		Libs:    linkOrder,
	}.Clone()
}

// Clone returns a deep copy of the descriptor.
func (d Descriptor) Clone() Descriptor {
	return Descriptor{
		LibDirs: slices.Clone(d.LibDirs),
		Libs:    slices.Clone(d.Libs),
	}
}
