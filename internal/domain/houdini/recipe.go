package houdini

// Recipe identity published with every package.
const (
	// Name is the package name; references must use it.
	Name = "houdini"
	// Description is the human readable summary of the packaged software.
	Description = "Houdini is a 3D animation application software developed by Side Effects Software based in Toronto."
	// URL is the vendor home page.
	URL = "https://www.sidefx.com"
	// License names the license the packaged files are distributed under.
	License = "SIDE EFFECTS SOFTWARE LICENSE AGREEMENT, https://www.sidefx.com/legal/license-agreement"

	// DefaultUser is the reference user when none is given.
	DefaultUser = "sidefx"
	// DefaultChannel is the reference channel when none is given.
	DefaultChannel = "stable"

	// ShortPaths asks consumers on Windows to unpack into a short root,
	// as install trees nest deeply enough to hit MAX_PATH.
	ShortPaths = true
)
