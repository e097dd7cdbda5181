package platform

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
)

// OS is one of the operating systems a package can target.
// The zero value is not a valid target.
type OS uint8

// Supported operating systems.
const (
	Windows OS = iota + 1
	Linux
	MacOS

	// osCount bounds the profile table; keep it last.
	osCount
)

// VersionPlaceholder is replaced by the requested version in install templates.
const VersionPlaceholder = "{version}"

// ErrUnsupportedPlatform is returned for any operating system outside Windows, Linux and macOS.
var ErrUnsupportedPlatform = errors.New("platform not supported")

// CopyOptions controls how the install tree of one OS is mirrored into a package.
type CopyOptions struct {
	// PreserveSymlinks recreates links instead of copying what they point to.
	PreserveSymlinks bool
	// Excludes are gitignore-style patterns relative to the install root.
	Excludes []string
}

// Profile pairs the default install location of an OS with its copy options.
type Profile struct {
	// InstallTemplate is the default install directory with VersionPlaceholder in it.
	InstallTemplate string
	// Copy is applied when mirroring the install tree.
	Copy CopyOptions
}

// profiles is indexed by OS. A new OS constant grows the array,
// and TestProfilesCoverEveryOS fails until its entry is filled in.
//
//nolint:gochecknoglobals // Static table.
var profiles = [osCount]Profile{
	Windows: {
		InstallTemplate: `C:\Program Files\Side Effects Software\Houdini ` + VersionPlaceholder,
	},
	Linux: {
		InstallTemplate: "/opt/hfs" + VersionPlaceholder,
		Copy: CopyOptions{
			PreserveSymlinks: true,
			// Some files under python/ are installed readable by root only.
			Excludes: []string{"python/*"},
		},
	},
	MacOS: {
		InstallTemplate: "/Applications/Houdini/Houdini" + VersionPlaceholder,
		Copy: CopyOptions{
			// TODO: exclude parts of the bundle consumers never link against (docs, samples).
			PreserveSymlinks: true,
		},
	},
}

// All returns every supported OS.
func All() []OS {
	return []OS{Windows, Linux, MacOS}
}

// Valid reports whether o is a supported OS.
func (o OS) Valid() bool {
	return o > 0 && o < osCount
}

// String returns the settings name of o ("Windows", "Linux", "Macos").
func (o OS) String() string {
	switch o {
	case Windows:
		return "Windows"
	case Linux:
		return "Linux"
	case MacOS:
		return "Macos"
	default:
		return fmt.Sprintf("OS(%d)", uint8(o))
	}
}

// MarshalText encodes o by its settings name; the zero value encodes as empty.
func (o OS) MarshalText() ([]byte, error) {
	if o == 0 {
		return []byte{}, nil
	}

	if !o.Valid() {
		return nil, fmt.Errorf("%s: %w", o, ErrUnsupportedPlatform)
	}

	return []byte(o.String()), nil
}

// UnmarshalText decodes any name accepted by Parse; empty text yields the zero value.
func (o *OS) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*o = 0
		return nil
	}

	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*o = parsed

	return nil
}

// Parse maps a settings or GOOS name to an OS. Matching is case-insensitive.
func Parse(name string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows", "win32", "win64":
		return Windows, nil
	case "linux":
		return Linux, nil
	case "macos", "darwin", "osx", "mac":
		return MacOS, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnsupportedPlatform)
	}
}

// Host returns the OS this process runs on.
func Host() (OS, error) {
	return Parse(runtime.GOOS)
}

// ProfileFor returns the profile of o. The returned options are a copy.
func ProfileFor(o OS) (Profile, error) {
	if !o.Valid() {
		return Profile{}, fmt.Errorf("%s: %w", o, ErrUnsupportedPlatform)
	}

	p := profiles[o]
	p.Copy.Excludes = slices.Clone(p.Copy.Excludes)

	return p, nil
}

// InstallPath fills the install template of p with version.
func (p Profile) InstallPath(version string) string {
	return strings.ReplaceAll(p.InstallTemplate, VersionPlaceholder, version)
}
