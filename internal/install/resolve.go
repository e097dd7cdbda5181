package install

import (
	"errors"

	"github.com/oshokin/houdini-package/internal/platform"
)

// OverrideVariable names the variable that replaces the default install path on every OS.
const OverrideVariable = "HOUDINI_INSTALL"

// ErrInvalidAssignment is returned for environment assignments not in KEY=VALUE form.
var ErrInvalidAssignment = errors.New("invalid environment assignment")

// Resolve returns the install directory of Houdini version for target.
//
// When env defines OverrideVariable its value is returned verbatim, even if
// empty. Otherwise the default template of target is filled with version.
// A target outside the supported set fails with platform.ErrUnsupportedPlatform.
// The returned directory is not checked for existence.
func Resolve(target platform.OS, version string, env Environment) (string, error) {
	profile, err := platform.ProfileFor(target)
	if err != nil {
		return "", err
	}

	if env != nil {
		if override, ok := env.LookupEnv(OverrideVariable); ok {
			return override, nil
		}
	}

	return profile.InstallPath(version), nil
}
