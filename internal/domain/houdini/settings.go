package houdini

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/oshokin/houdini-package/internal/platform"
)

// Setting keys accepted by Settings.Apply.
const (
	SettingOS              = "os"
	SettingCompiler        = "compiler"
	SettingCompilerVersion = "compiler.version"
	SettingArch            = "arch"
)

// ErrInvalidSetting is returned for malformed or unknown settings.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings identify the binary flavour of a package.
// Only OS changes how the package is produced; the rest is recorded for consumers.
type Settings struct {
	OS              platform.OS `yaml:"os,omitempty"`
	Compiler        string      `yaml:"compiler,omitempty"`
	CompilerVersion string      `yaml:"compiler_version,omitempty"`
	Arch            string      `yaml:"arch,omitempty"`
}

// HostSettings returns settings describing this machine. OS is left zero
// when the host is not a supported target.
func HostSettings() Settings {
	s := Settings{Arch: hostArch()}

	if o, err := platform.Host(); err == nil {
		s.OS = o
	}

	return s
}

// hostArch maps GOARCH to the architecture names used in settings.
func hostArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	case "arm64":
		return "armv8"
	case "arm":
		return "armv7"
	default:
		return runtime.GOARCH
	}
}

// Apply returns s with KEY=VALUE assignments applied in order.
func (s Settings) Apply(assignments []string) (Settings, error) {
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if !ok || key == "" || value == "" {
			return s, fmt.Errorf("%q: KEY=VALUE expected: %w", a, ErrInvalidSetting)
		}

		switch key {
		case SettingOS:
			o, err := platform.Parse(value)
			if err != nil {
				return s, err
			}

			s.OS = o
		case SettingCompiler:
			s.Compiler = value
		case SettingCompilerVersion:
			s.CompilerVersion = value
		case SettingArch:
			s.Arch = value
		default:
			return s, fmt.Errorf("%q: unknown setting: %w", key, ErrInvalidSetting)
		}
	}

	return s, nil
}

// Merge fills the empty fields of s from defaults.
func (s Settings) Merge(defaults Settings) Settings {
	if s.OS == 0 {
		s.OS = defaults.OS
	}

	if s.Compiler == "" {
		s.Compiler = defaults.Compiler
	}

	if s.CompilerVersion == "" {
		s.CompilerVersion = defaults.CompilerVersion
	}

	if s.Arch == "" {
		s.Arch = defaults.Arch
	}

	return s
}

// Validate checks that the target OS is supported.
func (s Settings) Validate() error {
	if !s.OS.Valid() {
		return fmt.Errorf("settings os %s: %w", s.OS, platform.ErrUnsupportedPlatform)
	}

	return nil
}
