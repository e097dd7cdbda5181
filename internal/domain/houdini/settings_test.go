package houdini

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/houdini-package/internal/platform"
)

// TestSettingsApply parses every known key.
func TestSettingsApply(t *testing.T) {
	t.Parallel()

	s, err := Settings{}.Apply([]string{
		"os=Linux",
		"compiler=gcc",
		"compiler.version=4.8",
		"arch=x86_64",
	})
	require.NoError(t, err)
	require.Equal(t, Settings{
		OS:              platform.Linux,
		Compiler:        "gcc",
		CompilerVersion: "4.8",
		Arch:            "x86_64",
	}, s)
}

// TestSettingsApply_Errors covers malformed, unknown and unsupported values.
func TestSettingsApply_Errors(t *testing.T) {
	t.Parallel()

	_, err := Settings{}.Apply([]string{"compiler"})
	require.ErrorIs(t, err, ErrInvalidSetting)

	_, err = Settings{}.Apply([]string{"build_type=Release"})
	require.ErrorIs(t, err, ErrInvalidSetting)

	_, err = Settings{}.Apply([]string{"os=FreeBSD"})
	require.ErrorIs(t, err, platform.ErrUnsupportedPlatform)
}

// TestSettingsMerge fills only empty fields.
func TestSettingsMerge(t *testing.T) {
	t.Parallel()

	s := Settings{Compiler: "msvc"}.Merge(Settings{OS: platform.Windows, Compiler: "gcc", Arch: "x86_64"})
	require.Equal(t, Settings{OS: platform.Windows, Compiler: "msvc", Arch: "x86_64"}, s)
}

// TestSettingsValidate requires a supported OS.
func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Settings{}.Validate(), platform.ErrUnsupportedPlatform)
	require.NoError(t, Settings{OS: platform.MacOS}.Validate())
}

// TestHostSettings reports a non-empty architecture.
func TestHostSettings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, HostSettings().Arch)
}
