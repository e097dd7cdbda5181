package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/houdini-package/internal/domain/houdini"
	"github.com/oshokin/houdini-package/internal/platform"
)

// TestValidate checks log level, env and OS validation and defaulting.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)

	require.Error(t, Validate(&Config{LogLevel: "loud"}))
	require.Error(t, Validate(&Config{Env: map[string]string{"": "x"}}))
	require.ErrorIs(t, Validate(&Config{Settings: houdini.Settings{OS: platform.OS(42)}}), platform.ErrUnsupportedPlatform)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "houdini-packager.yaml")

	cfg := &Config{
		Settings: houdini.Settings{
			OS:              platform.Windows,
			Compiler:        "Visual Studio",
			CompilerVersion: "15",
			Arch:            "x86_64",
		},
		PackagesDir: "out",
		Env:         map[string]string{"HOUDINI_INSTALL": `D:\Houdini 18.5`},
		LogLevel:    "debug",
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

// TestLoad_ParsesOSNames accepts lower-case and GOOS style names in the file.
func TestLoad_ParsesOSNames(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings:\n  os: darwin\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, platform.MacOS, cfg.Settings.OS)
}

// TestLoadOrDefault falls back to host defaults only when the file is missing.
func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
	require.NotEmpty(t, cfg.Settings.Arch)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log_level: loud\n"), 0o644))

	_, err = LoadOrDefault(bad)
	require.Error(t, err)
}

// TestSave_Nil rejects a nil configuration.
func TestSave_Nil(t *testing.T) {
	t.Parallel()

	require.Error(t, Save(filepath.Join(t.TempDir(), "x.yaml"), nil))
}
