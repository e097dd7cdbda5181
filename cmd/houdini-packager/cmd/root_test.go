package cmd

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/houdini-package/internal/config"
	"github.com/oshokin/houdini-package/internal/domain/houdini"
	"github.com/oshokin/houdini-package/internal/install"
	"github.com/oshokin/houdini-package/internal/platform"
	"github.com/oshokin/houdini-package/internal/repository/manifest"
)

// execute runs a fresh command tree and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := newRootCommand()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())

	return out.String(), err
}

// writeConfig saves cfg to a temporary file and returns its path.
func writeConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, config.Save(path, cfg))

	return path
}

// installTree creates a fake Linux installation and returns its root.
func installTree(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "hfs18.5")

	for name, body := range map[string]string{
		"bin/houdini":            "elf",
		"dsolib/libHoudiniUT.so": "elf",
		"python/bin/python":      "elf",
	} {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}

	return root
}

// TestCreate_Linux packages an overridden install into an explicit folder.
func TestCreate_Linux(t *testing.T) {
	t.Parallel()

	source := installTree(t)
	folder := filepath.Join(t.TempDir(), "pkg")

	out, err := execute(t, "create", "houdini/18.5@sidefx/stable",
		"-c", writeConfig(t, config.Default()),
		"-s", "os=Linux", "-s", "compiler=gcc",
		"-e", install.OverrideVariable+"="+source,
		"-p", folder)
	require.NoError(t, err)
	require.Equal(t, folder+"\n", out)

	require.FileExists(t, filepath.Join(folder, "bin", "houdini"))
	require.NoFileExists(t, filepath.Join(folder, "python", "bin", "python"))

	m, err := manifest.NewFileRepository(folder).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, platform.Linux, m.Settings.OS)
	require.Equal(t, "gcc", m.Settings.Compiler)
	require.Equal(t, source, m.Source)
	require.Equal(t, houdini.PackageInfo(), m.Descriptor)
}

// TestCreate_DefaultFolder places the package below packages_dir.
func TestCreate_DefaultFolder(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.PackagesDir = t.TempDir()
	cfg.Settings.OS = platform.Linux
	cfg.Env = map[string]string{"UNRELATED": "1"}

	out, err := execute(t, "create", "18.5",
		"-c", writeConfig(t, cfg),
		"-e", install.OverrideVariable+"="+installTree(t))
	require.NoError(t, err)

	folder := filepath.Join(cfg.PackagesDir, "houdini-18.5")
	require.Equal(t, folder+"\n", out)
	require.FileExists(t, filepath.Join(folder, manifest.Filename))
}

// TestCreate_Errors covers failures reported before anything is copied.
func TestCreate_Errors(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, config.Default())

	_, err := execute(t, "create", "18.5", "-c", cfgPath, "-s", "os=FreeBSD")
	require.ErrorIs(t, err, platform.ErrUnsupportedPlatform)

	_, err = execute(t, "create", "18.5", "-c", cfgPath, "-s", "os=Linux", "-e", "NOVALUE")
	require.ErrorIs(t, err, install.ErrInvalidAssignment)

	_, err = execute(t, "create", "boost/1.70", "-c", cfgPath)
	require.ErrorIs(t, err, houdini.ErrInvalidReference)

	_, err = execute(t, "create", "18.5", "-c", cfgPath, "-s", "color=red")
	require.ErrorIs(t, err, houdini.ErrInvalidSetting)

	_, err = execute(t, "create", "18.5", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

// TestResolve prints the override or the per-OS template.
func TestResolve(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, config.Default())

	out, err := execute(t, "resolve", "18.5", "-c", cfgPath, "-s", "os=Windows", "-e", "HOUDINI_INSTALL=/custom")
	require.NoError(t, err)
	require.Equal(t, "/custom\n", out)

	if _, ok := os.LookupEnv(install.OverrideVariable); ok {
		t.Skip(install.OverrideVariable + " is set in the test environment")
	}

	out, err = execute(t, "resolve", "houdini/18.5.408@sidefx/stable", "-c", cfgPath, "-s", "os=Macos")
	require.NoError(t, err)
	require.Equal(t, "/Applications/Houdini/Houdini18.5.408\n", out)

	out, err = execute(t, "resolve", "18.5", "-c", cfgPath, "-s", "os=Linux")
	require.NoError(t, err)
	require.Equal(t, "/opt/hfs18.5\n", out)
}

// TestInfo renders the descriptor as a table and as YAML.
func TestInfo(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "info")
	require.NoError(t, err)
	require.Contains(t, out, "dsolib")

	last := -1

	for _, lib := range houdini.PackageInfo().Libs {
		idx := strings.Index(out, lib+" ")
		require.Greater(t, idx, last, lib)

		last = idx
	}

	out, err = execute(t, "info", "--format", "yaml")
	require.NoError(t, err)

	var d houdini.Descriptor
	require.NoError(t, yaml.Unmarshal([]byte(out), &d))
	require.Equal(t, houdini.PackageInfo(), d)

	_, err = execute(t, "info", "--format", "json")
	require.Error(t, err)
}

// TestInit writes a starter config and refuses to overwrite it without --force.
func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "packager.yaml")

	_, err := execute(t, "init", "-c", path, "-s", "os=Windows")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, platform.Windows, cfg.Settings.OS)

	_, err = execute(t, "init", "-c", path)
	require.ErrorIs(t, err, errConfigExists)

	_, err = execute(t, "init", "-c", path, "--force")
	require.NoError(t, err)
}

// TestLogLevelFlag rejects unknown levels.
func TestLogLevelFlag(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "info", "--log-level", "chatty")
	require.Error(t, err)
}

// TestPackageFolder prefers the flag, then packages_dir, then the working directory.
func TestPackageFolder(t *testing.T) {
	t.Parallel()

	ref, err := houdini.ParseReference("18.5")
	require.NoError(t, err)

	require.Equal(t, "out/pkg", packageFolder("out/pkg", config.Default(), ref))
	require.Equal(t, "houdini-18.5", packageFolder("", config.Default(), ref))
	require.Equal(t, filepath.Join("packages", "houdini-18.5"),
		packageFolder("", &config.Config{PackagesDir: "packages"}, ref))
}
