package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeInstallation creates an installation tree with a versioned directory,
// the usual versionless link to it and a python/ subtree.
// Returns the versionless path, as found in /opt.
func fakeInstallation(t *testing.T, version string) string {
	t.Helper()

	base := t.TempDir()
	versioned := filepath.Join(base, "hfs"+version+".408")

	for name, body := range map[string]string{
		"bin/houdini":                     "#!/bin/sh\n",
		"dsolib/libHoudiniUT.so.18.5.408": "elf",
		"houdini/houdini.env":             "# env\n",
		"python/bin/python3.7":            "elf",
		"python/lib/python3.7/os.py":      "import sys\n",
		"toolkit/include/UT/UT_Array.h":   "#pragma once\n",
	} {
		p := filepath.Join(versioned, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}

	require.NoError(t, os.Chmod(filepath.Join(versioned, "bin", "houdini"), 0o755))
	require.NoError(t, os.Symlink("libHoudiniUT.so.18.5.408", filepath.Join(versioned, "dsolib", "libHoudiniUT.so")))

	link := filepath.Join(base, "hfs"+version)
	require.NoError(t, os.Symlink(versioned, link))

	return link
}
