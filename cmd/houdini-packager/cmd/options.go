package cmd

import (
	"path/filepath"

	"github.com/oshokin/houdini-package/internal/config"
	"github.com/oshokin/houdini-package/internal/domain/houdini"
	"github.com/oshokin/houdini-package/internal/install"
)

// packageSettings layers --settings over the config file and the host defaults.
func (o *rootOptions) packageSettings(cfg *config.Config) (houdini.Settings, error) {
	settings, err := cfg.Settings.Apply(o.settings)
	if err != nil {
		return houdini.Settings{}, err
	}

	settings = settings.Merge(houdini.HostSettings())

	if err = settings.Validate(); err != nil {
		return houdini.Settings{}, err
	}

	return settings, nil
}

// environment layers the config env, the process environment and --env, last wins.
func (o *rootOptions) environment(cfg *config.Config) (install.Environment, error) {
	overrides, err := install.ParseAssignments(o.env)
	if err != nil {
		return nil, err
	}

	return install.Layered{
		install.MapEnvironment(cfg.Env),
		install.ProcessEnvironment{},
		overrides,
	}, nil
}

// packageFolder returns folder if set, otherwise <packages_dir>/<name>-<version>.
func packageFolder(folder string, cfg *config.Config, ref houdini.Reference) string {
	if folder != "" {
		return folder
	}

	dir := cfg.PackagesDir
	if dir == "" {
		dir = "."
	}

	return filepath.Join(dir, ref.FolderName())
}
