package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/houdini-package/internal/config"
	"github.com/oshokin/houdini-package/internal/logger"
	"github.com/oshokin/houdini-package/internal/version"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the level stored in the configuration.
	logLevel string
	// settings are KEY=VALUE package settings, e.g. os=Linux.
	settings []string
	// env are KEY=VALUE environment overrides, e.g. HOUDINI_INSTALL=/opt/hfs18.5.
	env []string

	cfg *config.Config
}

// Execute runs the houdini-packager CLI and exits with non-zero status on error.
func Execute() {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	err := newRootCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the command tree.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "houdini-packager",
		Short: "Package a local SideFX Houdini installation",
		Long: "Package a local SideFX Houdini installation as a prebuilt dependency.\n\n" +
			"The installation is located with HOUDINI_INSTALL or the default path of the target OS,\n" +
			"copied into a package folder and described by a manifest with the link libraries.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.applyLogLevelFlag(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	flags.StringArrayVarP(&opts.settings, "settings", "s", nil, "package setting KEY=VALUE (os, compiler, compiler.version, arch)")
	flags.StringArrayVarP(&opts.env, "env", "e", nil, "environment override KEY=VALUE, e.g. HOUDINI_INSTALL=/opt/hfs18.5")

	rootCmd.AddCommand(
		newCreateCommand(opts),
		newResolveCommand(opts),
		newInfoCommand(),
		newInitCommand(opts),
	)

	version.AttachCobraVersionCommand(rootCmd)

	return rootCmd
}

// applyLogLevelFlag sets the global level when --log-level was given.
func (o *rootOptions) applyLogLevelFlag(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("log-level") {
		return nil
	}

	return setLogLevel(o.logLevel)
}

// loadConfig reads the configuration once. An explicit --config must exist;
// the default file is optional.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}

	var (
		cfg *config.Config
		err error
	)

	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadOrDefault(o.configPath)
	}

	if err != nil {
		return nil, err
	}

	if !cmd.Flags().Changed("log-level") {
		if err = setLogLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}

	o.cfg = cfg

	return cfg, nil
}

func setLogLevel(s string) error {
	level, ok := logger.ParseLogLevel(s)
	if !ok {
		return fmt.Errorf("unknown log level %q", s)
	}

	logger.SetLevel(level)

	return nil
}
