package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/houdini-package/internal/config"
)

var errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

func newInitCommand(root *rootOptions) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration describing this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(root.configPath); err == nil {
					return fmt.Errorf("%s: %w", root.configPath, errConfigExists)
				}
			}

			cfg := config.Default()

			settings, err := cfg.Settings.Apply(root.settings)
			if err != nil {
				return err
			}

			cfg.Settings = settings

			if err = config.Save(root.configPath, cfg); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), root.configPath)

			return err
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")

	return initCmd
}
