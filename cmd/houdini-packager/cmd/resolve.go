package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/houdini-package/internal/domain/houdini"
	"github.com/oshokin/houdini-package/internal/install"
)

func newResolveCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [reference]",
		Short: "Print the installation path that create would copy",
		Long: "Print the installation path that create would copy for the target OS.\n" +
			"The path is not checked for existence.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := houdini.ParseReference(args[0])
			if err != nil {
				return err
			}

			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}

			settings, err := root.packageSettings(cfg)
			if err != nil {
				return err
			}

			env, err := root.environment(cfg)
			if err != nil {
				return err
			}

			path, err := install.Resolve(settings.OS, ref.Version, env)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)

			return err
		},
	}
}
