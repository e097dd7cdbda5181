package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/houdini-package/internal/domain/houdini"
	"github.com/oshokin/houdini-package/internal/service/packager"
)

func newCreateCommand(root *rootOptions) *cobra.Command {
	var folder string

	createCmd := &cobra.Command{
		Use:   "create [reference]",
		Short: "Copy the local installation into a package folder",
		Long: "Copy the local installation into a package folder and write its manifest.\n\n" +
			"The reference is houdini/<version>@<user>/<channel>, houdini/<version> or a bare version.",
		Example: "  houdini-packager create houdini/18.5.408@sidefx/stable -s os=Linux\n" +
			"  houdini-packager create 18.5 -e HOUDINI_INSTALL=/opt/hfs18.5.408 -p ./pkg",
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

			progress, stop := newProgress(cmd.ErrOrStderr())
			defer stop()

			options := &packager.Options{
				Reference:     ref,
				Settings:      settings,
				Env:           env,
				PackageFolder: packageFolder(folder, cfg, ref),
				Progress:      progress,
			}

			if _, err = packager.Run(cmd.Context(), options); err != nil {
				return err
			}

			stop()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), options.PackageFolder)

			return err
		},
	}

	createCmd.Flags().StringVarP(&folder, "package-folder", "p", "", "destination folder (default <packages_dir>/houdini-<version>)")

	return createCmd
}
