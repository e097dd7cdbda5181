package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/houdini-package/internal/domain/houdini"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
)

func newInfoCommand() *cobra.Command {
	var format string

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Print the library directories and link libraries of the package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printInfo(cmd.OutOrStdout(), format, houdini.PackageInfo())
		},
	}

	infoCmd.Flags().StringVar(&format, "format", formatTable, "output format: table or yaml")

	return infoCmd
}

func printInfo(w io.Writer, format string, d houdini.Descriptor) error {
	switch strings.ToLower(format) {
	case formatTable:
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("libdirs: " + strings.Join(d.LibDirs, ", "))
		t.AppendHeader(table.Row{"#", "Library"})

		for i, lib := range d.Libs {
			t.AppendRow(table.Row{i + 1, lib})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()

		return nil
	case formatYAML:
		data, err := yaml.Marshal(d)
		if err != nil {
			return fmt.Errorf("marshal package info: %w", err)
		}

		_, err = w.Write(data)

		return err
	default:
		return fmt.Errorf("unknown format %q, expected %s or %s", format, formatTable, formatYAML)
	}
}
