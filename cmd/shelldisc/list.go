package main

import (
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered WSL shells",
		Long: `List every WSL shell available to the current user.

On hosts without a default distribution, or on Windows builds older than
17763, only the legacy bash.exe launcher is reported, and only if it exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(output, formatTable, formatJSON, formatYAML); err != nil {
				return err
			}
			shells, err := a.discover(cmd.Context())
			if err != nil {
				return err
			}
			return renderShells(a.stdout, output, shells)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json or yaml")

	return cmd
}
