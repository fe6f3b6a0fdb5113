package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one discovered shell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(output, formatJSON, formatYAML); err != nil {
				return err
			}
			shells, err := a.discover(cmd.Context())
			if err != nil {
				return err
			}
			for _, d := range shells {
				if d.ID == args[0] {
					return renderValue(a.stdout, output, d)
				}
			}
			return fmt.Errorf("shell %q not found", args[0])
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", formatYAML, "output format: json or yaml")

	return cmd
}
