package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/config"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/shell"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture the WSL registry key as a Lua snapshot",
		Long: `Write the Lxss registry key and its subkeys as a Lua snapshot. The file can
be passed to --snapshot to reproduce discovery on another host.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := a.captureSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			if outFile == "" {
				_, err = fmt.Fprint(a.stdout, code)
				return err
			}
			if err := afero.WriteFile(a.fs, outFile, []byte(code), 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			a.logger.Info("snapshot written", "path", outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "file", "f", "", "write to file instead of stdout")

	return cmd
}

func (a *app) captureSnapshot(ctx context.Context) (string, error) {
	store, err := a.store(ctx)
	if err != nil {
		return "", err
	}
	if store == nil {
		return "", errors.New("no registry available on this host")
	}
	return config.NewGenerator().GenerateSnapshot(store, shell.LxssPath)
}
