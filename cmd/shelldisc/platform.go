package main

import (
	"strconv"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/platform"
	"github.com/spf13/cobra"
)

// hostReport is the printable form of platform.Info.
type hostReport struct {
	OS          string `json:"os" yaml:"os"`
	Arch        string `json:"arch" yaml:"arch"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Build       int    `json:"build" yaml:"build"`
	WSLDistroOK bool   `json:"wsl_distro_flag" yaml:"wsl_distro_flag"`
}

func newHostReport(info *platform.Info) hostReport {
	return hostReport{
		OS:          info.OS,
		Arch:        info.Arch,
		Version:     info.Version,
		Build:       info.Build,
		WSLDistroOK: info.IsWindows() && info.BuildAtLeast(platform.BuildWSLExeDistroFlag),
	}
}

func newPlatformCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "platform",
		Short: "Show the detected host platform",
		Long: `Show the host platform as discovery sees it, after --platform and --build
overrides. wsl_distro_flag reports whether wsl.exe accepts -d <distro>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(output, formatTable, formatJSON, formatYAML); err != nil {
				return err
			}
			info, err := a.hostInfo(cmd.Context())
			if err != nil {
				return err
			}
			report := newHostReport(info)
			if output != formatTable {
				return renderValue(a.stdout, output, report)
			}
			return renderKeyValues(a.stdout, map[string]string{
				"os":              report.OS,
				"arch":            report.Arch,
				"version":         report.Version,
				"build":           strconv.Itoa(report.Build),
				"wsl_distro_flag": strconv.FormatBool(report.WSLDistroOK),
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json or yaml")

	return cmd
}
