package main

import (
	"io"
	"os"
	"strings"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/config"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/fsprobe"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/platform"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/registry"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app holds the host capabilities and global flags shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	detector  platform.Detector
	files     fsprobe.Prober
	fs        afero.Fs
	openStore func() (registry.Store, error)

	// Global flags
	configPath string
	debug      bool
	snapshot   string
	platformOS string
	build      int
	systemRoot string

	logger *log.Logger
	cfg    *config.Config
}

// newApp returns an app wired to the real host.
func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:    stdout,
		stderr:    stderr,
		getenv:    os.Getenv,
		detector:  platform.NewDetector(),
		files:     fsprobe.NewOSProber(),
		fs:        afero.NewOsFs(),
		openStore: registry.OpenCurrentUser,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "shelldisc",
		Short: "Discover WSL shells and how to launch them",
		Long: `shelldisc lists the Windows Subsystem for Linux shells installed for the
current user, with the command, arguments and environment a terminal needs
to start each one.

Discovery reads the Lxss registry key. On other hosts, or to reproduce a
user's setup, pass a registry snapshot captured with 'shelldisc snapshot'
together with --platform windows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default is $SHELLDISC_CONFIG or <user config dir>/shelldisc/shelldisc.lua)")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.StringVar(&a.snapshot, "snapshot", "", "read the registry from a Lua snapshot instead of the host")
	flags.StringVar(&a.platformOS, "platform", "", "override the detected OS (e.g. windows)")
	flags.IntVar(&a.build, "build", 0, "override the detected Windows build number")
	flags.StringVar(&a.systemRoot, "system-root", "", `Windows directory used to build launcher paths (default %windir% or C:\Windows)`)

	root.AddCommand(newListCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newPlatformCmd(a))
	root.AddCommand(newSnapshotCmd(a))
	root.AddCommand(newVersionCmd(a))

	return root
}

// setup creates the logger and loads the config file. The log level is the
// most verbose of --debug, $SHELLDISC_DEBUG and the config's log_level.
func (a *app) setup(cmd *cobra.Command) error {
	if envDebug(a.getenv(config.EnvDebug)) {
		a.debug = true
	}

	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix: "shelldisc",
		Level:  log.InfoLevel,
	})
	if a.debug {
		a.logger.SetLevel(log.DebugLevel)
	}

	parser := config.NewParser(a.detector, config.WithFs(a.fs))
	cfg, err := parser.Load(cmd.Context(), a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if !a.debug && cfg.LogLevel != "" {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		a.logger.SetLevel(level)
		a.debug = level == log.DebugLevel
	}

	a.logger.Debug("config loaded", "path", a.configPath, "snapshot", cfg.Snapshot, "system_root", cfg.SystemRoot)
	return nil
}

func envDebug(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
