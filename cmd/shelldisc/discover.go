package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/config"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/icons"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/platform"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/registry"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/shell"
)

// hostInfo detects the platform and applies config, then flag, overrides.
func (a *app) hostInfo(ctx context.Context) (*platform.Info, error) {
	info, err := a.detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}
	info = platform.Override(info, a.cfg.Platform.OS, a.cfg.Platform.Build)
	info = platform.Override(info, a.platformOS, a.build)
	return info, nil
}

// store returns the registry to discover from: a snapshot when one is
// configured, otherwise the current user's hive. A nil store means the host
// has no registry.
func (a *app) store(ctx context.Context) (registry.Store, error) {
	path := a.snapshot
	if path == "" {
		path = a.cfg.Snapshot
	}
	if path != "" {
		a.logger.Debug("using registry snapshot", "path", path)
		snap, err := config.NewParser(nil, config.WithFs(a.fs)).LoadSnapshot(ctx, path)
		if err != nil {
			return nil, err
		}
		return snap, nil
	}

	s, err := a.openStore()
	if err != nil {
		if errors.Is(err, registry.ErrUnavailable) {
			a.logger.Debug("registry unavailable on this host")
			return nil, nil
		}
		return nil, fmt.Errorf("open registry: %w", err)
	}
	return s, nil
}

// discover runs every shell provider against the host.
func (a *app) discover(ctx context.Context) ([]shell.Descriptor, error) {
	info, err := a.hostInfo(ctx)
	if err != nil {
		return nil, err
	}
	store, err := a.store(ctx)
	if err != nil {
		return nil, err
	}

	wsl := shell.NewWSLProvider(shell.WSLOptions{
		Platform:   info.OS,
		Store:      store,
		Builds:     info,
		Files:      a.files,
		Icons:      icons.NewCatalog(),
		SystemRoot: config.ResolveSystemRoot(a.systemRoot, a.cfg, a.getenv),
		Env:        a.cfg.Env,
		Logger:     a.logger,
	})
	a.logger.Debug("discovering shells", "os", info.OS, "build", info.Build)

	return shell.Collect(ctx, a.logger, wsl)
}
