// Package config loads shelldisc settings and registry snapshots from Lua files.
//
// Both file kinds run in a sandboxed gopher-lua VM: os, io, debug and the
// module loaders are unavailable, so a file can only build tables. The
// detected platform is injected as a read-only `platform` table first, which
// lets one config serve several hosts:
//
//	shelldisc = {
//	    system_root = platform.when(platform.is_windows, [[D:\Windows]]),
//	    env = { LANG = "C.UTF-8" },
//	    log_level = "debug",
//	}
//
// # Registry Snapshots
//
// A snapshot replays the WSL registry hive on any host. Entries are listed in
// enumeration order:
//
//	registry = {
//	    { path = [[Software\Microsoft\Windows\CurrentVersion\Lxss]],
//	      values = { DefaultDistribution = "{a}" } },
//	    { path = [[Software\Microsoft\Windows\CurrentVersion\Lxss\{a}]],
//	      values = { DistributionName = "Ubuntu", BasePath = [[C:\wsl\ubuntu]] } },
//	}
//
// GenerateSnapshot writes the same format from a live Store, so a user can
// capture their registry once and reproduce discovery elsewhere.
package config
