// Package shell discovers launchable shells for a terminal host.
//
// A Provider reports the shells of one kind as a list of Descriptors. The
// WSLProvider discovers Windows Subsystem for Linux shells, reconciling the
// legacy bash.exe launcher with the per-distribution wsl.exe launcher.
//
// # WSL Discovery
//
// WSL registers distributions under HKCU\Software\Microsoft\Windows\CurrentVersion\Lxss:
//
//	Lxss
//	    DefaultDistribution = {guid-1}
//	    {guid-1}
//	        DistributionName = Ubuntu
//	        BasePath         = C:\Users\me\AppData\Local\Packages\...\LocalState
//	    {guid-2}
//	        DistributionName = Debian
//
// Discovery runs in one of two modes:
//  1. Legacy fallback: no DefaultDistribution is registered, or the OS build
//     predates `wsl.exe -d`. Only %windir%\system32\bash.exe is reported, if it
//     exists.
//  2. Full enumeration: a "WSL / Default distro" entry followed by one entry per
//     registered distribution, each launching `wsl.exe -d <name>`.
//
// Subkeys without a DistributionName are skipped. Nothing is cached: each
// Provide call reads the registry again.
//
// # Identity
//
// Enumerated distributions get the id "wsl-" plus a slug of their name. The
// slug is lossy, so distributions whose names differ only in case or
// punctuation share an id. The default and legacy entries both use "wsl";
// they never appear in the same result.
//
// # Example Usage
//
//	p := shell.NewWSLProvider(shell.WSLOptions{
//	    Platform:   info.OS,
//	    Store:      store, // nil if the registry is unavailable
//	    Builds:     info,
//	    Files:      fsprobe.NewOSProber(),
//	    Icons:      icons.NewCatalog(),
//	    SystemRoot: os.Getenv("windir"),
//	})
//	shells, err := p.Provide(ctx)
package shell
