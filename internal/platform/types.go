// Package platform identifies the host operating system for shelldisc.
//
// It detects OS, architecture, and on Windows the OS build number, which gates
// features such as selecting a WSL distribution with `wsl.exe -d`. The package
// uses gopsutil for version detection and falls back to build 0 (a legacy host)
// when the build cannot be determined. The detected info is also exposed as a
// read-only table to Lua configurations.
package platform

import "context"

// Operating system identifiers, as reported by runtime.GOOS.
const (
	OSWindows = "windows"
	OSLinux   = "linux"
	OSDarwin  = "darwin"
)

// Windows build thresholds.
const (
	// BuildWSLExeDistroFlag is the first build whose wsl.exe accepts `-d <distro>`.
	BuildWSLExeDistroFlag = 17763
)

// Info contains platform detection information.
type Info struct {
	OS      string // "linux", "darwin", "windows"
	Arch    string // "amd64", "arm64", "386" (normalized)
	ArchRaw string // original GOARCH
	Version string // raw OS version string (e.g., "10.0.19045.4291 Build 19045.4291")
	Build   int    // Windows build number, 0 when unknown or non-Windows
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == OSLinux
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == OSDarwin
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == OSWindows
}

// IsAMD64 returns true if the architecture is amd64.
func (i *Info) IsAMD64() bool {
	return i.Arch == "amd64"
}

// IsARM64 returns true if the architecture is arm64.
func (i *Info) IsARM64() bool {
	return i.Arch == "arm64"
}

// BuildAtLeast reports whether the host OS build is at least build.
// An unknown build (0) is older than every threshold.
func (i *Info) BuildAtLeast(build int) bool {
	return i.Build > 0 && i.Build >= build
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
