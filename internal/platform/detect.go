package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect performs platform detection and returns platform information.
// It uses runtime.GOOS and runtime.GOARCH for OS and architecture,
// and gopsutil for the Windows build number.
//
// If gopsutil cannot report a version, Build stays 0 and detection
// continues. Callers treat an unknown build as a legacy host.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      runtime.GOOS,
		ArchRaw: runtime.GOARCH,
	}

	arch, err := normalizeArch(runtime.GOARCH)
	if err != nil {
		arch = runtime.GOARCH
	}
	info.Arch = arch

	if !info.IsWindows() {
		return info, nil
	}

	_, _, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil && ctx.Err() != nil {
		return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
	}
	info.Version = version
	info.Build = parseWindowsBuild(version)

	if info.Build == 0 {
		kernel, err := host.KernelVersionWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			return info, nil
		}
		if info.Version == "" {
			info.Version = kernel
		}
		info.Build = parseWindowsBuild(kernel)
	}

	return info, nil
}

// StaticDetector returns a fixed Info. It is used when the host platform is
// overridden from configuration or flags.
type StaticDetector struct {
	Info Info
}

// Detect returns a copy of the configured info.
func (d *StaticDetector) Detect(ctx context.Context) (*Info, error) {
	info := d.Info
	return &info, nil
}
