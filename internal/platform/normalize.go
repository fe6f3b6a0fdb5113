package platform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// buildPattern matches the "Build 19045" suffix gopsutil appends on Windows.
var buildPattern = regexp.MustCompile(`(?i)\bbuild\s+(\d+)`)

// normalizeArch converts GOARCH values to normalized architecture names.
func normalizeArch(arch string) (string, error) {
	switch arch {
	case "amd64", "x86_64":
		return "amd64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	case "386", "i386", "i686":
		return "386", nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s", arch)
	}
}

// normalizeOS lowercases and trims an OS identifier.
func normalizeOS(os string) string {
	return strings.ToLower(strings.TrimSpace(os))
}

// parseWindowsBuild extracts the build number from a Windows version string.
// It understands both "10.0.19045.4291 Build 19045.4291" and "10.0.19045".
// Returns 0 when no build can be found.
func parseWindowsBuild(version string) int {
	version = strings.TrimSpace(version)
	if version == "" {
		return 0
	}

	if m := buildPattern.FindStringSubmatch(version); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	// Fall back to the third dotted component: major.minor.build[.ubr]
	fields := strings.Fields(version)
	parts := strings.Split(fields[0], ".")
	if len(parts) < 3 {
		return 0
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Override returns a copy of info with the non-zero fields of os and build applied.
// It lets the CLI and config simulate another host.
func Override(info *Info, os string, build int) *Info {
	out := *info
	if os = normalizeOS(os); os != "" {
		out.OS = os
	}
	if build > 0 {
		out.Build = build
	}
	return &out
}
