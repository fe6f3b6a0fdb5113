package shell

// mode is the discovery strategy chosen for a host.
type mode int

const (
	// modeLegacyFallback probes bash.exe and reports at most that one shell
	modeLegacyFallback mode = iota
	// modeFullEnumeration reports the default distribution followed by every registered one
	modeFullEnumeration
)

func (m mode) String() string {
	switch m {
	case modeLegacyFallback:
		return "legacy-fallback"
	case modeFullEnumeration:
		return "full-enumeration"
	default:
		return "unknown"
	}
}

// decide picks the discovery mode. Without a default distribution marker, or
// on a build whose wsl.exe cannot select a distribution, only the legacy
// bash.exe launcher is trusted.
func decide(markerPresent, modernBuild bool) mode {
	if !markerPresent || !modernBuild {
		return modeLegacyFallback
	}
	return modeFullEnumeration
}
