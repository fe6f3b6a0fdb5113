package shell

import (
	"fmt"
	"maps"
	"slices"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/icons"
)

// Descriptor describes one launchable shell.
type Descriptor struct {
	// ID is stable and unique within one discovery run
	ID string `json:"id" yaml:"id"`
	// Name is the human-readable label
	Name string `json:"name" yaml:"name"`
	// Command is the absolute path of the executable to launch
	Command string `json:"command" yaml:"command"`
	// Args are extra invocation arguments
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`
	// Env holds variables to set for the launched process; never empty
	Env map[string]string `json:"env" yaml:"env"`
	// RootFS is the distribution's root filesystem, if the subsystem exposes one
	RootFS string `json:"rootfs,omitempty" yaml:"rootfs,omitempty"`
	// Icon is nil when the distribution has no bundled icon
	Icon *icons.Icon `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Clone returns a deep copy of d. The icon handle is shared.
func (d Descriptor) Clone() Descriptor {
	out := d
	out.Args = slices.Clone(d.Args)
	out.Env = maps.Clone(d.Env)
	return out
}

// DistributionEntry is a validated WSL distribution registration.
type DistributionEntry struct {
	// Key is the registry subkey name (usually a GUID)
	Key string
	// Name is the DistributionName value
	Name string
	// BasePath is the install directory; only meaningful when HasBasePath is set
	BasePath    string
	HasBasePath bool
}

// DiscoveryError represents a config store failure during discovery
type DiscoveryError struct {
	Op    string
	Path  string
	Cause error
}

func (e *DiscoveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("shell discovery: %s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("shell discovery: %s %s", e.Op, e.Path)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Cause
}
