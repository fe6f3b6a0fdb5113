package shell

import (
	"context"
	"fmt"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/icons"
)

// Provider discovers shells of one kind.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Provide returns the shells available on this host. Finding nothing is
	// not an error: the result is simply empty.
	Provide(ctx context.Context) ([]Descriptor, error)
}

// BuildGate reports whether the host OS build is at least a threshold.
// *platform.Info satisfies it.
type BuildGate interface {
	BuildAtLeast(build int) bool
}

// IconLookup resolves an icon by distribution name. It returns nil when no
// icon is mapped. *icons.Catalog satisfies it.
type IconLookup interface {
	Lookup(name string) *icons.Icon
}

// Collect runs providers in order and concatenates their results.
// An id reported by more than one provider is logged and the later
// descriptor is dropped; the first provider error aborts collection.
func Collect(ctx context.Context, logger Logger, providers ...Provider) ([]Descriptor, error) {
	if logger == nil {
		logger = noopLogger{}
	}

	var out []Descriptor
	seen := make(map[string]string)
	for _, p := range providers {
		found, err := p.Provide(ctx)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", p.Name(), err)
		}
		logger.Debug("provider finished", "provider", p.Name(), "shells", len(found))

		for _, d := range found {
			if owner, dup := seen[d.ID]; dup {
				logger.Warn("duplicate shell id", "id", d.ID, "provider", p.Name(), "first", owner)
				continue
			}
			seen[d.ID] = p.Name()
			out = append(out, d)
		}
	}
	return out, nil
}
