package shell

import (
	"context"
	"strings"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/fsprobe"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/icons"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/platform"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/registry"
)

// WSLOptions holds the host capabilities the WSL provider reads from.
type WSLOptions struct {
	// Platform is the host OS identifier (platform.OSWindows to enable discovery)
	Platform string
	// Store is the HKCU registry; nil when unavailable on this host
	Store registry.Store
	// Builds gates wsl.exe -d support; nil treats the host as a legacy build
	Builds BuildGate
	// Files probes for bash.exe; nil treats every binary as missing
	Files fsprobe.Prober
	// Icons resolves distribution icons; nil disables icons
	Icons IconLookup
	// SystemRoot is %windir% (default: C:\Windows)
	SystemRoot string
	// Env is merged into every descriptor's environment. TERM and
	// COLORTERM are always set and cannot be overridden.
	Env map[string]string
	// Logger receives debug output (default: no-op)
	Logger Logger
}

// WSLProvider discovers Windows Subsystem for Linux shells.
//
// It holds no mutable state: every Provide call reads the registry afresh
// and concurrent calls are safe.
type WSLProvider struct {
	opts WSLOptions
}

// NewWSLProvider creates a WSL provider.
func NewWSLProvider(opts WSLOptions) *WSLProvider {
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}
	if strings.TrimSpace(opts.SystemRoot) == "" {
		opts.SystemRoot = DefaultSystemRoot
	}
	return &WSLProvider{opts: opts}
}

// Name implements Provider.
func (p *WSLProvider) Name() string {
	return "wsl"
}

// binaries holds the two launcher paths derived from the system root.
type binaries struct {
	legacy string // bash.exe
	modern string // wsl.exe
}

func (p *WSLProvider) paths() binaries {
	root := strings.TrimRight(p.opts.SystemRoot, `\/`)
	return binaries{
		legacy: root + `\` + legacyBinary,
		modern: root + `\` + modernBinary,
	}
}

// Provide implements Provider.
//
// On hosts without a registered default distribution, or on builds older
// than platform.BuildWSLExeDistroFlag, the result is the bash.exe launcher if
// it exists and nothing otherwise. Otherwise the result is the default
// distribution followed by every registered distribution in registry order.
func (p *WSLProvider) Provide(ctx context.Context) ([]Descriptor, error) {
	if p.opts.Platform != platform.OSWindows {
		return nil, nil
	}

	bins := p.paths()

	lxss, err := p.readLxss()
	if err != nil {
		return nil, err
	}
	marker, markerPresent := lxss.Lookup(ValueDefaultDistribution)

	m := decide(markerPresent, p.modernBuild())
	p.opts.Logger.Debug("wsl discovery", "mode", m, "default", marker, "marker", markerPresent)

	switch m {
	case modeFullEnumeration:
		return p.enumerate(bins, marker)
	default:
		return p.legacy(ctx, bins), nil
	}
}

// readLxss returns the values of the Lxss key. A missing store or key is
// reported as no values.
func (p *WSLProvider) readLxss() (registry.Values, error) {
	if p.opts.Store == nil {
		p.opts.Logger.Debug("registry unavailable, assuming no distributions")
		return nil, nil
	}
	values, err := p.opts.Store.ReadKey(LxssPath)
	if err != nil {
		if registry.IsNotExist(err) {
			return nil, nil
		}
		return nil, &DiscoveryError{Op: "read", Path: LxssPath, Cause: err}
	}
	return values, nil
}

func (p *WSLProvider) modernBuild() bool {
	return p.opts.Builds != nil && p.opts.Builds.BuildAtLeast(platform.BuildWSLExeDistroFlag)
}

// legacy returns the bash.exe descriptor if the binary exists.
func (p *WSLProvider) legacy(ctx context.Context, bins binaries) []Descriptor {
	if p.opts.Files == nil || !p.opts.Files.Exists(ctx, bins.legacy) {
		p.opts.Logger.Debug("legacy launcher not found", "path", bins.legacy)
		return nil
	}
	return []Descriptor{{
		ID:      IDDefault,
		Name:    NameLegacy,
		Command: bins.legacy,
		Env:     p.env(),
		Icon:    p.icon(legacyIconName),
	}}
}

// enumerate returns the default distribution descriptor, when the marker
// resolves to a valid entry, followed by one descriptor per valid entry.
func (p *WSLProvider) enumerate(bins binaries, marker string) ([]Descriptor, error) {
	var out []Descriptor

	def, err := p.readEntry(marker)
	if err != nil {
		return nil, err
	}
	if def != nil {
		out = append(out, Descriptor{
			ID:      IDDefault,
			Name:    NameDefault,
			Command: bins.modern,
			Env:     p.env(),
			Icon:    p.icon(def.Name),
		})
	}

	children, err := p.opts.Store.ListSubkeys(LxssPath)
	if err != nil {
		if registry.IsNotExist(err) {
			return out, nil
		}
		return nil, &DiscoveryError{Op: "list", Path: LxssPath, Cause: err}
	}

	for _, child := range children {
		entry, err := p.readEntry(child)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			continue
		}
		out = append(out, p.distribution(bins, *entry))
	}
	return out, nil
}

// readEntry reads and validates one distribution subkey. A missing or
// invalid entry yields nil without error.
func (p *WSLProvider) readEntry(key string) (*DistributionEntry, error) {
	path := registry.Join(LxssPath, key)
	values, err := p.opts.Store.ReadKey(path)
	if err != nil {
		if registry.IsNotExist(err) {
			p.opts.Logger.Debug("distribution key missing", "key", key)
			return nil, nil
		}
		return nil, &DiscoveryError{Op: "read", Path: path, Cause: err}
	}

	entry, ok := parseDistributionEntry(key, values)
	if !ok {
		p.opts.Logger.Debug("skipping distribution without name", "key", key)
		return nil, nil
	}
	return &entry, nil
}

// parseDistributionEntry converts raw key values into a DistributionEntry.
// An entry without a non-empty DistributionName is invalid.
func parseDistributionEntry(key string, values registry.Values) (DistributionEntry, bool) {
	name, ok := values.Lookup(ValueDistributionName)
	if !ok || name == "" {
		return DistributionEntry{}, false
	}
	entry := DistributionEntry{Key: key, Name: name}
	entry.BasePath, entry.HasBasePath = values.Lookup(ValueBasePath)
	return entry, true
}

func (p *WSLProvider) distribution(bins binaries, entry DistributionEntry) Descriptor {
	d := Descriptor{
		ID:      distributionID(entry.Name),
		Name:    NamePrefix + entry.Name,
		Command: bins.modern,
		Args:    []string{"-d", entry.Name},
		Env:     p.env(),
		Icon:    p.icon(entry.Name),
	}
	if entry.HasBasePath {
		d.RootFS = entry.BasePath + RootFSSuffix
	}
	return d
}

// env builds a fresh environment for one descriptor.
func (p *WSLProvider) env() map[string]string {
	env := make(map[string]string, len(p.opts.Env)+2)
	for k, v := range p.opts.Env {
		env[k] = v
	}
	env[EnvTerm] = termValue
	env[EnvColorTerm] = colorTermValue
	return env
}

func (p *WSLProvider) icon(name string) *icons.Icon {
	if p.opts.Icons == nil {
		return nil
	}
	return p.opts.Icons.Lookup(name)
}
