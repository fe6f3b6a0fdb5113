// Package icons maps WSL distribution names to bundled icon assets.
package icons

import (
	"embed"
	"path"
	"slices"
)

//go:embed assets/*.svg
var assets embed.FS

// Asset keys of the bundled icons.
const (
	AssetAlpine = "alpine"
	AssetDebian = "debian"
	AssetLinux  = "linux"
	AssetSUSE   = "suse"
	AssetUbuntu = "ubuntu"
)

// distributionAssets maps distribution names, as registered by WSL, to asset keys.
// Matching is exact and case-sensitive.
var distributionAssets = map[string]string{
	"Alpine":             AssetAlpine,
	"Debian":             AssetDebian,
	"kali-linux":         AssetLinux,
	"SLES-12":            AssetSUSE,
	"openSUSE-Leap-15-1": AssetSUSE,
	"Ubuntu-18.04":       AssetUbuntu,
	"Ubuntu":             AssetUbuntu,
	"Linux":              AssetLinux,
}

// Icon is a resolved icon asset.
type Icon struct {
	// Name is the distribution name or asset key it was looked up by.
	Name string `json:"-" yaml:"-"`
	// Asset is the asset key, e.g. "ubuntu".
	Asset string `json:"asset" yaml:"asset"`
	SVG   []byte `json:"-" yaml:"-"`
}

// Catalog resolves icons from the bundled assets.
type Catalog struct{}

// NewCatalog returns a catalog over the bundled assets.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Lookup returns the icon for a distribution name, or nil if name is not in the table.
func (c *Catalog) Lookup(name string) *Icon {
	key, ok := distributionAssets[name]
	if !ok {
		return nil
	}
	icon := c.Asset(key)
	if icon != nil {
		icon.Name = name
	}
	return icon
}

// Asset returns the icon for an asset key, or nil if no such asset is bundled.
func (c *Catalog) Asset(key string) *Icon {
	data, err := assets.ReadFile(path.Join("assets", key+".svg"))
	if err != nil {
		return nil
	}
	return &Icon{Name: key, Asset: key, SVG: data}
}

// Known returns the distribution names that have an icon, sorted.
func Known() []string {
	names := make([]string, 0, len(distributionAssets))
	for name := range distributionAssets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
