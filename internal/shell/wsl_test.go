package shell

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/icons"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/platform"
	"github.com/ZebulonRouseFrantzich/shelldisc/internal/registry"
)

const (
	testRoot   = `C:\Windows`
	testBash   = `C:\Windows\system32\bash.exe`
	testWSL    = `C:\Windows\system32\wsl.exe`
	modernHost = 19045
	legacyHost = 17134
)

// fakeProber reports a fixed set of existing paths and records every probe.
type fakeProber struct {
	mu       sync.Mutex
	existing map[string]bool
	probed   []string
}

func newFakeProber(paths ...string) *fakeProber {
	f := &fakeProber{existing: make(map[string]bool)}
	for _, p := range paths {
		f.existing[p] = true
	}
	return f
}

func (f *fakeProber) Exists(ctx context.Context, path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probed = append(f.probed, path)
	return f.existing[path]
}

// failingStore wraps a MemoryStore and fails reads of selected paths.
type failingStore struct {
	*registry.MemoryStore
	readErr map[string]error
	listErr error
	lists   int
}

func (s *failingStore) ReadKey(path string) (registry.Values, error) {
	if err, ok := s.readErr[path]; ok {
		return nil, err
	}
	return s.MemoryStore.ReadKey(path)
}

func (s *failingStore) ListSubkeys(path string) ([]string, error) {
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.MemoryStore.ListSubkeys(path)
}

// lxssStore builds a store with the given default marker ("" for none) and
// distributions, one subkey per entry in order.
func lxssStore(marker string, entries ...registry.Values) *registry.MemoryStore {
	s := registry.NewMemoryStore()
	root := registry.Values{}
	if marker != "" {
		root[ValueDefaultDistribution] = marker
	}
	s.SetKey(LxssPath, root)
	for i, e := range entries {
		s.SetKey(registry.Join(LxssPath, guid(i)), e)
	}
	return s
}

func guid(i int) string {
	return "{0000000" + string(rune('a'+i)) + "-guid}"
}

func newTestProvider(store registry.Store, build int, files *fakeProber) *WSLProvider {
	opts := WSLOptions{
		Platform:   platform.OSWindows,
		Builds:     &platform.Info{OS: platform.OSWindows, Build: build},
		Icons:      icons.NewCatalog(),
		SystemRoot: testRoot,
	}
	if store != nil {
		opts.Store = store
	}
	if files != nil {
		opts.Files = files
	}
	return NewWSLProvider(opts)
}

func ids(ds []Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}

func TestWSLProvider_NonWindowsPlatform(t *testing.T) {
	store := lxssStore(guid(0), registry.Values{ValueDistributionName: "Ubuntu"})
	files := newFakeProber(testBash)

	for _, os := range []string{platform.OSLinux, platform.OSDarwin, "freebsd", ""} {
		t.Run("os="+os, func(t *testing.T) {
			p := newTestProvider(store, modernHost, files)
			p.opts.Platform = os

			got, err := p.Provide(context.Background())
			if err != nil {
				t.Fatalf("Provide() error = %v", err)
			}
			if len(got) != 0 {
				t.Errorf("Provide() = %v, want empty", ids(got))
			}
		})
	}

	if len(files.probed) != 0 {
		t.Errorf("file probe ran on non-Windows platform: %v", files.probed)
	}
}

func TestWSLProvider_NoMarkerNoLegacyBinary(t *testing.T) {
	store := lxssStore("", registry.Values{ValueDistributionName: "Ubuntu"})

	got, err := newTestProvider(store, modernHost, newFakeProber()).Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Provide() = %v, want empty", ids(got))
	}
}

func TestWSLProvider_NoMarkerLegacyBinary(t *testing.T) {
	raw := registry.NewMemoryStore()
	raw.SetKey(LxssPath, registry.Values{})
	raw.SetKey(registry.Join(LxssPath, "{a}"), registry.Values{ValueDistributionName: "Ubuntu"})
	store := &failingStore{MemoryStore: raw}
	files := newFakeProber(testBash)

	got, err := newTestProvider(store, modernHost, files).Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}

	want := []Descriptor{{
		ID:      IDDefault,
		Name:    NameLegacy,
		Command: testBash,
		Env:     map[string]string{EnvTerm: "xterm-color", EnvColorTerm: "truecolor"},
		Icon:    icons.NewCatalog().Lookup("Linux"),
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Provide() mismatch (-want +got):\n%s", diff)
	}
	if store.lists != 0 {
		t.Errorf("full enumeration ran in legacy fallback: ListSubkeys called %d times", store.lists)
	}
	if diff := cmp.Diff([]string{testBash}, files.probed); diff != "" {
		t.Errorf("probed paths mismatch (-want +got):\n%s", diff)
	}
}

func TestWSLProvider_OldBuildDiscardsDefault(t *testing.T) {
	store := &failingStore{MemoryStore: lxssStore(guid(0),
		registry.Values{ValueDistributionName: "Ubuntu"},
		registry.Values{ValueDistributionName: "Debian"},
	)}

	tests := []struct {
		name    string
		files   *fakeProber
		wantIDs []string
	}{
		{"legacy binary present", newFakeProber(testBash), []string{IDDefault}},
		{"legacy binary missing", newFakeProber(), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestProvider(store, legacyHost, tt.files).Provide(context.Background())
			if err != nil {
				t.Fatalf("Provide() error = %v", err)
			}
			if diff := cmp.Diff(tt.wantIDs, ids(got)); diff != "" {
				t.Errorf("Provide() ids mismatch (-want +got):\n%s", diff)
			}
			for _, d := range got {
				if d.Command != testBash {
					t.Errorf("Command = %q, want %q", d.Command, testBash)
				}
				if d.Name == NameDefault {
					t.Error("default descriptor survived legacy fallback")
				}
			}
		})
	}

	if store.lists != 0 {
		t.Errorf("ListSubkeys called %d times on a legacy build", store.lists)
	}
}

func TestWSLProvider_UnknownBuildIsLegacy(t *testing.T) {
	store := lxssStore(guid(0), registry.Values{ValueDistributionName: "Ubuntu"})

	p := newTestProvider(store, 0, newFakeProber(testBash))
	got, err := p.Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}
	if diff := cmp.Diff([]string{IDDefault}, ids(got)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}

	// No build gate at all behaves the same
	p.opts.Builds = nil
	got, _ = p.Provide(context.Background())
	if len(got) != 1 || got[0].Name != NameLegacy {
		t.Errorf("Provide() without build gate = %v, want legacy only", ids(got))
	}
}

func TestWSLProvider_FullEnumeration(t *testing.T) {
	store := lxssStore(guid(1),
		registry.Values{ValueDistributionName: "Debian", ValueBasePath: `C:\distros\debian`},
		registry.Values{ValueDistributionName: "Ubuntu-18.04", ValueBasePath: `C:\distros\ubuntu`},
		registry.Values{ValueDistributionName: "CustomDistro"},
	)
	files := newFakeProber(testBash)

	got, err := newTestProvider(store, modernHost, files).Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}

	catalog := icons.NewCatalog()
	env := map[string]string{EnvTerm: "xterm-color", EnvColorTerm: "truecolor"}
	want := []Descriptor{
		{
			ID:      IDDefault,
			Name:    NameDefault,
			Command: testWSL,
			Env:     env,
			Icon:    catalog.Lookup("Ubuntu-18.04"),
		},
		{
			ID:      "wsl-debian",
			Name:    "WSL / Debian",
			Command: testWSL,
			Args:    []string{"-d", "Debian"},
			Env:     env,
			RootFS:  `C:\distros\debian\rootfs`,
			Icon:    catalog.Lookup("Debian"),
		},
		{
			ID:      "wsl-ubuntu-18-04",
			Name:    "WSL / Ubuntu-18.04",
			Command: testWSL,
			Args:    []string{"-d", "Ubuntu-18.04"},
			Env:     env,
			RootFS:  `C:\distros\ubuntu\rootfs`,
			Icon:    catalog.Lookup("Ubuntu-18.04"),
		},
		{
			ID:      "wsl-customdistro",
			Name:    "WSL / CustomDistro",
			Command: testWSL,
			Args:    []string{"-d", "CustomDistro"},
			Env:     env,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Provide() mismatch (-want +got):\n%s", diff)
	}

	if len(files.probed) != 0 {
		t.Errorf("legacy binary probed during full enumeration: %v", files.probed)
	}
}

func TestWSLProvider_IconExactMatch(t *testing.T) {
	store := lxssStore(guid(0),
		registry.Values{ValueDistributionName: "Ubuntu"},
		registry.Values{ValueDistributionName: "Ubuntu-18.04"},
		registry.Values{ValueDistributionName: "CustomDistro"},
		registry.Values{ValueDistributionName: "ubuntu-20.04"},
	)

	got, err := newTestProvider(store, modernHost, nil).Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}

	wantAssets := map[string]string{
		"wsl-ubuntu":       icons.AssetUbuntu,
		"wsl-ubuntu-18-04": icons.AssetUbuntu,
		"wsl-customdistro": "",
		"wsl-ubuntu-20-04": "",
	}
	for _, d := range got[1:] {
		want, ok := wantAssets[d.ID]
		if !ok {
			t.Errorf("unexpected descriptor %q", d.ID)
			continue
		}
		var asset string
		if d.Icon != nil {
			asset = d.Icon.Asset
		}
		if asset != want {
			t.Errorf("%s icon = %q, want %q", d.ID, asset, want)
		}
	}
}

func TestWSLProvider_SkipsInvalidEntries(t *testing.T) {
	store := lxssStore(guid(0),
		registry.Values{ValueDistributionName: "Ubuntu"},
		registry.Values{ValueBasePath: `C:\orphan`},
		registry.Values{ValueDistributionName: "Alpine"},
		registry.Values{ValueDistributionName: ""},
	)

	got, err := newTestProvider(store, modernHost, nil).Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}
	want := []string{IDDefault, "wsl-ubuntu", "wsl-alpine"}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestWSLProvider_InvalidDefaultEntry(t *testing.T) {
	tests := []struct {
		name   string
		marker string
	}{
		{"marker names entry without DistributionName", guid(1)},
		{"marker names missing key", "{dangling}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := lxssStore(tt.marker,
				registry.Values{ValueDistributionName: "Ubuntu"},
				registry.Values{ValueBasePath: `C:\orphan`},
			)

			got, err := newTestProvider(store, modernHost, newFakeProber(testBash)).Provide(context.Background())
			if err != nil {
				t.Fatalf("Provide() error = %v", err)
			}
			// Marker present: enumeration still runs, without a default entry
			if diff := cmp.Diff([]string{"wsl-ubuntu"}, ids(got)); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWSLProvider_EmptyMarkerIsPresent(t *testing.T) {
	store := lxssStore("", registry.Values{ValueDistributionName: "Ubuntu"})
	store.SetKey(LxssPath, registry.Values{ValueDefaultDistribution: ""})

	got, err := newTestProvider(store, modernHost, newFakeProber(testBash)).Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}
	if diff := cmp.Diff([]string{"wsl-ubuntu"}, ids(got)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestWSLProvider_RootFS(t *testing.T) {
	store := lxssStore(guid(0),
		registry.Values{ValueDistributionName: "Ubuntu", ValueBasePath: `D:\wsl\ubuntu`},
		registry.Values{ValueDistributionName: "Debian"},
		registry.Values{ValueDistributionName: "Alpine", ValueBasePath: ""},
	)

	got, err := newTestProvider(store, modernHost, nil).Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}

	want := map[string]string{
		IDDefault:    "",
		"wsl-ubuntu": `D:\wsl\ubuntu\rootfs`,
		"wsl-debian": "",
		"wsl-alpine": `\rootfs`,
	}
	for _, d := range got {
		if d.RootFS != want[d.ID] {
			t.Errorf("%s RootFS = %q, want %q", d.ID, d.RootFS, want[d.ID])
		}
	}
}

func TestWSLProvider_RegistryUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		files   *fakeProber
		wantIDs []string
	}{
		{"legacy binary present", newFakeProber(testBash), []string{IDDefault}},
		{"legacy binary missing", newFakeProber(), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(nil, modernHost, tt.files)
			got, err := p.Provide(context.Background())
			if err != nil {
				t.Fatalf("Provide() error = %v", err)
			}
			if diff := cmp.Diff(tt.wantIDs, ids(got)); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWSLProvider_LxssKeyMissing(t *testing.T) {
	got, err := newTestProvider(registry.NewMemoryStore(), modernHost, newFakeProber(testBash)).Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}
	if len(got) != 1 || got[0].Command != testBash {
		t.Errorf("Provide() = %v, want legacy descriptor", ids(got))
	}
}

func TestWSLProvider_NoProber(t *testing.T) {
	got, err := newTestProvider(registry.NewMemoryStore(), modernHost, nil).Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Provide() = %v, want empty", ids(got))
	}
}

func TestWSLProvider_StoreErrorsPropagate(t *testing.T) {
	denied := errors.New("access denied")
	entries := []registry.Values{
		{ValueDistributionName: "Ubuntu"},
		{ValueDistributionName: "Debian"},
	}

	tests := []struct {
		name    string
		readErr map[string]error
		listErr error
		wantOp  string
	}{
		{"lxss read", map[string]error{LxssPath: denied}, nil, "read"},
		{"default read", map[string]error{registry.Join(LxssPath, guid(0)): denied}, nil, "read"},
		{"child read", map[string]error{registry.Join(LxssPath, guid(1)): denied}, nil, "read"},
		{"list", nil, denied, "list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &failingStore{
				MemoryStore: lxssStore(guid(0), entries...),
				readErr:     tt.readErr,
				listErr:     tt.listErr,
			}

			got, err := newTestProvider(store, modernHost, nil).Provide(context.Background())
			if err == nil {
				t.Fatalf("Provide() = %v, want error", ids(got))
			}
			if !errors.Is(err, denied) {
				t.Errorf("error = %v, want wrapping %v", err, denied)
			}
			var de *DiscoveryError
			if !errors.As(err, &de) {
				t.Fatalf("error type = %T, want *DiscoveryError", err)
			}
			if de.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", de.Op, tt.wantOp)
			}
		})
	}
}

func TestWSLProvider_ChildRemovedDuringEnumeration(t *testing.T) {
	store := &failingStore{
		MemoryStore: lxssStore(guid(0),
			registry.Values{ValueDistributionName: "Ubuntu"},
			registry.Values{ValueDistributionName: "Debian"},
		),
		readErr: map[string]error{registry.Join(LxssPath, guid(1)): registry.ErrNotExist},
	}

	got, err := newTestProvider(store, modernHost, nil).Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}
	if diff := cmp.Diff([]string{IDDefault, "wsl-ubuntu"}, ids(got)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestWSLProvider_SystemRoot(t *testing.T) {
	tests := []struct {
		name       string
		root       string
		wantLegacy string
	}{
		{"default", "", `C:\Windows\system32\bash.exe`},
		{"custom", `D:\WINDOWS`, `D:\WINDOWS\system32\bash.exe`},
		{"trailing separator", `D:\Windows\`, `D:\Windows\system32\bash.exe`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := newFakeProber(tt.wantLegacy)
			p := NewWSLProvider(WSLOptions{
				Platform:   platform.OSWindows,
				Files:      files,
				SystemRoot: tt.root,
			})
			got, err := p.Provide(context.Background())
			if err != nil {
				t.Fatalf("Provide() error = %v", err)
			}
			if len(got) != 1 || got[0].Command != tt.wantLegacy {
				t.Fatalf("Provide() = %+v, want command %q", got, tt.wantLegacy)
			}
			if got[0].Icon != nil {
				t.Errorf("Icon = %+v, want nil without icon lookup", got[0].Icon)
			}
		})
	}
}

func TestWSLProvider_ExtraEnv(t *testing.T) {
	store := lxssStore(guid(0),
		registry.Values{ValueDistributionName: "Ubuntu"},
		registry.Values{ValueDistributionName: "Debian"},
	)
	p := newTestProvider(store, modernHost, nil)
	p.opts.Env = map[string]string{"LANG": "C.UTF-8", EnvTerm: "dumb"}

	got, err := p.Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}

	want := map[string]string{"LANG": "C.UTF-8", EnvTerm: "xterm-color", EnvColorTerm: "truecolor"}
	for _, d := range got {
		if diff := cmp.Diff(want, d.Env); diff != "" {
			t.Errorf("%s env mismatch (-want +got):\n%s", d.ID, diff)
		}
	}

	// Each descriptor owns its environment
	got[0].Env["LANG"] = "changed"
	if got[1].Env["LANG"] != "C.UTF-8" {
		t.Error("descriptors share one environment map")
	}
}

func TestWSLProvider_Idempotent(t *testing.T) {
	store := lxssStore(guid(2),
		registry.Values{ValueDistributionName: "Ubuntu", ValueBasePath: `C:\u`},
		registry.Values{ValueBasePath: `C:\orphan`},
		registry.Values{ValueDistributionName: "kali-linux"},
	)
	p := newTestProvider(store, modernHost, nil)

	first, err := p.Provide(context.Background())
	if err != nil {
		t.Fatalf("first Provide() error = %v", err)
	}
	second, err := p.Provide(context.Background())
	if err != nil {
		t.Fatalf("second Provide() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Provide() not idempotent (-first +second):\n%s", diff)
	}
}

func TestWSLProvider_ReadsFreshEachCall(t *testing.T) {
	store := lxssStore(guid(0), registry.Values{ValueDistributionName: "Ubuntu"})
	p := newTestProvider(store, modernHost, nil)

	before, _ := p.Provide(context.Background())
	store.SetKey(registry.Join(LxssPath, "{new}"), registry.Values{ValueDistributionName: "Debian"})
	after, _ := p.Provide(context.Background())

	if len(after) != len(before)+1 {
		t.Errorf("Provide() after registration = %v, want one more than %v", ids(after), ids(before))
	}
}

func TestWSLProvider_ConcurrentProvide(t *testing.T) {
	store := lxssStore(guid(0),
		registry.Values{ValueDistributionName: "Ubuntu"},
		registry.Values{ValueDistributionName: "Debian"},
	)
	p := newTestProvider(store, modernHost, nil)

	want, err := p.Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}

	var wg sync.WaitGroup
	results := make([][]Descriptor, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.Provide(context.Background())
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("result %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestWSLProvider_UniqueIDs(t *testing.T) {
	store := lxssStore(guid(0),
		registry.Values{ValueDistributionName: "Ubuntu"},
		registry.Values{ValueDistributionName: "Ubuntu-18.04"},
		registry.Values{ValueDistributionName: "Debian"},
		registry.Values{ValueDistributionName: "openSUSE-Leap-15-1"},
	)

	got, err := newTestProvider(store, modernHost, nil).Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error = %v", err)
	}
	seen := make(map[string]bool)
	for _, d := range got {
		if seen[d.ID] {
			t.Errorf("duplicate id %q", d.ID)
		}
		seen[d.ID] = true
		if len(d.Env) == 0 {
			t.Errorf("%s has empty environment", d.ID)
		}
	}
}

func TestParseDistributionEntry(t *testing.T) {
	tests := []struct {
		name   string
		values registry.Values
		want   DistributionEntry
		wantOK bool
	}{
		{
			name:   "name and base path",
			values: registry.Values{ValueDistributionName: "Ubuntu", ValueBasePath: `C:\u`},
			want:   DistributionEntry{Key: "{k}", Name: "Ubuntu", BasePath: `C:\u`, HasBasePath: true},
			wantOK: true,
		},
		{
			name:   "name only",
			values: registry.Values{ValueDistributionName: "Ubuntu"},
			want:   DistributionEntry{Key: "{k}", Name: "Ubuntu"},
			wantOK: true,
		},
		{
			name:   "empty base path is present",
			values: registry.Values{ValueDistributionName: "Ubuntu", ValueBasePath: ""},
			want:   DistributionEntry{Key: "{k}", Name: "Ubuntu", HasBasePath: true},
			wantOK: true,
		},
		{
			name:   "missing name",
			values: registry.Values{ValueBasePath: `C:\u`},
		},
		{
			name:   "empty name",
			values: registry.Values{ValueDistributionName: ""},
		},
		{
			name:   "nil values",
			values: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDistributionEntry("{k}", tt.values)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("entry mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
