package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/registry"
	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"
)

// ParseSnapshot builds a registry.MemoryStore from Lua snapshot code. Keys
// are created in the order the registry array lists them, which fixes the
// subkey enumeration order seen by discovery.
func ParseSnapshot(ctx context.Context, luaCode string) (*registry.MemoryStore, error) {
	L, err := newSandboxedVM()
	if err != nil {
		return nil, err
	}
	defer L.Close()
	L.SetContext(ctx)

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error in snapshot",
			Detail:  err.Error(),
		}
	}

	root := L.GetGlobal(luaGlobalRegistry)
	if root.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'registry' table",
			Detail:  fmt.Sprintf("expected table, got %s", root.Type()),
		}
	}
	entries := root.(*lua.LTable)

	n := entries.Len()
	if n > MaxSnapshotKeys {
		return nil, &ParseError{
			Message: "snapshot too large",
			Detail:  fmt.Sprintf("%d keys, maximum is %d", n, MaxSnapshotKeys),
		}
	}

	store := registry.NewMemoryStore()
	for i := 1; i <= n; i++ {
		path, values, err := extractSnapshotEntry(i, entries.RawGetInt(i))
		if err != nil {
			return nil, err
		}
		store.SetKey(path, values)
	}
	return store, nil
}

// LoadSnapshot reads and parses the snapshot file at path.
func (p *Parser) LoadSnapshot(ctx context.Context, path string) (*registry.MemoryStore, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return ParseSnapshot(ctx, string(data))
}

func extractSnapshotEntry(index int, v lua.LValue) (string, registry.Values, error) {
	field := fmt.Sprintf("registry[%d]", index)
	if v.Type() != lua.LTTable {
		return "", nil, fieldTypeError(field, "table", v)
	}
	entry := v.(*lua.LTable)

	path, err := optionalString(entry, luaFieldPath)
	if err != nil {
		return "", nil, err
	}
	if registry.Join(path) == "" {
		return "", nil, &ParseError{
			Message: fmt.Sprintf("invalid field '%s.path'", field),
			Detail:  "path cannot be empty",
		}
	}

	values := make(registry.Values)
	switch raw := entry.RawGetString(luaFieldValues); raw.Type() {
	case lua.LTNil:
	case lua.LTTable:
		raw.(*lua.LTable).ForEach(func(name, value lua.LValue) {
			if err != nil {
				return
			}
			if name.Type() != lua.LTString {
				err = fieldTypeError(field+".values key", "string", name)
				return
			}
			switch value.Type() {
			case lua.LTString:
				values[name.String()] = value.String()
			case lua.LTNumber:
				// DWORD values are stored in decimal, as OpenCurrentUser reports them.
				values[name.String()] = strconv.FormatInt(int64(value.(lua.LNumber)), 10)
			default:
				err = fieldTypeError(field+".values."+name.String(), "string", value)
			}
		})
	default:
		return "", nil, fieldTypeError(field+".values", "table", raw)
	}
	if err != nil {
		return "", nil, err
	}

	return path, values, nil
}
