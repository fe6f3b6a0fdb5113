package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/registry"
)

// Generator writes registry snapshots as Lua code.
type Generator struct {
	indent string           // Indentation string (default: two spaces)
	now    func() time.Time // Clock for the header comment
}

// NewGenerator creates a new snapshot generator.
func NewGenerator() *Generator {
	return &Generator{
		indent: "  ",
		now:    time.Now,
	}
}

// GenerateSnapshot captures root and every key below it from store. Keys are
// written parent first and siblings in store enumeration order, so parsing the
// result reproduces the same ListSubkeys order.
func (g *Generator) GenerateSnapshot(store registry.Store, root string) (string, error) {
	var buf bytes.Buffer

	buf.WriteString("-- shelldisc registry snapshot\n")
	buf.WriteString("-- Generated: ")
	buf.WriteString(g.now().Format(time.RFC3339))
	buf.WriteString("\n\n")
	buf.WriteString(luaGlobalRegistry)
	buf.WriteString(" = {\n")

	count := 0
	if err := g.writeKey(&buf, store, registry.Join(root), &count); err != nil {
		return "", err
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// writeKey writes path and recurses into its subkeys.
func (g *Generator) writeKey(buf *bytes.Buffer, store registry.Store, path string, count *int) error {
	*count++
	if *count > MaxSnapshotKeys {
		return fmt.Errorf("snapshot exceeds %d keys", MaxSnapshotKeys)
	}

	values, err := store.ReadKey(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	buf.WriteString(g.indent)
	buf.WriteString("{\n")
	buf.WriteString(strings.Repeat(g.indent, 2))
	buf.WriteString(luaFieldPath)
	buf.WriteString(" = ")
	buf.WriteString(g.quoteLuaString(path))
	buf.WriteString(",\n")

	if len(values) > 0 {
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)

		buf.WriteString(strings.Repeat(g.indent, 2))
		buf.WriteString(luaFieldValues)
		buf.WriteString(" = {\n")
		for _, name := range names {
			buf.WriteString(strings.Repeat(g.indent, 3))
			buf.WriteString("[")
			buf.WriteString(g.quoteLuaString(name))
			buf.WriteString("] = ")
			buf.WriteString(g.quoteLuaString(values[name]))
			buf.WriteString(",\n")
		}
		buf.WriteString(strings.Repeat(g.indent, 2))
		buf.WriteString("},\n")
	}

	buf.WriteString(g.indent)
	buf.WriteString("},\n")

	children, err := store.ListSubkeys(path)
	if err != nil {
		return fmt.Errorf("list %s: %w", path, err)
	}
	for _, child := range children {
		if err := g.writeKey(buf, store, registry.Join(path, child), count); err != nil {
			return err
		}
	}
	return nil
}

// quoteLuaString quotes a string for Lua, escaping special characters.
func (g *Generator) quoteLuaString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\") // Escape backslashes first
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return "\"" + s + "\""
}
