package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ZebulonRouseFrantzich/shelldisc/internal/shell"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func validateFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q (expected %s)", format, strings.Join(allowed, ", "))
}

// renderValue writes v as indented JSON or YAML.
func renderValue(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return validateFormat(format, formatJSON, formatYAML)
	}
}

// renderShells writes descriptors in the requested format.
func renderShells(w io.Writer, format string, shells []shell.Descriptor) error {
	if shells == nil {
		shells = []shell.Descriptor{}
	}
	if format != formatTable {
		return renderValue(w, format, shells)
	}

	if len(shells) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No WSL shells found."))
		return err
	}

	t := newTable("ID", "NAME", "COMMAND", "ARGS", "ROOTFS", "ICON")
	for _, d := range shells {
		icon := ""
		if d.Icon != nil {
			icon = d.Icon.Asset
		}
		t.Row(d.ID, d.Name, d.Command, strings.Join(d.Args, " "), d.RootFS, icon)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// renderKeyValues writes pairs as a two-column table, sorted by key.
func renderKeyValues(w io.Writer, pairs map[string]string) error {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := newTable("KEY", "VALUE")
	for _, k := range keys {
		t.Row(k, pairs[k])
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
