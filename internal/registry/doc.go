// Package registry models the hierarchical configuration store that WSL
// registers its distributions in.
//
// A Store exposes two reads: the named values stored under a key, and the
// names of a key's direct subkeys. Absence is reported with ErrNotExist so
// callers can tell "not registered" apart from an empty value or an I/O
// failure.
//
// Three implementations are provided:
//   - OpenCurrentUser: the live HKEY_CURRENT_USER hive (Windows only)
//   - MemoryStore: an in-memory store used by tests
//   - LoadSnapshot: a MemoryStore built from a Lua snapshot file
//
// Paths use backslash separators and are matched case-insensitively, like
// the Windows registry.
package registry
