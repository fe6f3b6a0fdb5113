package registry

import (
	"errors"
	"strings"
)

var (
	// ErrNotExist is returned when a key does not exist.
	ErrNotExist = errors.New("registry key does not exist")

	// ErrUnavailable is returned when the store cannot be opened on this host.
	ErrUnavailable = errors.New("registry is not available on this platform")
)

// Separator joins key path components.
const Separator = `\`

// Store reads keys from a hierarchical configuration store.
type Store interface {
	// ReadKey returns the values stored directly under path.
	// It returns ErrNotExist if the key is absent.
	ReadKey(path string) (Values, error)

	// ListSubkeys returns the names of the direct subkeys of path in
	// store enumeration order. It returns ErrNotExist if the key is absent.
	ListSubkeys(path string) ([]string, error)
}

// Values holds the named values of one key.
type Values map[string]string

// Lookup returns the named value and whether it is present.
// A present value may be empty.
func (v Values) Lookup(name string) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v[name]
	return s, ok
}

// Join concatenates key path components with Separator.
func Join(parts ...string) string {
	trimmed := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, Separator)
		if p != "" {
			trimmed = append(trimmed, p)
		}
	}
	return strings.Join(trimmed, Separator)
}

// IsNotExist reports whether err means the key is absent.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}
