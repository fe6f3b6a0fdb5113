//go:build windows

package registry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	winreg "golang.org/x/sys/windows/registry"
)

// windowsStore reads one predefined root key of the live registry.
type windowsStore struct {
	root winreg.Key
	name string
}

// OpenCurrentUser returns a Store over HKEY_CURRENT_USER.
func OpenCurrentUser() (Store, error) {
	return &windowsStore{root: winreg.CURRENT_USER, name: "HKCU"}, nil
}

// ReadKey implements Store. String values are returned as-is; DWORD and
// QWORD values are rendered in decimal; multi-string values are joined
// with newlines. Other value types are skipped.
func (s *windowsStore) ReadKey(path string) (Values, error) {
	k, err := winreg.OpenKey(s.root, path, winreg.QUERY_VALUE)
	if err != nil {
		return nil, s.translate("open", path, err)
	}
	defer k.Close()

	names, err := k.ReadValueNames(-1)
	if err != nil {
		return nil, s.translate("read values of", path, err)
	}

	values := make(Values, len(names))
	for _, name := range names {
		_, valtype, err := k.GetValue(name, nil)
		if err != nil {
			continue
		}
		switch valtype {
		case winreg.SZ, winreg.EXPAND_SZ:
			if v, _, err := k.GetStringValue(name); err == nil {
				values[name] = v
			}
		case winreg.DWORD, winreg.QWORD:
			if v, _, err := k.GetIntegerValue(name); err == nil {
				values[name] = strconv.FormatUint(v, 10)
			}
		case winreg.MULTI_SZ:
			if v, _, err := k.GetStringsValue(name); err == nil {
				values[name] = strings.Join(v, "\n")
			}
		}
	}
	return values, nil
}

// ListSubkeys implements Store.
func (s *windowsStore) ListSubkeys(path string) ([]string, error) {
	k, err := winreg.OpenKey(s.root, path, winreg.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, s.translate("open", path, err)
	}
	defer k.Close()

	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, s.translate("enumerate", path, err)
	}
	return names, nil
}

func (s *windowsStore) translate(op, path string, err error) error {
	if errors.Is(err, winreg.ErrNotExist) {
		return ErrNotExist
	}
	return fmt.Errorf("%s %s\\%s: %w", op, s.name, path, err)
}
