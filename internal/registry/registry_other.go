//go:build !windows

package registry

// OpenCurrentUser returns ErrUnavailable: there is no registry on this platform.
func OpenCurrentUser() (Store, error) {
	return nil, ErrUnavailable
}
