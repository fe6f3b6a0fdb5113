package registry

import (
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store.
// Subkeys are enumerated in the order they were first created.
// It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	keys map[string]*memoryKey
}

type memoryKey struct {
	name     string
	values   Values
	children []string // display names, insertion order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]*memoryKey)}
}

// SetKey creates the key at path (and any missing parents) and merges values into it.
func (s *MemoryStore) SetKey(path string, values Values) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.ensure(path)
	for name, value := range values {
		k.values[name] = value
	}
}

// DeleteKey removes the key at path and all of its subkeys.
func (s *MemoryStore) DeleteKey(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path = Join(path)
	id := canonical(path)
	for k := range s.keys {
		if k == id || strings.HasPrefix(k, id+Separator) {
			delete(s.keys, k)
		}
	}

	parent, name := split(path)
	if p, ok := s.keys[canonical(parent)]; ok {
		for i, child := range p.children {
			if strings.EqualFold(child, name) {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
}

// ReadKey implements Store.
func (s *MemoryStore) ReadKey(path string) (Values, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.keys[canonical(Join(path))]
	if !ok {
		return nil, ErrNotExist
	}
	out := make(Values, len(k.values))
	for name, value := range k.values {
		out[name] = value
	}
	return out, nil
}

// ListSubkeys implements Store.
func (s *MemoryStore) ListSubkeys(path string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.keys[canonical(Join(path))]
	if !ok {
		return nil, ErrNotExist
	}
	return append([]string(nil), k.children...), nil
}

// ensure returns the key at path, creating it and its parents. Caller holds mu.
func (s *MemoryStore) ensure(path string) *memoryKey {
	path = Join(path)
	id := canonical(path)
	if k, ok := s.keys[id]; ok {
		return k
	}

	parent, name := split(path)
	k := &memoryKey{name: name, values: make(Values)}
	s.keys[id] = k
	if path != "" {
		p := s.ensure(parent)
		p.children = append(p.children, name)
	}
	return k
}

func canonical(path string) string {
	return strings.ToLower(path)
}

// split returns the parent path and last component of path.
func split(path string) (parent, name string) {
	i := strings.LastIndex(path, Separator)
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}
