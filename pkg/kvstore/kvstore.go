// Package kvstore provides the scoped key-value persistence port the
// assistant session saves its state through, with in-memory and local
// filesystem implementations.
package kvstore

// Store is the persistence port. Get reports ok=false for a missing key;
// that is not an error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Memory is an in-process Store, used in tests and as the fallback when no
// data directory is configured.
type Memory struct {
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.values[key] = value
	return nil
}
