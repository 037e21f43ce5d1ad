// Package prefs persists the small amount of client state that survives a
// restart: the last focused input and the theme.
package prefs

import "errors"

// Keys stored by Prefs.
const (
	KeyFocus = "focus"
	KeyTheme = "theme"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("prefs store closed")

// Store is a string key/value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// MemoryStore is an in-process Store, used when persistence is unavailable.
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Close() error { return nil }
