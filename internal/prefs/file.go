package prefs

import (
	"fmt"
	"sync"

	"github.com/zjrosen/relens/internal/config"
	"github.com/zjrosen/relens/internal/log"
)

// FileStore keeps values as top-level keys of a YAML document. Writes are
// atomic and leave comments and unknown keys in the file alone.
type FileStore struct {
	mu     sync.Mutex
	path   string
	closed bool
}

// NewFileStore opens the YAML state file at path. The file is created on the
// first Set.
func NewFileStore(path string) (*FileStore, error) {
	if _, err := config.ReadDocument(path); err != nil {
		return nil, fmt.Errorf("opening state file: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}

	doc, err := config.ReadDocument(f.path)
	if err != nil {
		return "", false, err
	}
	v, ok := config.LookupValue(doc, []string{key})
	return v, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	doc, err := config.ReadDocument(f.path)
	if err != nil {
		return err
	}
	if err := config.SetNode(doc, []string{key}, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	if err := config.WriteDocument(f.path, doc); err != nil {
		return err
	}
	log.Debug(log.CatPrefs, "saved preference", "key", key, "path", f.path)
	return nil
}

func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}
