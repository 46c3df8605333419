// Package storage provides the origin-scoped key-value store that task data
// is persisted in, and the adapter that (de)serializes the task collection
// under its fixed key.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// LocalStore is a durable string key-value store scoped to a single origin.
type LocalStore interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Keys() ([]string, error)
}

// localStoreFile represents the top-level structure of the store file.
// Items are grouped by the origin that wrote them.
type localStoreFile struct {
	Origins map[string]map[string]string `yaml:"origins"`
}

type fileLocalStore struct {
	path   string
	origin string
}

// NewFileLocalStore creates a LocalStore backed by a YAML file at path.
// Several origins may share one file; each sees and modifies only its own items.
func NewFileLocalStore(path, origin string) LocalStore {
	return &fileLocalStore{path: path, origin: origin}
}

func (s *fileLocalStore) GetItem(key string) (string, bool, error) {
	var value string
	var ok bool
	err := s.withLock(func() error {
		items, err := s.read()
		if err != nil {
			return err
		}
		value, ok = items[key]
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("getting item %q: %w", key, err)
	}
	return value, ok, nil
}

func (s *fileLocalStore) SetItem(key, value string) error {
	err := s.withLock(func() error {
		items, err := s.read()
		if err != nil {
			return err
		}
		items[key] = value
		return s.write(items)
	})
	if err != nil {
		return fmt.Errorf("setting item %q: %w", key, err)
	}
	return nil
}

func (s *fileLocalStore) RemoveItem(key string) error {
	err := s.withLock(func() error {
		items, err := s.read()
		if err != nil {
			return err
		}
		if _, exists := items[key]; !exists {
			return nil
		}
		delete(items, key)
		return s.write(items)
	})
	if err != nil {
		return fmt.Errorf("removing item %q: %w", key, err)
	}
	return nil
}

func (s *fileLocalStore) Keys() ([]string, error) {
	var keys []string
	err := s.withLock(func() error {
		items, err := s.read()
		if err != nil {
			return err
		}
		keys = sortedKeys(items)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	return keys, nil
}

func (s *fileLocalStore) withLock(fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	unlock, err := lockFile(s.path + ".lock")
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()
	return fn()
}

// read loads the items for this origin. A missing file is an empty store.
func (s *fileLocalStore) read() (map[string]string, error) {
	f, err := s.readFile()
	if err != nil {
		return nil, err
	}
	items := f.Origins[s.origin]
	if items == nil {
		return make(map[string]string), nil
	}
	return items, nil
}

func (s *fileLocalStore) readFile() (*localStoreFile, error) {
	f := &localStoreFile{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("reading store file: %w", err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing store file: %w", err)
	}
	return f, nil
}

// write replaces this origin's items and leaves every other origin untouched.
// Callers must hold the file lock.
func (s *fileLocalStore) write(items map[string]string) error {
	f, err := s.readFile()
	if err != nil {
		return err
	}
	if f.Origins == nil {
		f.Origins = make(map[string]map[string]string)
	}
	if len(items) == 0 {
		delete(f.Origins, s.origin)
	} else {
		f.Origins[s.origin] = items
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling store file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing store file: %w", err)
	}
	return nil
}

type memoryLocalStore struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryLocalStore creates a LocalStore that lives only as long as the process.
func NewMemoryLocalStore() LocalStore {
	return &memoryLocalStore{items: make(map[string]string)}
}

func (s *memoryLocalStore) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *memoryLocalStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *memoryLocalStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *memoryLocalStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.items), nil
}

func sortedKeys(items map[string]string) []string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
