package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrUnknownBackend is returned by OpenStore for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend names accepted in Config.Backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is a synchronous string key-value store. Last write wins.
type Store interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Close() error
}

// FileStore implements Store using a single JSON object file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a new FileStore with the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the storage file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value stored under key.
// A missing file is an empty store.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key and rewrites the file atomically.
// Creates the directory if it doesn't exist.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		// Unreadable file: start over rather than refuse every write
		values = map[string]string{}
	}
	values[key] = value
	return s.writeAtomic(values)
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return values, nil
}

// writeAtomic writes to a temp file then renames it over path.
func (s *FileStore) writeAtomic(values map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

// Get implements Store.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements Store.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

// OpenStore opens the backend named in cfg.Backend under cfg.DataDir.
func OpenStore(cfg *Config) (Store, error) {
	switch cfg.Backend {
	case BackendJSON, "":
		return NewFileStore(filepath.Join(cfg.DataDir, "storage.json")), nil
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(cfg.DataDir, "storage.db"))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
