package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"property-dashboard-server/types"
)

// Backend is the keyed persistence boundary. Raw values are serialized
// collections; the backend has no partial-update primitive, so callers
// round-trip whole collections.
type Backend interface {
	// Get returns the raw value for key, or found=false when the key is absent
	Get(key string) (value []byte, found bool, err error)
	// Set overwrites the raw value for key
	Set(key string, value []byte) error
}

// MemoryBackend keeps collections in process memory. Used in tests and as a
// throwaway mode when no storage is configured.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		data: make(map[string][]byte),
	}
}

func (b *MemoryBackend) Get(key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, true, nil
}

func (b *MemoryBackend) Set(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)
	b.data[key] = copied
	return nil
}

// FileBackend stores one file per key under a data directory. Writes go
// through a temp file and rename so readers never observe a torn value.
type FileBackend struct {
	dir string
	mu  sync.Mutex
}

// NewFileBackend creates the data directory if needed
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &types.StorageError{Op: "init", Key: dir, Err: err}
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(key string) string {
	// Keys are collection names; ":" is not portable in file names
	safe := strings.ReplaceAll(key, ":", "_")
	return filepath.Join(b.dir, safe+".json")
}

func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	value, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, &types.StorageError{Op: "read", Key: key, Err: err}
	}
	return value, true, nil
}

func (b *FileBackend) Set(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	target := b.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return &types.StorageError{Op: "write", Key: key, Err: err}
	}
	if err := os.Rename(tmp, target); err != nil {
		return &types.StorageError{Op: "write", Key: key, Err: err}
	}
	return nil
}
