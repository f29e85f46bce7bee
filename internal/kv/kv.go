// Package kv provides the key-value substrate projects are persisted in.
//
// A Store holds opaque string blobs under string keys. Reads of a missing key
// are not errors; they report found=false.
package kv

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Store is a string key-value store
type Store interface {
	// Get returns the value at key and whether it exists
	Get(key string) (string, bool, error)

	// Set overwrites the value at key
	Set(key, value string) error

	// Close releases any resources held by the store
	Close() error
}

// Backend names a Store implementation
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// sqliteFile is the database file name used inside the data directory
const sqliteFile = "todos.db"

// Open opens the store for the given backend rooted at dataDir
func Open(backend Backend, dataDir string) (Store, error) {
	switch Backend(strings.ToLower(string(backend))) {
	case BackendFile, "":
		return NewFileStore(dataDir)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, sqliteFile))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

func validKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("key is required")
	}
	return nil
}
