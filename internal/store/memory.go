package store

import (
	"strings"
	"sync"
)

// MemoryStore is an in-process Store used by tests and throwaway sessions.
type MemoryStore struct {
	mutex  sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value at key and whether it exists.
func (memoryStore *MemoryStore) Get(key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, ErrMissingKey
	}
	memoryStore.mutex.RLock()
	defer memoryStore.mutex.RUnlock()
	value, found := memoryStore.values[key]
	return value, found, nil
}

// Set stores value at key.
func (memoryStore *MemoryStore) Set(key string, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrMissingKey
	}
	memoryStore.mutex.Lock()
	defer memoryStore.mutex.Unlock()
	memoryStore.values[key] = value
	return nil
}

// Remove deletes the value at key.
func (memoryStore *MemoryStore) Remove(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrMissingKey
	}
	memoryStore.mutex.Lock()
	defer memoryStore.mutex.Unlock()
	delete(memoryStore.values, key)
	return nil
}
