/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablerepo

import (
	"fmt"
	"sync"
)

// Storage is a higher-level interface that manages a collection of Repository instances.
// Note that its methods are not generic; they use the empty interface (any) to store and retrieve repositories.
type Storage interface {
	// RegisterRepository registers a Repository under a given key (for example, "Player" or "RatingRecord").
	RegisterRepository(key string, repo any) error
	// GetRepository retrieves the registered Repository for a given key.
	// The caller must type-assert the returned value to the appropriate Repository type.
	GetRepository(key string) (any, error)
}

// storageManager is a thread-safe implementation of the Storage interface.
type storageManager struct {
	mu    sync.RWMutex
	repos map[string]any
}

// NewStorageManager creates and returns a new Storage implementation.
func NewStorageManager() Storage {
	return &storageManager{
		repos: make(map[string]any),
	}
}

// RegisterRepository stores the provided Repository under the given key.
func (sm *storageManager) RegisterRepository(key string, repo any) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.repos[key]; exists {
		return fmt.Errorf("repository with key %q already registered", key)
	}
	sm.repos[key] = repo
	return nil
}

// GetRepository retrieves the Repository associated with the given key.
func (sm *storageManager) GetRepository(key string) (any, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	repo, exists := sm.repos[key]
	if !exists {
		return nil, fmt.Errorf("repository with key %q not found", key)
	}
	return repo, nil
}
