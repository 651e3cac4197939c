/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the Repository
// interface for testing
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/tablerepo/errors"
	"github.com/suparena/tablerepo/filter"
	"github.com/suparena/tablerepo/storagemodels"
)

// Repository is an in-memory implementation of repository.Repository[T]
// for testing. Version tags are compared verbatim; stored tags are
// whatever the caller's records carried.
type Repository[T storagemodels.Keyed] struct {
	mu   sync.RWMutex
	data map[string]T

	scanFunc    func(ctx context.Context, pred filter.Predicate) ([]T, error)
	writeError  error
	deleteError error
}

// New creates a new mock Repository
func New[T storagemodels.Keyed]() *Repository[T] {
	return &Repository[T]{
		data: make(map[string]T),
	}
}

// WithScanFunc sets a custom scan function for testing
func (m *Repository[T]) WithScanFunc(f func(ctx context.Context, pred filter.Predicate) ([]T, error)) *Repository[T] {
	m.scanFunc = f
	return m
}

// WithWriteError makes write operations return an error
func (m *Repository[T]) WithWriteError(err error) *Repository[T] {
	m.writeError = err
	return m
}

// WithDeleteError makes delete operations return an error
func (m *Repository[T]) WithDeleteError(err error) *Repository[T] {
	m.deleteError = err
	return m
}

// Len returns the number of stored records
func (m *Repository[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func compositeKey(partitionKey, rowKey string) string {
	return partitionKey + "|" + rowKey
}

// Get retrieves a record by identity; absent identities yield (nil, nil)
func (m *Repository[T]) Get(ctx context.Context, partitionKey, rowKey string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if record, exists := m.data[compositeKey(partitionKey, rowKey)]; exists {
		return &record, nil
	}
	return nil, nil
}

// Scan returns all stored records, or delegates to the configured scan function
func (m *Repository[T]) Scan(ctx context.Context, pred filter.Predicate) ([]T, error) {
	if m.scanFunc != nil {
		return m.scanFunc(ctx, pred)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]T, 0, len(m.data))
	for _, record := range m.data {
		results = append(results, record)
	}
	return results, nil
}

// ScanPartition returns all stored records in the given partition
func (m *Repository[T]) ScanPartition(ctx context.Context, partitionKey string, preds ...filter.Predicate) ([]T, error) {
	if partitionKey == "" {
		return nil, errors.NewValidationError("partitionKey", "must not be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]T, 0)
	for _, record := range m.data {
		pk, _ := record.EntityKey()
		if pk == partitionKey {
			results = append(results, record)
		}
	}
	return results, nil
}

// Add inserts a record, conflicting on an existing identity
func (m *Repository[T]) Add(ctx context.Context, record T) error {
	if m.writeError != nil {
		return m.writeError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	partitionKey, rowKey := record.EntityKey()
	key := compositeKey(partitionKey, rowKey)
	if _, exists := m.data[key]; exists {
		var zero T
		return errors.NewAlreadyExistsError(fmt.Sprintf("%T", zero), key)
	}
	m.data[key] = record
	return nil
}

// AddOrUpdate upserts a record unconditionally
func (m *Repository[T]) AddOrUpdate(ctx context.Context, record T) error {
	if m.writeError != nil {
		return m.writeError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	partitionKey, rowKey := record.EntityKey()
	m.data[compositeKey(partitionKey, rowKey)] = record
	return nil
}

// Update replaces an existing record, honoring version tags
func (m *Repository[T]) Update(ctx context.Context, record T) error {
	if m.writeError != nil {
		return m.writeError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.updateLocked(record, false)
}

func (m *Repository[T]) updateLocked(record T, ignoreVersion bool) error {
	partitionKey, rowKey := record.EntityKey()
	key := compositeKey(partitionKey, rowKey)

	current, exists := m.data[key]
	if !exists {
		return errors.NewConflictError("update", key)
	}
	tag := record.VersionTag()
	if ignoreVersion {
		tag = storagemodels.VersionTagAny
	}
	if tag != storagemodels.VersionTagAny && tag != current.VersionTag() {
		return errors.NewConflictError("update", key)
	}
	m.data[key] = record
	return nil
}

// Delete removes a record by identity
func (m *Repository[T]) Delete(ctx context.Context, partitionKey, rowKey string, ignoreVersion bool) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, compositeKey(partitionKey, rowKey))
	return nil
}

// AddBatch inserts all records, conflicting on any existing identity
func (m *Repository[T]) AddBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error {
	if len(records) == 0 {
		return nil
	}
	for _, record := range records {
		if err := m.Add(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// AddOrUpdateBatch upserts all records
func (m *Repository[T]) AddOrUpdateBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error {
	if len(records) == 0 {
		return nil
	}
	for _, record := range records {
		if err := m.AddOrUpdate(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// UpdateBatch replaces all records, honoring version tags unless overridden
func (m *Repository[T]) UpdateBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error {
	if len(records) == 0 {
		return nil
	}
	if m.writeError != nil {
		return m.writeError
	}

	options := storagemodels.DefaultBatchOptions()
	for _, opt := range opts {
		opt(&options)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, record := range records {
		if err := m.updateLocked(record, options.IgnoreVersion); err != nil {
			return err
		}
	}
	return nil
}

// DeleteBatch removes all records
func (m *Repository[T]) DeleteBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error {
	if len(records) == 0 {
		return nil
	}
	for _, record := range records {
		partitionKey, rowKey := record.EntityKey()
		if err := m.Delete(ctx, partitionKey, rowKey, true); err != nil {
			return err
		}
	}
	return nil
}

// DeleteWhere scans and deletes the matching records
func (m *Repository[T]) DeleteWhere(ctx context.Context, pred filter.Predicate) error {
	records, err := m.Scan(ctx, pred)
	if err != nil {
		return err
	}
	return m.DeleteBatch(ctx, records)
}
