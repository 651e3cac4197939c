/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package repository

import (
	"context"

	"github.com/suparena/tablerepo/filter"
	"github.com/suparena/tablerepo/storagemodels"
)

// Repository provides typed CRUD and batch operations over a partitioned
// key-value table for record type T.
type Repository[T storagemodels.Keyed] interface {
	// Get fetches exactly one record by identity. Absence is not an error:
	// a nonexistent identity yields (nil, nil).
	Get(ctx context.Context, partitionKey, rowKey string) (*T, error)

	// Scan evaluates the predicate over the whole table and returns the
	// fully materialized result set.
	Scan(ctx context.Context, pred filter.Predicate) ([]T, error)

	// ScanPartition restricts the scan to one partition, combining the
	// partition-key equality condition with the given predicates by AND.
	ScanPartition(ctx context.Context, partitionKey string, preds ...filter.Predicate) ([]T, error)

	// Add inserts a record, failing with a conflict error if its identity
	// already exists.
	Add(ctx context.Context, record T) error

	// AddOrUpdate upserts a record unconditionally, ignoring version tags.
	AddOrUpdate(ctx context.Context, record T) error

	// Update replaces an existing record. It fails with a conflict error if
	// the record's version tag no longer matches the server's, unless the
	// tag is storagemodels.VersionTagAny.
	Update(ctx context.Context, record T) error

	// Delete removes a record by identity. With ignoreVersion false the
	// store may still reject the call if the record was concurrently
	// modified; the check is not enforced locally.
	Delete(ctx context.Context, partitionKey, rowKey string, ignoreVersion bool) error

	// AddBatch inserts records in per-partition atomic chunks. Duplicate
	// identities fail the owning chunk with a conflict error.
	AddBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error

	// AddOrUpdateBatch upserts records in per-partition atomic chunks.
	AddOrUpdateBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error

	// UpdateBatch replaces records in per-partition atomic chunks, applying
	// each record's version tag unless overridden.
	UpdateBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error

	// DeleteBatch deletes records in per-partition atomic chunks.
	DeleteBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error

	// DeleteWhere scans for records matching the predicate and batch-deletes
	// them. Two round trips; not transactional.
	DeleteWhere(ctx context.Context, pred filter.Predicate) error
}
