/*
Package repository defines the core interface of TableRepo's data access
layer.

The main interface is Repository[T], which provides generic CRUD and batch
operations for any record type T embedding storagemodels.TableEntity:

	type Repository[T storagemodels.Keyed] interface {
	    Get(ctx context.Context, partitionKey, rowKey string) (*T, error)
	    Scan(ctx context.Context, pred filter.Predicate) ([]T, error)
	    ScanPartition(ctx context.Context, partitionKey string, preds ...filter.Predicate) ([]T, error)
	    Add(ctx context.Context, record T) error
	    AddOrUpdate(ctx context.Context, record T) error
	    Update(ctx context.Context, record T) error
	    Delete(ctx context.Context, partitionKey, rowKey string, ignoreVersion bool) error
	    AddBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error
	    AddOrUpdateBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error
	    UpdateBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error
	    DeleteBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error
	    DeleteWhere(ctx context.Context, pred filter.Predicate) error
	}

Implementations:
  - ddb: DynamoDB implementation with per-partition atomic batching
  - mock: In-memory mock implementation for testing

Scan and ScanPartition materialize their results eagerly into a slice
rather than returning a lazy cursor. This is designed behavior: the result
is randomly indexable and re-iterable, and memory use is bounded by the
result set size rather than by cursor lifetime.

The package uses Go generics to ensure type safety at compile time while
maintaining flexibility for different storage backends.
*/
package repository
