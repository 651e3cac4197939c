/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerr "github.com/suparena/tablerepo/errors"
	"github.com/suparena/tablerepo/filter"
	"github.com/suparena/tablerepo/storagemodels"
)

// opKind is the write operation applied to every record of a batch.
type opKind int

const (
	opInsert opKind = iota
	opUpsert
	opReplace
	opDelete
)

func (k opKind) String() string {
	switch k {
	case opInsert:
		return "insert"
	case opUpsert:
		return "upsert"
	case opReplace:
		return "replace"
	case opDelete:
		return "delete"
	}
	return "unknown"
}

// AddBatch inserts records in per-partition atomic chunks. A duplicate
// identity fails its owning chunk with a conflict error.
func (r *TableRepository[T]) AddBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error {
	return r.writeBatch(ctx, records, opInsert, opts)
}

// AddOrUpdateBatch upserts records in per-partition atomic chunks. It never
// conflicts on pre-existing identities.
func (r *TableRepository[T]) AddOrUpdateBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error {
	return r.writeBatch(ctx, records, opUpsert, opts)
}

// UpdateBatch replaces records in per-partition atomic chunks, applying
// each record's version tag unless WithIgnoreVersion is given.
func (r *TableRepository[T]) UpdateBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error {
	return r.writeBatch(ctx, records, opReplace, opts)
}

// DeleteBatch deletes records in per-partition atomic chunks.
func (r *TableRepository[T]) DeleteBatch(ctx context.Context, records []T, opts ...storagemodels.BatchOption) error {
	return r.writeBatch(ctx, records, opDelete, opts)
}

// DeleteWhere scans for records matching the predicate and batch-deletes
// them. Two full round trips, one read and one write; records may change in
// between, so this is not transactional.
func (r *TableRepository[T]) DeleteWhere(ctx context.Context, pred filter.Predicate) error {
	records, err := r.Scan(ctx, pred)
	if err != nil {
		return err
	}
	return r.DeleteBatch(ctx, records)
}

func (r *TableRepository[T]) writeBatch(ctx context.Context, records []T, kind opKind, opts []storagemodels.BatchOption) error {
	// Degenerate case: nothing to group, nothing to send.
	if len(records) == 0 {
		return nil
	}

	options := storagemodels.DefaultBatchOptions()
	for _, opt := range opts {
		opt(&options)
	}

	groups, err := r.buildGroups(records, kind, options.IgnoreVersion)
	if err != nil {
		return err
	}
	chunks := chunkGroups(groups, effectiveChunkSize(options.ChunkSize))
	return r.executeChunks(ctx, chunks, kind)
}

// buildGroups buckets one write operation per record by partition key in a
// single pass. Arrival order is preserved within each partition; order
// across partitions carries no guarantee.
func (r *TableRepository[T]) buildGroups(records []T, kind opKind, ignoreVersion bool) (map[string][]types.TransactWriteItem, error) {
	groups := make(map[string][]types.TransactWriteItem)
	for _, record := range records {
		partitionKey, rowKey := record.EntityKey()
		if partitionKey == "" || rowKey == "" {
			return nil, storeerr.NewValidationError("record", "partition key and row key must not be empty")
		}

		tag := record.VersionTag()
		if ignoreVersion {
			// The override lives on the operation descriptor; the caller's
			// record is never mutated.
			tag = storagemodels.VersionTagAny
		}

		op, err := r.buildOperation(record, kind, tag)
		if err != nil {
			return nil, err
		}
		groups[partitionKey] = append(groups[partitionKey], op)
	}
	return groups, nil
}

func (r *TableRepository[T]) buildOperation(record T, kind opKind, tag string) (types.TransactWriteItem, error) {
	partitionKey, rowKey := record.EntityKey()

	if kind == opDelete {
		del := &types.Delete{
			TableName: aws.String(r.tableName),
			Key:       tableKey(partitionKey, rowKey),
		}
		if tag != "" && tag != storagemodels.VersionTagAny {
			del.ConditionExpression = aws.String(condTagMatch)
			del.ExpressionAttributeValues = map[string]types.AttributeValue{
				":etag": &types.AttributeValueMemberS{Value: tag},
			}
		}
		return types.TransactWriteItem{Delete: del}, nil
	}

	item, err := r.marshalRecord(record)
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	put := &types.Put{
		TableName: aws.String(r.tableName),
		Item:      item,
	}

	switch kind {
	case opInsert:
		put.ConditionExpression = aws.String(condIdentityFree)
	case opReplace:
		if tag == "" {
			return types.TransactWriteItem{}, storeerr.NewValidationError("versionTag",
				fmt.Sprintf("record %s has no version tag; read it first or use VersionTagAny", identityKey(partitionKey, rowKey)))
		}
		if tag == storagemodels.VersionTagAny {
			put.ConditionExpression = aws.String(condExists)
		} else {
			put.ConditionExpression = aws.String(condTagMatch)
			put.ExpressionAttributeValues = map[string]types.AttributeValue{
				":etag": &types.AttributeValueMemberS{Value: tag},
			}
		}
	}
	return types.TransactWriteItem{Put: put}, nil
}

// effectiveChunkSize clamps the requested chunk size to the service
// maximum. Requests above the ceiling are clamped, never rejected; zero or
// negative requests fall back to the default.
func effectiveChunkSize(requested int) int {
	if requested <= 0 || requested > storagemodels.MaxBatchSize {
		return storagemodels.MaxBatchSize
	}
	return requested
}

// chunkGroups splits every partition's operation list into ordered chunks
// of at most size operations. Every chunk belongs to exactly one partition,
// and concatenating a partition's chunks reproduces its original operation
// order.
func chunkGroups(groups map[string][]types.TransactWriteItem, size int) [][]types.TransactWriteItem {
	var chunks [][]types.TransactWriteItem
	for _, ops := range groups {
		for start := 0; start < len(ops); start += size {
			end := start + size
			if end > len(ops) {
				end = len(ops)
			}
			chunks = append(chunks, ops[start:end])
		}
	}
	return chunks
}

// executeChunks submits every chunk as one atomic batch request, all chunks
// concurrently. Fan-out/fan-in, not fail-fast: the first observed failure
// is surfaced only after every in-flight chunk has settled. Chunks that
// already committed are not rolled back, so partial application across
// partitions is possible; reconciling it is the caller's responsibility.
func (r *TableRepository[T]) executeChunks(ctx context.Context, chunks [][]types.TransactWriteItem, kind opKind) error {
	if len(chunks) == 0 {
		return nil
	}

	client, err := r.resolveTable(ctx)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(chunks))

	for _, chunk := range chunks {
		wg.Add(1)
		go func(chunk []types.TransactWriteItem) {
			defer wg.Done()
			_, err := client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
				TransactItems: chunk,
			})
			if err != nil {
				errs <- r.mapBatchError(err, kind)
			}
		}(chunk)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *TableRepository[T]) mapBatchError(err error, kind opKind) error {
	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for _, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return storeerr.NewConflictError("batch "+kind.String(), "")
			}
		}
	}
	return fmt.Errorf("batch %s failed: %w", kind, err)
}
