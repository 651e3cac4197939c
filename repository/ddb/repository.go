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
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	storeerr "github.com/suparena/tablerepo/errors"
	"github.com/suparena/tablerepo/storagemodels"
)

// Physical attribute names of the table's key schema and version tag.
const (
	attrPartitionKey = "PK"
	attrRowKey       = "RK"
	attrVersionTag   = "ETag"
)

// Condition expressions shared by point and batch operations.
const (
	condIdentityFree = "attribute_not_exists(PK) AND attribute_not_exists(RK)"
	condExists       = "attribute_exists(PK)"
	condTagMatch     = "attribute_exists(PK) AND ETag = :etag"
)

// TableRepository implements repository.Repository[T] against a single
// DynamoDB table. It is stateless apart from the cached table handle.
type TableRepository[T storagemodels.Keyed] struct {
	conn      *Connection
	tableName string

	// Cached table handle: resolved lazily on first use, read-only
	// afterwards and safely shared across concurrent calls.
	resolveOnce sync.Once
	table       StoreClient
	resolveErr  error
}

// NewTableRepository constructs a repository for record type T over the
// named table. The connection must be non-nil and the table name non-empty;
// violations fail synchronously, before any network call.
func NewTableRepository[T storagemodels.Keyed](conn *Connection, tableName string) (*TableRepository[T], error) {
	if conn == nil {
		return nil, storeerr.NewValidationError("connection", "must not be nil")
	}
	if tableName == "" {
		return nil, storeerr.NewValidationError("tableName", "must not be empty")
	}
	return &TableRepository[T]{
		conn:      conn,
		tableName: tableName,
	}, nil
}

// TableName returns the name of the backing table.
func (r *TableRepository[T]) TableName() string {
	return r.tableName
}

// resolveTable resolves and caches the table handle. Resolution is lazy and
// idempotent; the handle is a lightweight reference, so there is no teardown.
func (r *TableRepository[T]) resolveTable(ctx context.Context) (StoreClient, error) {
	r.resolveOnce.Do(func() {
		r.table, r.resolveErr = r.conn.Client(ctx)
	})
	return r.table, r.resolveErr
}

func tableKey(partitionKey, rowKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPartitionKey: &types.AttributeValueMemberS{Value: partitionKey},
		attrRowKey:       &types.AttributeValueMemberS{Value: rowKey},
	}
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

func identityKey(partitionKey, rowKey string) string {
	return partitionKey + "/" + rowKey
}

// marshalRecord converts a record to its stored representation. The stored
// copy always carries a freshly generated version tag; the caller's record
// is left untouched.
func (r *TableRepository[T]) marshalRecord(record T) (map[string]types.AttributeValue, error) {
	partitionKey, rowKey := record.EntityKey()
	if partitionKey == "" || rowKey == "" {
		return nil, storeerr.NewValidationError("record", "partition key and row key must not be empty")
	}

	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	av[attrPartitionKey] = &types.AttributeValueMemberS{Value: partitionKey}
	av[attrRowKey] = &types.AttributeValueMemberS{Value: rowKey}
	av[attrVersionTag] = &types.AttributeValueMemberS{Value: uuid.NewString()}
	return av, nil
}

func isConditionalCheckFailed(err error) bool {
	var ccfe *types.ConditionalCheckFailedException
	return errors.As(err, &ccfe)
}

// Get fetches exactly one record by identity. A nonexistent identity yields
// (nil, nil), not an error.
func (r *TableRepository[T]) Get(ctx context.Context, partitionKey, rowKey string) (*T, error) {
	client, err := r.resolveTable(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.tableName,
		Key:       tableKey(partitionKey, rowKey),
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Add inserts a record, failing with a conflict error if a record with the
// same identity already exists.
func (r *TableRepository[T]) Add(ctx context.Context, record T) error {
	client, err := r.resolveTable(ctx)
	if err != nil {
		return err
	}

	item, err := r.marshalRecord(record)
	if err != nil {
		return err
	}

	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.tableName,
		Item:                item,
		ConditionExpression: aws.String(condIdentityFree),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			partitionKey, rowKey := record.EntityKey()
			return storeerr.NewAlreadyExistsError(typeName[T](), identityKey(partitionKey, rowKey))
		}
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// AddOrUpdate upserts a record unconditionally, ignoring version tags.
func (r *TableRepository[T]) AddOrUpdate(ctx context.Context, record T) error {
	client, err := r.resolveTable(ctx)
	if err != nil {
		return err
	}

	item, err := r.marshalRecord(record)
	if err != nil {
		return err
	}

	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Update replaces an existing record. The record's version tag must match
// the server's current tag unless it is storagemodels.VersionTagAny.
func (r *TableRepository[T]) Update(ctx context.Context, record T) error {
	client, err := r.resolveTable(ctx)
	if err != nil {
		return err
	}

	tag := record.VersionTag()
	if tag == "" {
		return storeerr.NewValidationError("versionTag", "record has no version tag; read it first or use VersionTagAny")
	}

	item, err := r.marshalRecord(record)
	if err != nil {
		return err
	}

	input := &dynamodb.PutItemInput{
		TableName: &r.tableName,
		Item:      item,
	}
	if tag == storagemodels.VersionTagAny {
		input.ConditionExpression = aws.String(condExists)
	} else {
		input.ConditionExpression = aws.String(condTagMatch)
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":etag": &types.AttributeValueMemberS{Value: tag},
		}
	}

	_, err = client.PutItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			partitionKey, rowKey := record.EntityKey()
			return storeerr.NewConflictError("update", identityKey(partitionKey, rowKey))
		}
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes a record by identity. With ignoreVersion false the delete
// intent carries no version override and the store may reject the call if
// the record was concurrently removed; the check is a pass-through, not
// enforced locally.
func (r *TableRepository[T]) Delete(ctx context.Context, partitionKey, rowKey string, ignoreVersion bool) error {
	client, err := r.resolveTable(ctx)
	if err != nil {
		return err
	}

	input := &dynamodb.DeleteItemInput{
		TableName: &r.tableName,
		Key:       tableKey(partitionKey, rowKey),
	}
	if !ignoreVersion {
		input.ConditionExpression = aws.String(condExists)
	}

	_, err = client.DeleteItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return storeerr.NewConflictError("delete", identityKey(partitionKey, rowKey))
		}
		return fmt.Errorf("DeleteItem failed: %w", err)
	}
	return nil
}
