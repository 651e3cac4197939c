/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerr "github.com/suparena/tablerepo/errors"
	"github.com/suparena/tablerepo/filter"
)

// Scan evaluates the predicate over the whole table and returns the fully
// materialized result set. Materialization is eager on purpose: the result
// is randomly indexable and re-iterable. Unscoped scans can be expensive;
// bounding them is the caller's responsibility.
func (r *TableRepository[T]) Scan(ctx context.Context, pred filter.Predicate) ([]T, error) {
	client, err := r.resolveTable(ctx)
	if err != nil {
		return nil, err
	}

	input := &dynamodb.ScanInput{
		TableName: &r.tableName,
	}
	if pred.IsSet() {
		expr, err := expression.NewBuilder().WithFilter(pred.Condition()).Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build filter expression: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	results := make([]T, 0)
	paginator := dynamodb.NewScanPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		typed, err := unmarshalItems[T](page.Items)
		if err != nil {
			return nil, err
		}
		results = append(results, typed...)
	}
	return results, nil
}

// ScanPartition restricts the scan to one partition: the partition-key
// equality condition is combined with the given predicates by logical AND.
// Partition-scoped queries are cheap and bounded on the backing store.
func (r *TableRepository[T]) ScanPartition(ctx context.Context, partitionKey string, preds ...filter.Predicate) ([]T, error) {
	if partitionKey == "" {
		return nil, storeerr.NewValidationError("partitionKey", "must not be empty")
	}
	client, err := r.resolveTable(ctx)
	if err != nil {
		return nil, err
	}

	keyCond := expression.Key(attrPartitionKey).Equal(expression.Value(partitionKey))
	builder := expression.NewBuilder().WithKeyCondition(keyCond)

	var combined filter.Predicate
	for _, p := range preds {
		combined = combined.And(p)
	}
	if combined.IsSet() {
		builder = builder.WithFilter(combined.Condition())
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 &r.tableName,
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	results := make([]T, 0)
	paginator := dynamodb.NewQueryPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}
		typed, err := unmarshalItems[T](page.Items)
		if err != nil {
			return nil, err
		}
		results = append(results, typed...)
	}
	return results, nil
}

func unmarshalItems[T any](items []map[string]types.AttributeValue) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		rec := new(T)
		if err := attributevalue.UnmarshalMap(item, rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item: %w", err)
		}
		out = append(out, *rec)
	}
	return out, nil
}
