/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablerepo

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/tablerepo/registry"
	"github.com/suparena/tablerepo/repository/ddb"
	"github.com/suparena/tablerepo/storagemodels"
)

// stubStoreClient satisfies ddb.StoreClient without reaching any store.
type stubStoreClient struct{}

func (stubStoreClient) GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{}, nil
}

func (stubStoreClient) PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return &dynamodb.PutItemOutput{}, nil
}

func (stubStoreClient) DeleteItem(context.Context, *dynamodb.DeleteItemInput, ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return &dynamodb.DeleteItemOutput{}, nil
}

func (stubStoreClient) Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return &dynamodb.QueryOutput{}, nil
}

func (stubStoreClient) Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return &dynamodb.ScanOutput{}, nil
}

func (stubStoreClient) TransactWriteItems(context.Context, *dynamodb.TransactWriteItemsInput, ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func (stubStoreClient) DescribeTable(context.Context, *dynamodb.DescribeTableInput, ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{}, nil
}

type registeredRecord struct {
	storagemodels.TableEntity
	Name string
}

type unregisteredRecord struct {
	storagemodels.TableEntity
}

func TestOpenRepository(t *testing.T) {
	conn := ddb.NewConnectionWithClient(stubStoreClient{})

	registry.RegisterTableName[registeredRecord]("records")
	repo, err := OpenRepository[registeredRecord](conn)
	if err != nil {
		t.Fatalf("OpenRepository failed: %v", err)
	}
	if repo == nil {
		t.Fatal("expected a repository")
	}

	if _, err := OpenRepository[unregisteredRecord](conn); err == nil {
		t.Fatal("expected an error for an unregistered type")
	}
}
