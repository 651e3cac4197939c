/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// fakeStoreClient implements StoreClient for unit tests. Behavior is
// injected per call via function fields; calls and inputs are recorded.
type fakeStoreClient struct {
	mu sync.Mutex

	getItemFn    func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	putItemFn    func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	deleteItemFn func(*dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error)
	queryFn      func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	scanFn       func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
	transactFn   func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error)

	getInputs      []*dynamodb.GetItemInput
	putInputs      []*dynamodb.PutItemInput
	deleteInputs   []*dynamodb.DeleteItemInput
	queryInputs    []*dynamodb.QueryInput
	scanInputs     []*dynamodb.ScanInput
	transactInputs []*dynamodb.TransactWriteItemsInput
}

func (f *fakeStoreClient) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	f.getInputs = append(f.getInputs, params)
	fn := f.getItemFn
	f.mu.Unlock()
	if fn != nil {
		return fn(params)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeStoreClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	f.putInputs = append(f.putInputs, params)
	fn := f.putItemFn
	f.mu.Unlock()
	if fn != nil {
		return fn(params)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeStoreClient) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	f.deleteInputs = append(f.deleteInputs, params)
	fn := f.deleteItemFn
	f.mu.Unlock()
	if fn != nil {
		return fn(params)
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeStoreClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	f.queryInputs = append(f.queryInputs, params)
	fn := f.queryFn
	f.mu.Unlock()
	if fn != nil {
		return fn(params)
	}
	return &dynamodb.QueryOutput{}, nil
}

func (f *fakeStoreClient) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	f.scanInputs = append(f.scanInputs, params)
	fn := f.scanFn
	f.mu.Unlock()
	if fn != nil {
		return fn(params)
	}
	return &dynamodb.ScanOutput{}, nil
}

func (f *fakeStoreClient) TransactWriteItems(_ context.Context, params *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	f.transactInputs = append(f.transactInputs, params)
	fn := f.transactFn
	f.mu.Unlock()
	if fn != nil {
		return fn(params)
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func (f *fakeStoreClient) DescribeTable(_ context.Context, _ *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{}, nil
}

func (f *fakeStoreClient) transactCalls() []*dynamodb.TransactWriteItemsInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*dynamodb.TransactWriteItemsInput, len(f.transactInputs))
	copy(out, f.transactInputs)
	return out
}
