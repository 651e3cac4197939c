/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerr "github.com/suparena/tablerepo/errors"
	"github.com/suparena/tablerepo/storagemodels"
)

func TestNewTableRepositoryValidation(t *testing.T) {
	if _, err := NewTableRepository[testRecord](nil, "table"); !storeerr.IsValidationError(err) {
		t.Errorf("nil connection should fail validation, got %v", err)
	}
	if _, err := NewTableRepository[testRecord](NewConnectionWithClient(&fakeStoreClient{}), ""); !storeerr.IsValidationError(err) {
		t.Errorf("empty table name should fail validation, got %v", err)
	}
	repo, err := NewTableRepository[testRecord](NewConnectionWithClient(&fakeStoreClient{}), "scores")
	if err != nil {
		t.Fatalf("valid construction failed: %v", err)
	}
	if repo.TableName() != "scores" {
		t.Errorf("unexpected table name %q", repo.TableName())
	}
}

func TestGetAbsentReturnsNilNil(t *testing.T) {
	fake := &fakeStoreClient{
		getItemFn: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		},
	}
	repo := newTestRepo(t, fake)

	rec, err := repo.Get(context.Background(), "P1", "missing")
	if err != nil {
		t.Fatalf("absence must not be an error, got %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record for absent identity, got %+v", rec)
	}
}

func TestGetFound(t *testing.T) {
	fake := &fakeStoreClient{
		getItemFn: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{
				Item: map[string]types.AttributeValue{
					attrPartitionKey: &types.AttributeValueMemberS{Value: "P1"},
					attrRowKey:       &types.AttributeValueMemberS{Value: "R1"},
					attrVersionTag:   &types.AttributeValueMemberS{Value: "tag-7"},
					"Name":           &types.AttributeValueMemberS{Value: "alpha"},
				},
			}, nil
		},
	}
	repo := newTestRepo(t, fake)

	rec, err := repo.Get(context.Background(), "P1", "R1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.PartitionKey != "P1" || rec.RowKey != "R1" || rec.ETag != "tag-7" || rec.Name != "alpha" {
		t.Errorf("unexpected record %+v", rec)
	}

	in := fake.getInputs[0]
	if got := in.Key[attrPartitionKey].(*types.AttributeValueMemberS).Value; got != "P1" {
		t.Errorf("unexpected key partition %q", got)
	}
}

func TestAddSetsInsertConditionAndFreshTag(t *testing.T) {
	fake := &fakeStoreClient{}
	repo := newTestRepo(t, fake)

	rec := newTestRecord("P1", "R1")
	rec.Name = "alpha"
	if err := repo.Add(context.Background(), rec); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	in := fake.putInputs[0]
	if in.ConditionExpression == nil || *in.ConditionExpression != condIdentityFree {
		t.Fatalf("expected identity-free condition, got %v", in.ConditionExpression)
	}
	stored := in.Item[attrVersionTag].(*types.AttributeValueMemberS).Value
	if stored == "" || stored == rec.ETag {
		t.Errorf("stored record must carry a fresh version tag, got %q", stored)
	}
	if got := in.Item[attrPartitionKey].(*types.AttributeValueMemberS).Value; got != "P1" {
		t.Errorf("unexpected PK attribute %q", got)
	}
}

func TestAddConflictOnExistingIdentity(t *testing.T) {
	fake := &fakeStoreClient{
		putItemFn: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		},
	}
	repo := newTestRepo(t, fake)

	err := repo.Add(context.Background(), newTestRecord("P1", "R1"))
	if !storeerr.IsAlreadyExists(err) {
		t.Fatalf("expected already-exists error, got %v", err)
	}
	if !storeerr.IsConflict(err) {
		t.Fatalf("duplicate identity should read as a conflict, got %v", err)
	}
}

func TestAddOrUpdateIsUnconditional(t *testing.T) {
	fake := &fakeStoreClient{}
	repo := newTestRepo(t, fake)

	rec := newTestRecord("P1", "R1")
	rec.ETag = "stale-tag"
	if err := repo.AddOrUpdate(context.Background(), rec); err != nil {
		t.Fatalf("AddOrUpdate failed: %v", err)
	}
	if fake.putInputs[0].ConditionExpression != nil {
		t.Fatalf("upsert must be unconditional, got %q", *fake.putInputs[0].ConditionExpression)
	}
}

func TestUpdateVersionTagHandling(t *testing.T) {
	t.Run("missing tag fails validation", func(t *testing.T) {
		fake := &fakeStoreClient{}
		repo := newTestRepo(t, fake)

		err := repo.Update(context.Background(), newTestRecord("P1", "R1"))
		if !storeerr.IsValidationError(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if len(fake.putInputs) != 0 {
			t.Fatal("validation failure must not reach the store")
		}
	})

	t.Run("wildcard skips the version check", func(t *testing.T) {
		fake := &fakeStoreClient{}
		repo := newTestRepo(t, fake)

		rec := newTestRecord("P1", "R1")
		rec.ETag = storagemodels.VersionTagAny
		if err := repo.Update(context.Background(), rec); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		in := fake.putInputs[0]
		if in.ConditionExpression == nil || *in.ConditionExpression != condExists {
			t.Fatalf("expected existence-only condition, got %v", in.ConditionExpression)
		}
	})

	t.Run("stale tag surfaces a conflict", func(t *testing.T) {
		fake := &fakeStoreClient{
			putItemFn: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
				return nil, &types.ConditionalCheckFailedException{}
			},
		}
		repo := newTestRepo(t, fake)

		rec := newTestRecord("P1", "R1")
		rec.ETag = "stale-tag"
		err := repo.Update(context.Background(), rec)
		if !storeerr.IsConflict(err) {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})

	t.Run("tag is sent as the condition value", func(t *testing.T) {
		fake := &fakeStoreClient{}
		repo := newTestRepo(t, fake)

		rec := newTestRecord("P1", "R1")
		rec.ETag = "tag-3"
		if err := repo.Update(context.Background(), rec); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		in := fake.putInputs[0]
		if in.ConditionExpression == nil || *in.ConditionExpression != condTagMatch {
			t.Fatalf("expected tag-match condition, got %v", in.ConditionExpression)
		}
		etag := in.ExpressionAttributeValues[":etag"].(*types.AttributeValueMemberS).Value
		if etag != "tag-3" {
			t.Errorf("expected :etag tag-3, got %q", etag)
		}
	})
}

func TestDeleteConditions(t *testing.T) {
	fake := &fakeStoreClient{}
	repo := newTestRepo(t, fake)

	if err := repo.Delete(context.Background(), "P1", "R1", false); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	in := fake.deleteInputs[0]
	if in.ConditionExpression == nil || *in.ConditionExpression != condExists {
		t.Fatalf("expected existence condition, got %v", in.ConditionExpression)
	}

	if err := repo.Delete(context.Background(), "P1", "R1", true); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fake.deleteInputs[1].ConditionExpression != nil {
		t.Fatal("ignore-version delete must be unconditional")
	}
}

func TestDeleteConflict(t *testing.T) {
	fake := &fakeStoreClient{
		deleteItemFn: func(*dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		},
	}
	repo := newTestRepo(t, fake)

	err := repo.Delete(context.Background(), "P1", "R1", false)
	if !storeerr.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}
