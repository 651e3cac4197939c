/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// VersionTagAny is the wildcard version tag. A record (or operation
// descriptor) carrying this tag bypasses the optimistic concurrency check
// on replace and delete.
const VersionTagAny = "*"

// Keyed is implemented by every storable record type. Embedding
// TableEntity satisfies it.
type Keyed interface {
	// EntityKey returns the two-part identity of the record.
	EntityKey() (partitionKey, rowKey string)

	// VersionTag returns the record's optimistic concurrency token as last
	// read from the store. Empty for records never persisted.
	VersionTag() string
}

// TableEntity carries the identity and concurrency fields every stored
// record needs. Embed it (by value) in concrete record types.
//
// The attribute names match the physical table layout: "PK" and "RK" form
// the table's composite primary key, "ETag" holds the version tag written
// by the repository on every successful write.
type TableEntity struct {
	PartitionKey string `dynamodbav:"PK"`
	RowKey       string `dynamodbav:"RK"`
	ETag         string `dynamodbav:"ETag"`
}

// EntityKey returns the record's partition key and row key.
func (e TableEntity) EntityKey() (string, string) {
	return e.PartitionKey, e.RowKey
}

// VersionTag returns the record's version tag.
func (e TableEntity) VersionTag() string {
	return e.ETag
}
