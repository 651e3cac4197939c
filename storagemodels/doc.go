/*
Package storagemodels defines the shared data model for TableRepo.

Every stored record carries a two-part identity (partition key + row key)
and an opaque version tag used for optimistic concurrency. Records embed
TableEntity to pick up those fields and satisfy the Keyed interface:

	type MatchResult struct {
	    storagemodels.TableEntity

	    Winner string `dynamodbav:"Winner"`
	    Loser  string `dynamodbav:"Loser"`
	}

The wildcard version tag VersionTagAny ("*") disables the concurrency
check on replace and delete operations.

The package also provides the functional options shared by all batch
operations (chunk size override, ignore-version flag).
*/
package storagemodels
