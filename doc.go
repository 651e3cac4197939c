/*
Package tablerepo provides a typed data-access layer over a partitioned
key-value table, with optimistic concurrency through opaque version tags
and concurrent, partition-grouped batch writes.

Records embed storagemodels.TableEntity to gain an identity (partition
key plus row key) and a version tag. Every successful write stores a
fresh tag; updates and deletes compare the caller's tag against the
stored one and fail with a conflict when they differ. The wildcard tag
"*" skips the comparison.

Key Features:
  - Type-safe operations using Go generics
  - Point reads and writes with insert/upsert/replace semantics
  - Predicate scans with eagerly materialized results
  - Batch writes grouped by partition key and executed concurrently
  - Semantic error types for better error handling
  - Thread-safe repository management
  - In-memory mock implementation for testing

Basic Usage:

	// Connect and register tables
	conn := ddb.NewConnection(ddb.ConfigFromEnv())
	registry.RegisterTableName[MatchResult]("match-results")

	// Open a typed repository
	repo, _ := tablerepo.OpenRepository[MatchResult](conn)

	match := MatchResult{...}
	err := repo.Add(ctx, match)

	// Manage several repositories behind one manager
	mts := tablerepo.NewMultiTypeStorage()
	tablerepo.RegisterRepository(mts, "matches", repo)

For more information, see the documentation at https://github.com/suparena/tablerepo
*/
package tablerepo
