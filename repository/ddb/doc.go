/*
Package ddb provides the DynamoDB implementation of the Repository interface.

The TableRepository supports:
  - Point reads, inserts, upserts, replaces and deletes with optimistic
    concurrency via an ETag attribute
  - Predicate scans and partition-scoped queries with eager materialization
  - Batch writes grouped by partition key and chunked to the service's
    100-operation atomic batch ceiling, submitted concurrently
  - A fixed retry policy (exponential backoff, 5s base, 4 attempts)
    installed on the SDK client at construction

Table layout:

Every record occupies one item keyed by the composite primary key
("PK", "RK"). The repository writes a fresh "ETag" value on every
successful write; replace and delete operations condition on the caller's
last-read tag unless it is the wildcard "*".

Batching:

Batch operations bucket records by partition key in a single pass, split
each partition's operations into ordered chunks, and submit every chunk as
one TransactWriteItems call, all chunks in flight at once. One chunk
failing does not cancel its siblings; the first observed error is returned
after all chunks settle. Committed chunks are not rolled back.

Construction:

	conn := ddb.NewConnection(ddb.ConfigFromEnv())
	repo, err := ddb.NewTableRepository[MatchResult](conn, "scores")

The table handle is resolved lazily on the first operation and cached for
the repository's lifetime.
*/
package ddb
