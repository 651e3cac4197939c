/*
Package filter provides a small, composable predicate builder that
translates typed field conditions into the backing store's native filter
representation.

Rather than accepting arbitrary boolean expressions, the package exposes a
fixed set of composable primitives (equality, comparison, prefix match,
existence) combined with And/Or. This keeps predicate translation total:
every Predicate the package can express compiles to a valid native filter.

	pending := filter.Equal("Status", "pending")
	recent := filter.GreaterOrEqual("CreatedAt", cutoff)
	results, err := repo.Scan(ctx, pending.And(recent))

Unscoped predicate scans run against the whole table and can be expensive;
bounding them is the caller's responsibility. Prefer
Repository.ScanPartition when the partition key is known.
*/
package filter
