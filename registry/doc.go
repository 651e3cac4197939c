/*
Package registry maps Go record types to the tables that store them.

Applications register their types once during initialization, typically
in init() functions:

	registry.RegisterTableName[MatchResult]("match-results")

The root package's OpenRepository uses the registration to construct a
repository without the caller naming the table at every call site:

	repo, err := tablerepo.OpenRepository[MatchResult](conn)

The registry is thread-safe.
*/
package registry
