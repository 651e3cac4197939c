/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
)

var (
	tableRegistry = make(map[reflect.Type]string)
	mu            sync.RWMutex
)

// RegisterTableName associates a Go type T with the name of the table its
// records live in. Registering the same type twice overwrites the earlier
// entry.
func RegisterTableName[T any](tableName string) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.Lock()
	defer mu.Unlock()
	tableRegistry[t] = tableName
}

// GetTableName retrieves the registered table name for type T, if any.
func GetTableName[T any]() (string, bool) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.RLock()
	defer mu.RUnlock()
	name, ok := tableRegistry[t]
	return name, ok
}

// RegisteredTables returns a snapshot of every registered table name,
// deduplicated. Useful for tooling that wants to inspect or verify the
// tables an application depends on.
func RegisteredTables() []string {
	mu.RLock()
	defer mu.RUnlock()

	seen := make(map[string]struct{}, len(tableRegistry))
	names := make([]string, 0, len(tableRegistry))
	for _, name := range tableRegistry {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
