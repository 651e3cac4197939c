/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablerepo

import (
	"fmt"

	"github.com/suparena/tablerepo/registry"
	"github.com/suparena/tablerepo/repository"
	"github.com/suparena/tablerepo/repository/ddb"
	"github.com/suparena/tablerepo/storagemodels"
)

// OpenRepository constructs a table-backed repository for type T using the
// table name registered for T. The type must have been registered with
// registry.RegisterTableName beforehand.
func OpenRepository[T storagemodels.Keyed](conn *ddb.Connection) (repository.Repository[T], error) {
	var zero T
	tableName, ok := registry.GetTableName[T]()
	if !ok {
		return nil, fmt.Errorf("no table registered for type %T", zero)
	}
	return ddb.NewTableRepository[T](conn, tableName)
}
