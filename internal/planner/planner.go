// Package planner turns validated request parameters into SQL query plans:
// typed equality predicates, eager-fetch join specs, and keyset-paginated
// page/count statement pairs built with squirrel. It never executes anything;
// execution belongs to dbexec and the API layer.
package planner

import (
	"errors"
	"fmt"

	"ancine-api/internal/sqlutil"
)

// SQLQuery is a built SQL statement with its bound arguments.
type SQLQuery struct {
	SQL  string
	Args []any
}

var (
	// ErrInvalidParameter reports malformed pagination input (limit, last_id).
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidFilter reports a filter key outside the resource's allow-list
	// or a value that does not parse in the column's domain.
	ErrInvalidFilter = errors.New("invalid filter")
)

func qualified(table, column string) string {
	return fmt.Sprintf("%s.%s", sqlutil.QuoteIdentifier(table), sqlutil.QuoteIdentifier(column))
}

func sectionAlias(path []string, column string) string {
	name := column
	for i := len(path) - 1; i >= 0; i-- {
		name = path[i] + "__" + name
	}
	return name
}
