package repository

import (
	"fmt"

	"portfolio-hub/internal/query"
)

// paginate appends LIMIT/OFFSET placeholders after whatever arguments the
// predicate already bound.
func paginate(sql string, args []any, p query.Pagination) (string, []any) {
	args = append(args, p.Limit, p.Offset())
	return fmt.Sprintf("%s LIMIT $%d OFFSET $%d", sql, len(args)-1, len(args)), args
}
