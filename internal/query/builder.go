// Package query builds parameterized SQL predicates and pagination bounds
// from declarative filter sets. Filter values only ever travel as bound
// arguments; column names are compile-time constants supplied by the
// repositories, never request input.
package query

import "fmt"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// EqualsAll is the sentinel an exact-match filter treats as "no filter".
const EqualsAll = "all"

type Filter interface {
	apply(b *builder)
}

type containsFilter struct {
	field string
	text  string
}

type equalsFilter struct {
	field string
	value string
}

type oneOfFilter struct {
	fields []string
	text   string
}

// Contains matches rows whose field contains text, case-insensitively.
// Empty text disables the filter.
func Contains(field, text string) Filter {
	return containsFilter{field: field, text: text}
}

// Equals matches rows whose field equals value exactly. An empty value or
// the "all" sentinel disables the filter.
func Equals(field, value string) Filter {
	return equalsFilter{field: field, value: value}
}

// OneOf matches rows where any of the fields contains text (logical OR),
// case-insensitively. Empty text disables the filter.
func OneOf(text string, fields ...string) Filter {
	return oneOfFilter{fields: fields, text: text}
}

type builder struct {
	clauses []string
	args    []any
}

func (b *builder) placeholder(arg any) string {
	b.args = append(b.args, arg)
	return fmt.Sprintf("$%d", len(b.args))
}

func (f containsFilter) apply(b *builder) {
	if f.text == "" {
		return
	}
	b.clauses = append(b.clauses, f.field+" ILIKE "+b.placeholder("%"+f.text+"%"))
}

func (f equalsFilter) apply(b *builder) {
	if f.value == "" || f.value == EqualsAll {
		return
	}
	b.clauses = append(b.clauses, f.field+" = "+b.placeholder(f.value))
}

func (f oneOfFilter) apply(b *builder) {
	if f.text == "" || len(f.fields) == 0 {
		return
	}
	clause := "("
	for i, field := range f.fields {
		if i > 0 {
			clause += " OR "
		}
		// Each branch binds its own placeholder so parameters stay unique.
		clause += field + " ILIKE " + b.placeholder("%"+f.text+"%")
	}
	clause += ")"
	b.clauses = append(b.clauses, clause)
}

// Build renders filters into a WHERE clause with positional placeholders
// starting at $1, AND-combined, plus the bound arguments. The clause is the
// empty string when every filter is a no-op, and is reusable verbatim in a
// COUNT and a SELECT of the same shape.
func Build(filters ...Filter) (string, []any) {
	b := &builder{}
	for _, f := range filters {
		if f == nil {
			continue
		}
		f.apply(b)
	}

	if len(b.clauses) == 0 {
		return "", nil
	}

	where := "WHERE " + b.clauses[0]
	for _, c := range b.clauses[1:] {
		where += " AND " + c
	}
	return where, b.args
}
