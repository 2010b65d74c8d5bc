package query

import (
	"reflect"
	"testing"
)

func TestBuild_Empty(t *testing.T) {
	where, args := Build()
	if where != "" {
		t.Fatalf("expected empty clause, got %q", where)
	}
	if args != nil {
		t.Fatalf("expected nil args, got %v", args)
	}
}

func TestBuild_AllFiltersDisabled(t *testing.T) {
	where, args := Build(
		Contains("title", ""),
		Equals("role", ""),
		Equals("role", EqualsAll),
		OneOf("", "title", "description"),
	)
	if where != "" {
		t.Fatalf("expected empty clause, got %q", where)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestBuild_Contains(t *testing.T) {
	where, args := Build(Contains("name", "go"))
	if where != "WHERE name ILIKE $1" {
		t.Fatalf("unexpected clause: %q", where)
	}
	if !reflect.DeepEqual(args, []any{"%go%"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuild_Equals(t *testing.T) {
	where, args := Build(Equals("role", "admin"))
	if where != "WHERE role = $1" {
		t.Fatalf("unexpected clause: %q", where)
	}
	if !reflect.DeepEqual(args, []any{"admin"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuild_OneOf_UniquePlaceholders(t *testing.T) {
	where, args := Build(OneOf("smith", "full_name", "email"))
	want := "WHERE (full_name ILIKE $1 OR email ILIKE $2)"
	if where != want {
		t.Fatalf("unexpected clause: %q", where)
	}
	if !reflect.DeepEqual(args, []any{"%smith%", "%smith%"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuild_CombinedAndNumbering(t *testing.T) {
	where, args := Build(
		OneOf("dev", "title", "description"),
		Equals("user_id::text", "abc"),
		Contains("company", "acme"),
	)
	want := "WHERE (title ILIKE $1 OR description ILIKE $2) AND user_id::text = $3 AND company ILIKE $4"
	if where != want {
		t.Fatalf("unexpected clause: %q", where)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(args))
	}
}

func TestBuild_SkipsDisabledBetweenActive(t *testing.T) {
	where, args := Build(
		Contains("name", "go"),
		Equals("category", EqualsAll),
		Equals("role", "user"),
	)
	want := "WHERE name ILIKE $1 AND role = $2"
	if where != want {
		t.Fatalf("unexpected clause: %q", where)
	}
	if !reflect.DeepEqual(args, []any{"%go%", "user"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuild_ValueNeverInterpolated(t *testing.T) {
	hostile := "'; DROP TABLE users; --"
	where, args := Build(Contains("name", hostile))
	if where != "WHERE name ILIKE $1" {
		t.Fatalf("filter value leaked into SQL: %q", where)
	}
	if !reflect.DeepEqual(args, []any{"%" + hostile + "%"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}
