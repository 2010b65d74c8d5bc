package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"portfolio-hub/internal/database"

	"github.com/google/uuid"
)

// fakeDB hands out fakeTx transactions and otherwise satisfies database.DB
// with no-ops; the cascade tests only need Begin.
type fakeDB struct {
	tx *fakeTx
}

func (f *fakeDB) Ping(_ context.Context) error { return nil }
func (f *fakeDB) Close() error                 { return nil }
func (f *fakeDB) SQLDB() *sql.DB               { return nil }

func (f *fakeDB) Exec(_ context.Context, _ string, _ ...any) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeDB) Query(_ context.Context, _ string, _ ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, _ ...any) database.Row {
	return nil
}

func (f *fakeDB) Begin(_ context.Context) (database.Tx, error) {
	return f.tx, nil
}

// fakeTx records every executed statement and can be told to fail once a
// statement touches the named table.
type fakeTx struct {
	executed    []string
	failOnTable string

	commits   int
	rollbacks int
}

var errInduced = errors.New("induced failure")

func (t *fakeTx) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	if t.failOnTable != "" && strings.Contains(query, t.failOnTable) {
		return 0, errInduced
	}
	t.executed = append(t.executed, query)
	return 1, nil
}

func (t *fakeTx) Query(_ context.Context, _ string, _ ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}

func (t *fakeTx) QueryRow(_ context.Context, _ string, _ ...any) database.Row {
	return nil
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.commits++
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	t.rollbacks++
	return nil
}

func TestUserRepository_DeleteCascade_AllOrNothing(t *testing.T) {
	tx := &fakeTx{failOnTable: "user_skills"}
	repo := NewPostgresUserRepository(&fakeDB{tx: tx})

	err := repo.DeleteCascade(context.Background(), uuid.New())
	if !errors.Is(err, errInduced) {
		t.Fatalf("expected the induced failure to surface, got %v", err)
	}

	if tx.commits != 0 {
		t.Fatalf("commit must never run after a mid-cascade failure, got %d", tx.commits)
	}
	if tx.rollbacks != 1 {
		t.Fatalf("expected exactly one rollback, got %d", tx.rollbacks)
	}
	for _, q := range tx.executed {
		if strings.Contains(q, "DELETE FROM users ") || strings.HasSuffix(q, "users WHERE id = $1") {
			t.Fatalf("user row must not be deleted after a failed cascade step: %q", q)
		}
	}
}

func TestUserRepository_DeleteCascade_CommitsInOrder(t *testing.T) {
	tx := &fakeTx{}
	repo := NewPostgresUserRepository(&fakeDB{tx: tx})

	if err := repo.DeleteCascade(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if tx.commits != 1 || tx.rollbacks != 0 {
		t.Fatalf("expected one commit and no rollback, got %d/%d", tx.commits, tx.rollbacks)
	}

	want := []string{"projects", "experience", "user_skills", "users"}
	if len(tx.executed) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(tx.executed))
	}
	for i, table := range want {
		if !strings.Contains(tx.executed[i], table) {
			t.Fatalf("statement %d should target %s, got %q", i, table, tx.executed[i])
		}
	}
}
