package usecase

import (
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"portfolio-hub/internal/domain/user"
	"portfolio-hub/internal/session"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	byEmail map[string]user.User
	byID    map[uuid.UUID]user.User

	existsErr error
	createErr error

	created []user.User
	deleted []uuid.UUID
	updated []user.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail: make(map[string]user.User),
		byID:    make(map[uuid.UUID]user.User),
	}
}

func (m *mockUserRepo) add(u user.User) {
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, u)
	m.add(u)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserRepo) GetRole(_ context.Context, id uuid.UUID) (user.Role, error) {
	u, ok := m.byID[id]
	if !ok {
		return "", user.ErrNotFound
	}
	return u.Role, nil
}

func (m *mockUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return user.ErrNotFound
	}
	m.updated = append(m.updated, u)
	m.add(u)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, _ user.ListFilter) ([]user.User, int, error) {
	out := make([]user.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *mockUserRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	u, ok := m.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	delete(m.byID, id)
	delete(m.byEmail, u.Email)
	m.deleted = append(m.deleted, id)
	return nil
}

func newTestSessions() *session.Store {
	return session.NewStore(time.Hour, time.Hour, log.Default())
}

func hashPassword(t *testing.T, pw string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func TestAuth_Register_Success(t *testing.T) {
	repo := newMockUserRepo()
	sessions := newTestSessions()
	uc := NewAuthUsecase(repo, sessions)

	usr, token, err := uc.Register(context.Background(), RegisterInput{
		FullName: "  Ada Lovelace  ",
		Email:    "Ada@Example.COM",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if usr.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", usr.Email)
	}
	if usr.FullName != "Ada Lovelace" {
		t.Fatalf("expected trimmed name, got %q", usr.FullName)
	}
	if usr.Role != user.RoleUser {
		t.Fatalf("expected default role user, got %q", usr.Role)
	}
	if usr.PasswordHash != "" {
		t.Fatalf("password hash leaked in response")
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
	if sess, ok := sessions.Resolve(token); !ok || sess.UserID != usr.ID {
		t.Fatalf("expected register to log the user in")
	}
}

func TestAuth_Register_ShortPassword(t *testing.T) {
	uc := NewAuthUsecase(newMockUserRepo(), newTestSessions())

	_, _, err := uc.Register(context.Background(), RegisterInput{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "12345",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	repo.add(user.User{ID: uuid.New(), Email: "ada@example.com"})
	uc := NewAuthUsecase(repo, newTestSessions())

	_, _, err := uc.Register(context.Background(), RegisterInput{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "secret1",
	})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no create on duplicate email")
	}
}

func TestAuth_Login_Success(t *testing.T) {
	repo := newMockUserRepo()
	id := uuid.New()
	repo.add(user.User{
		ID:           id,
		FullName:     "Ada",
		Email:        "ada@example.com",
		PasswordHash: hashPassword(t, "secret1"),
		Role:         user.RoleUser,
	})
	sessions := newTestSessions()
	uc := NewAuthUsecase(repo, sessions)

	usr, token, err := uc.Login(context.Background(), LoginInput{
		Email:    "ADA@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if usr.ID != id {
		t.Fatalf("unexpected user")
	}
	if usr.PasswordHash != "" {
		t.Fatalf("password hash leaked in response")
	}
	if _, ok := sessions.Resolve(token); !ok {
		t.Fatalf("expected a live session after login")
	}
}

func TestAuth_Login_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	repo := newMockUserRepo()
	repo.add(user.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: hashPassword(t, "secret1"),
	})
	uc := NewAuthUsecase(repo, newTestSessions())

	_, _, errWrongPw := uc.Login(context.Background(), LoginInput{
		Email:    "ada@example.com",
		Password: "not-it",
	})
	_, _, errNoUser := uc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "secret1",
	})

	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrongPw)
	}
	if !errors.Is(errNoUser, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", errNoUser)
	}
}

func TestAuth_Logout_RevokesSession(t *testing.T) {
	repo := newMockUserRepo()
	sessions := newTestSessions()
	uc := NewAuthUsecase(repo, sessions)

	token, err := sessions.Create(uuid.New(), "ada@example.com", "Ada")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	uc.Logout(token)
	if _, ok := sessions.Resolve(token); ok {
		t.Fatalf("expected session to be revoked")
	}

	uc.Logout(token) // second logout is a no-op
}

func TestAuth_Me_ReadsFreshUser(t *testing.T) {
	repo := newMockUserRepo()
	id := uuid.New()
	repo.add(user.User{ID: id, FullName: "Ada", Email: "ada@example.com"})
	sessions := newTestSessions()
	uc := NewAuthUsecase(repo, sessions)

	token, err := sessions.Create(id, "ada@example.com", "Ada")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// An admin renames the account after login; Me must see the new name.
	repo.add(user.User{ID: id, FullName: "Ada L.", Email: "ada@example.com"})

	usr, err := uc.Me(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if usr.FullName != "Ada L." {
		t.Fatalf("expected fresh store state, got %q", usr.FullName)
	}
}

func TestAuth_Me_InvalidToken(t *testing.T) {
	uc := NewAuthUsecase(newMockUserRepo(), newTestSessions())

	if _, err := uc.Me(context.Background(), "bogus"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
