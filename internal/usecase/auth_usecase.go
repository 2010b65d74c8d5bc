package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"portfolio-hub/internal/domain/user"
	"portfolio-hub/internal/session"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Bio      string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, string, error)
	Login(ctx context.Context, in LoginInput) (user.User, string, error)
	Logout(token string)
	Me(ctx context.Context, token string) (user.User, error)
}

type Auth struct {
	users    user.Repository
	sessions *session.Store
}

func NewAuthUsecase(users user.Repository, sessions *session.Store) *Auth {
	return &Auth{users: users, sessions: sessions}
}

// Register creates the account and logs it in, returning the sanitized user
// and the new session token.
func (u *Auth) Register(ctx context.Context, in RegisterInput) (user.User, string, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := normalizeEmail(in.Email)
	if fullName == "" || email == "" {
		return user.User{}, "", ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, "", ErrInvalidInput
	}

	exists, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, "", ErrInternal
	}
	if exists {
		return user.User{}, "", ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	usr := user.User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Bio:          strings.TrimSpace(in.Bio),
		Role:         user.RoleUser,
		JoinDate:     time.Now().UTC(),
	}

	if err := u.users.Create(ctx, usr); err != nil {
		// The store enforces email uniqueness; the pre-check above only
		// narrows the race window.
		if isUniqueViolation(err) {
			return user.User{}, "", ErrEmailAlreadyRegistered
		}
		return user.User{}, "", ErrInternal
	}

	token, err := u.sessions.Create(usr.ID, usr.Email, usr.FullName)
	if err != nil {
		return user.User{}, "", ErrInternal
	}
	return sanitizeUser(usr), token, nil
}

// Login verifies credentials and issues a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (u *Auth) Login(ctx context.Context, in LoginInput) (user.User, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, "", ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", ErrInvalidCredentials
		}
		return user.User{}, "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := u.sessions.Create(usr.ID, usr.Email, usr.FullName)
	if err != nil {
		return user.User{}, "", ErrInternal
	}
	return sanitizeUser(usr), token, nil
}

func (u *Auth) Logout(token string) {
	u.sessions.Revoke(token)
}

// Me resolves the session and returns the current account state from the
// store, not from session-cached data.
func (u *Auth) Me(ctx context.Context, token string) (user.User, error) {
	sess, ok := u.sessions.Resolve(token)
	if !ok {
		return user.User{}, ErrInvalidCredentials
	}

	usr, err := u.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 6
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
