package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

// ListFilter narrows the admin user listing. Empty Search or a Role of
// ""/"all" leaves the corresponding filter off.
type ListFilter struct {
	Search string
	Role   string
	Page   int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// GetRole reads the current role from the store. Authorization decisions
	// go through this, never through data cached in a session.
	GetRole(ctx context.Context, id uuid.UUID) (Role, error)

	Update(ctx context.Context, u User) error
	List(ctx context.Context, f ListFilter) ([]User, int, error)

	// DeleteCascade removes the user and every row the user owns in one
	// transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}
