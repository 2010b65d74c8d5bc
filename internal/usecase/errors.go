package usecase

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors shared across usecases. Handlers translate these to HTTP
// statuses; anything else surfaces as a generic 500.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")

	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	ErrInvalidProficiency = errors.New("invalid proficiency level")
	ErrInvalidDateRange   = errors.New("end date cannot be before start date")
	ErrInvalidCategory    = errors.New("invalid skill category")
	ErrInvalidRole        = errors.New("invalid role")

	ErrSkillAlreadyAssigned = errors.New("skill already assigned")
	ErrSkillNameTaken       = errors.New("skill name already exists")
	ErrSkillDefinitionInUse = errors.New("cannot delete: skill is in use")
)

// The application-level pre-checks are a fast path for friendly messages;
// the store-level constraints are the final arbiter, so constraint
// violations coming back from Postgres are classified here.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514"
	}
	return false
}
