package repository

import (
	"context"
	"errors"

	"portfolio-hub/internal/database"
	"portfolio-hub/internal/domain/user"
	"portfolio-hub/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, full_name, email, password_hash, bio, role, join_date`

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, full_name, email, password_hash, bio, role, join_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.FullName, u.Email, u.PasswordHash, u.Bio, u.Role, u.JoinDate,
	)
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) GetRole(ctx context.Context, id uuid.UUID) (user.Role, error) {
	var role user.Role
	row := r.db.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, id)
	if err := row.Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", user.ErrNotFound
		}
		return "", err
	}
	return role, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE users
		 SET full_name = $1, email = $2, password_hash = $3, bio = $4, role = $5
		 WHERE id = $6`,
		u.FullName, u.Email, u.PasswordHash, u.Bio, u.Role, u.ID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) List(ctx context.Context, f user.ListFilter) ([]user.User, int, error) {
	where, args := query.Build(
		query.OneOf(f.Search, "full_name", "email"),
		query.Equals("role", f.Role),
	)

	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users `+where, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	p := query.NewPagination(f.Page, f.Limit)
	sql, args := paginate(
		`SELECT `+userColumns+` FROM users `+where+` ORDER BY join_date DESC, id ASC`,
		args, p,
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Bio, &u.Role, &u.JoinDate); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// DeleteCascade removes the user and all owned rows in dependency order
// inside one transaction. A failure at any step rolls back every delete.
func (r *PostgresUserRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return database.RunInTx(ctx, r.db, func(tx database.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM projects WHERE user_id = $1`,
			`DELETE FROM experience WHERE user_id = $1`,
			`DELETE FROM user_skills WHERE user_id = $1`,
		} {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return err
			}
		}

		rowsAffected, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return user.ErrNotFound
		}
		return nil
	})
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Bio, &u.Role, &u.JoinDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
