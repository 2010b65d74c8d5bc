package repository

import (
	"context"
	"errors"
	"time"

	"portfolio-hub/internal/database"
	"portfolio-hub/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProjectNotFound = errors.New("project not found")

type Project struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	Description   string
	ProjectURL    string
	DateCompleted *time.Time
}

// ProjectListRow is the admin listing shape: the project plus its owner's
// display name.
type ProjectListRow struct {
	Project
	OwnerName string
}

type ProjectListFilter struct {
	Search string
	UserID string
	Page   int
	Limit  int
}

type ProjectRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Project, error)
	FindByID(ctx context.Context, id, userID uuid.UUID) (Project, error)
	Create(ctx context.Context, p Project) (Project, error)
	Update(ctx context.Context, p Project) (Project, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	DeleteByID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	List(ctx context.Context, f ProjectListFilter) ([]ProjectListRow, int, error)
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

const projectColumns = `id, user_id, title, description, project_url, date_completed`

func (r *PostgresProjectRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+`
		 FROM projects
		 WHERE user_id = $1
		 ORDER BY date_completed DESC NULLS LAST, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.ProjectURL, &p.DateCompleted); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	var p Project
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.ProjectURL, &p.DateCompleted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrProjectNotFound
		}
		return Project{}, err
	}
	return p, nil
}

func (r *PostgresProjectRepository) Create(ctx context.Context, p Project) (Project, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO projects (id, user_id, title, description, project_url, date_completed)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.UserID, p.Title, p.Description, p.ProjectURL, p.DateCompleted,
	)
	if err != nil {
		return Project{}, err
	}
	return p, nil
}

// Update is scoped by id AND owner so a caller can never mutate another
// user's row; a scope miss reads as not-found.
func (r *PostgresProjectRepository) Update(ctx context.Context, p Project) (Project, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE projects
		 SET title = $1, description = $2, project_url = $3, date_completed = $4
		 WHERE id = $5 AND user_id = $6`,
		p.Title, p.Description, p.ProjectURL, p.DateCompleted, p.ID, p.UserID,
	)
	if err != nil {
		return Project{}, err
	}
	if rowsAffected == 0 {
		return Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM projects WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// DeleteByID is the admin delete; the owner id comes back so callers can
// invalidate that user's cached portfolio.
func (r *PostgresProjectRepository) DeleteByID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := r.db.QueryRow(ctx, `DELETE FROM projects WHERE id = $1 RETURNING user_id`, id)

	var ownerID uuid.UUID
	if err := row.Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrProjectNotFound
		}
		return uuid.Nil, err
	}
	return ownerID, nil
}

func (r *PostgresProjectRepository) List(ctx context.Context, f ProjectListFilter) ([]ProjectListRow, int, error) {
	where, args := query.Build(
		query.OneOf(f.Search, "p.title", "p.description"),
		query.Equals("p.user_id::text", f.UserID),
	)

	var total int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects p JOIN users u ON u.id = p.user_id `+where,
		args...,
	)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	p := query.NewPagination(f.Page, f.Limit)
	sql, args := paginate(
		`SELECT p.id, p.user_id, p.title, p.description, p.project_url, p.date_completed, u.full_name
		 FROM projects p
		 JOIN users u ON u.id = p.user_id `+where+`
		 ORDER BY p.date_completed DESC NULLS LAST, p.id ASC`,
		args, p,
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]ProjectListRow, 0)
	for rows.Next() {
		var pr ProjectListRow
		if err := rows.Scan(&pr.ID, &pr.UserID, &pr.Title, &pr.Description, &pr.ProjectURL, &pr.DateCompleted, &pr.OwnerName); err != nil {
			return nil, 0, err
		}
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
