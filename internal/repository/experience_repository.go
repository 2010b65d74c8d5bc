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

var ErrExperienceNotFound = errors.New("experience not found")

// Experience is one work-history entry. A nil EndDate means the position is
// current.
type Experience struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	JobTitle  string
	Company   string
	StartDate time.Time
	EndDate   *time.Time
}

type ExperienceListRow struct {
	Experience
	OwnerName string
}

type ExperienceListFilter struct {
	Search string
	UserID string
	Page   int
	Limit  int
}

type ExperienceRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Experience, error)
	Create(ctx context.Context, e Experience) (Experience, error)
	Update(ctx context.Context, e Experience) (Experience, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	DeleteByID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	List(ctx context.Context, f ExperienceListFilter) ([]ExperienceListRow, int, error)
}

type PostgresExperienceRepository struct {
	db database.DB
}

func NewPostgresExperienceRepository(db database.DB) *PostgresExperienceRepository {
	return &PostgresExperienceRepository{db: db}
}

func (r *PostgresExperienceRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Experience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, job_title, company, start_date, end_date
		 FROM experience
		 WHERE user_id = $1
		 ORDER BY start_date DESC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Experience, 0)
	for rows.Next() {
		var e Experience
		if err := rows.Scan(&e.ID, &e.UserID, &e.JobTitle, &e.Company, &e.StartDate, &e.EndDate); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresExperienceRepository) Create(ctx context.Context, e Experience) (Experience, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO experience (id, user_id, job_title, company, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.UserID, e.JobTitle, e.Company, e.StartDate, e.EndDate,
	)
	if err != nil {
		return Experience{}, err
	}
	return e, nil
}

func (r *PostgresExperienceRepository) Update(ctx context.Context, e Experience) (Experience, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE experience
		 SET job_title = $1, company = $2, start_date = $3, end_date = $4
		 WHERE id = $5 AND user_id = $6`,
		e.JobTitle, e.Company, e.StartDate, e.EndDate, e.ID, e.UserID,
	)
	if err != nil {
		return Experience{}, err
	}
	if rowsAffected == 0 {
		return Experience{}, ErrExperienceNotFound
	}
	return e, nil
}

func (r *PostgresExperienceRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM experience WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrExperienceNotFound
	}
	return nil
}

// DeleteByID is the admin delete; the owner id comes back so callers can
// invalidate that user's cached portfolio.
func (r *PostgresExperienceRepository) DeleteByID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := r.db.QueryRow(ctx, `DELETE FROM experience WHERE id = $1 RETURNING user_id`, id)

	var ownerID uuid.UUID
	if err := row.Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrExperienceNotFound
		}
		return uuid.Nil, err
	}
	return ownerID, nil
}

func (r *PostgresExperienceRepository) List(ctx context.Context, f ExperienceListFilter) ([]ExperienceListRow, int, error) {
	where, args := query.Build(
		query.OneOf(f.Search, "e.job_title", "e.company"),
		query.Equals("e.user_id::text", f.UserID),
	)

	var total int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM experience e JOIN users u ON u.id = e.user_id `+where,
		args...,
	)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	p := query.NewPagination(f.Page, f.Limit)
	sql, args := paginate(
		`SELECT e.id, e.user_id, e.job_title, e.company, e.start_date, e.end_date, u.full_name
		 FROM experience e
		 JOIN users u ON u.id = e.user_id `+where+`
		 ORDER BY e.start_date DESC, e.id ASC`,
		args, p,
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]ExperienceListRow, 0)
	for rows.Next() {
		var er ExperienceListRow
		if err := rows.Scan(&er.ID, &er.UserID, &er.JobTitle, &er.Company, &er.StartDate, &er.EndDate, &er.OwnerName); err != nil {
			return nil, 0, err
		}
		out = append(out, er)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
