package repository

import (
	"context"
	"errors"

	"portfolio-hub/internal/database"
	"portfolio-hub/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSkillDefinitionNotFound = errors.New("skill definition not found")

// SkillDefinition is a shared catalog entry; it is not owned by any user.
type SkillDefinition struct {
	ID       uuid.UUID
	Name     string
	Category string
}

type SkillDefinitionListFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

type SkillDefinitionRepository interface {
	FindAll(ctx context.Context, search, category string) ([]SkillDefinition, error)
	List(ctx context.Context, f SkillDefinitionListFilter) ([]SkillDefinition, int, error)
	Create(ctx context.Context, s SkillDefinition) (SkillDefinition, error)
	GetByID(ctx context.Context, id uuid.UUID) (SkillDefinition, error)
	Update(ctx context.Context, s SkillDefinition) (SkillDefinition, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// CountReferences reports how many user_skills rows point at the
	// definition; the delete guard rejects deletion while it is nonzero.
	CountReferences(ctx context.Context, id uuid.UUID) (int, error)
}

type PostgresSkillDefinitionRepository struct {
	db database.DB
}

func NewPostgresSkillDefinitionRepository(db database.DB) *PostgresSkillDefinitionRepository {
	return &PostgresSkillDefinitionRepository{db: db}
}

// FindAll is the unpaginated catalog read used by skill pickers.
func (r *PostgresSkillDefinitionRepository) FindAll(ctx context.Context, search, category string) ([]SkillDefinition, error) {
	where, args := query.Build(
		query.Contains("name", search),
		query.Equals("category", category),
	)

	rows, err := r.db.Query(ctx,
		`SELECT id, name, category FROM skill_definitions `+where+` ORDER BY name ASC, id ASC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSkillDefinitions(rows)
}

func (r *PostgresSkillDefinitionRepository) List(ctx context.Context, f SkillDefinitionListFilter) ([]SkillDefinition, int, error) {
	where, args := query.Build(
		query.Contains("name", f.Search),
		query.Equals("category", f.Category),
	)

	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM skill_definitions `+where, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	p := query.NewPagination(f.Page, f.Limit)
	sql, args := paginate(
		`SELECT id, name, category FROM skill_definitions `+where+` ORDER BY name ASC, id ASC`,
		args, p,
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanSkillDefinitions(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresSkillDefinitionRepository) Create(ctx context.Context, s SkillDefinition) (SkillDefinition, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_definitions (id, name, category) VALUES ($1, $2, $3)`,
		s.ID, s.Name, s.Category,
	)
	if err != nil {
		return SkillDefinition{}, err
	}
	return s, nil
}

func (r *PostgresSkillDefinitionRepository) Update(ctx context.Context, s SkillDefinition) (SkillDefinition, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE skill_definitions SET name = $1, category = $2 WHERE id = $3`,
		s.Name, s.Category, s.ID,
	)
	if err != nil {
		return SkillDefinition{}, err
	}
	if rowsAffected == 0 {
		return SkillDefinition{}, ErrSkillDefinitionNotFound
	}
	return s, nil
}

func (r *PostgresSkillDefinitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM skill_definitions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSkillDefinitionNotFound
	}
	return nil
}

func (r *PostgresSkillDefinitionRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skill_definitions WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillDefinitionRepository) CountReferences(ctx context.Context, id uuid.UUID) (int, error) {
	var c int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_skills WHERE skill_def_id = $1`, id)
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func scanSkillDefinitions(rows database.Rows) ([]SkillDefinition, error) {
	out := make([]SkillDefinition, 0)
	for rows.Next() {
		var s SkillDefinition
		if err := rows.Scan(&s.ID, &s.Name, &s.Category); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID is used by the admin update path to verify existence up front.
func (r *PostgresSkillDefinitionRepository) GetByID(ctx context.Context, id uuid.UUID) (SkillDefinition, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, category FROM skill_definitions WHERE id = $1`, id)

	var s SkillDefinition
	if err := row.Scan(&s.ID, &s.Name, &s.Category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SkillDefinition{}, ErrSkillDefinitionNotFound
		}
		return SkillDefinition{}, err
	}
	return s, nil
}
