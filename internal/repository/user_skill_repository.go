package repository

import (
	"context"
	"errors"
	"fmt"

	"portfolio-hub/internal/database"
	"portfolio-hub/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserSkillNotFound = errors.New("user skill not found")

// UserSkill assigns one catalog skill to one user; the (user, skill) pair is
// unique at the store level.
type UserSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillDefID       uuid.UUID
	ProficiencyLevel int
}

// UserSkillRow is a user skill joined with its definition.
type UserSkillRow struct {
	UserSkill
	SkillName string
	Category  string
}

type UserSkillListRow struct {
	UserSkillRow
	OwnerName string
}

type UserSkillListFilter struct {
	Search string
	UserID string
	Page   int
	Limit  int
}

// ExpertRow is one user holding a searched skill, with how much public work
// backs it up.
type ExpertRow struct {
	UserID           uuid.UUID
	FullName         string
	Email            string
	Bio              string
	SkillName        string
	ProficiencyLevel int
	ProjectCount     int
}

type UserSkillRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]UserSkillRow, error)
	PairExists(ctx context.Context, userID, skillDefID uuid.UUID) (bool, error)
	Create(ctx context.Context, us UserSkill) (UserSkillRow, error)
	Update(ctx context.Context, id, userID uuid.UUID, proficiency int) (UserSkillRow, error)
	UpdateByID(ctx context.Context, id uuid.UUID, proficiency int) (uuid.UUID, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	DeleteByID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	List(ctx context.Context, f UserSkillListFilter) ([]UserSkillListRow, int, error)
	FindExperts(ctx context.Context, skill string, minProficiency int) ([]ExpertRow, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

const userSkillJoin = `
	FROM user_skills us
	JOIN skill_definitions sd ON sd.id = us.skill_def_id`

func (r *PostgresUserSkillRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]UserSkillRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_def_id, us.proficiency_level, sd.name, sd.category`+
			userSkillJoin+`
		 WHERE us.user_id = $1
		 ORDER BY us.proficiency_level DESC, sd.name ASC, us.id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserSkillRow, 0)
	for rows.Next() {
		var us UserSkillRow
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillDefID, &us.ProficiencyLevel, &us.SkillName, &us.Category); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) PairExists(ctx context.Context, userID, skillDefID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_skills WHERE user_id = $1 AND skill_def_id = $2)`,
		userID, skillDefID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, us UserSkill) (UserSkillRow, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_def_id, proficiency_level)
		 VALUES ($1, $2, $3, $4)`,
		us.ID, us.UserID, us.SkillDefID, us.ProficiencyLevel,
	)
	if err != nil {
		return UserSkillRow{}, err
	}
	return r.getRow(ctx, us.ID)
}

func (r *PostgresUserSkillRepository) Update(ctx context.Context, id, userID uuid.UUID, proficiency int) (UserSkillRow, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE user_skills SET proficiency_level = $1 WHERE id = $2 AND user_id = $3`,
		proficiency, id, userID,
	)
	if err != nil {
		return UserSkillRow{}, err
	}
	if rowsAffected == 0 {
		return UserSkillRow{}, ErrUserSkillNotFound
	}
	return r.getRow(ctx, id)
}

// UpdateByID is the admin update; the owner id comes back so callers can
// invalidate that user's cached portfolio.
func (r *PostgresUserSkillRepository) UpdateByID(ctx context.Context, id uuid.UUID, proficiency int) (uuid.UUID, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE user_skills SET proficiency_level = $1 WHERE id = $2 RETURNING user_id`,
		proficiency, id,
	)

	var ownerID uuid.UUID
	if err := row.Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrUserSkillNotFound
		}
		return uuid.Nil, err
	}
	return ownerID, nil
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}

func (r *PostgresUserSkillRepository) DeleteByID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := r.db.QueryRow(ctx, `DELETE FROM user_skills WHERE id = $1 RETURNING user_id`, id)

	var ownerID uuid.UUID
	if err := row.Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrUserSkillNotFound
		}
		return uuid.Nil, err
	}
	return ownerID, nil
}

func (r *PostgresUserSkillRepository) List(ctx context.Context, f UserSkillListFilter) ([]UserSkillListRow, int, error) {
	where, args := query.Build(
		query.OneOf(f.Search, "sd.name", "u.full_name"),
		query.Equals("us.user_id::text", f.UserID),
	)

	const adminJoin = `
		FROM user_skills us
		JOIN skill_definitions sd ON sd.id = us.skill_def_id
		JOIN users u ON u.id = us.user_id`

	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*)`+adminJoin+` `+where, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	p := query.NewPagination(f.Page, f.Limit)
	sql, args := paginate(
		`SELECT us.id, us.user_id, us.skill_def_id, us.proficiency_level, sd.name, sd.category, u.full_name`+
			adminJoin+` `+where+`
		 ORDER BY u.full_name ASC, sd.name ASC, us.id ASC`,
		args, p,
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]UserSkillListRow, 0)
	for rows.Next() {
		var us UserSkillListRow
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillDefID, &us.ProficiencyLevel, &us.SkillName, &us.Category, &us.OwnerName); err != nil {
			return nil, 0, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// FindExperts lists users whose skill name matches the search at or above the
// given proficiency, strongest first, ties broken by how many projects the
// user has published.
func (r *PostgresUserSkillRepository) FindExperts(ctx context.Context, skill string, minProficiency int) ([]ExpertRow, error) {
	where, args := query.Build(query.Contains("sd.name", skill))
	args = append(args, minProficiency)

	sql := fmt.Sprintf(
		`SELECT u.id, u.full_name, u.email, u.bio, sd.name, us.proficiency_level,
		        (SELECT COUNT(*) FROM projects p WHERE p.user_id = u.id) AS project_count
		 FROM user_skills us
		 JOIN skill_definitions sd ON sd.id = us.skill_def_id
		 JOIN users u ON u.id = us.user_id
		 %s AND us.proficiency_level >= $%d
		 ORDER BY us.proficiency_level DESC, project_count DESC, u.full_name ASC, u.id ASC`,
		where, len(args),
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ExpertRow, 0)
	for rows.Next() {
		var e ExpertRow
		if err := rows.Scan(&e.UserID, &e.FullName, &e.Email, &e.Bio, &e.SkillName, &e.ProficiencyLevel, &e.ProjectCount); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) getRow(ctx context.Context, id uuid.UUID) (UserSkillRow, error) {
	row := r.db.QueryRow(ctx,
		`SELECT us.id, us.user_id, us.skill_def_id, us.proficiency_level, sd.name, sd.category`+
			userSkillJoin+`
		 WHERE us.id = $1`,
		id,
	)

	var us UserSkillRow
	if err := row.Scan(&us.ID, &us.UserID, &us.SkillDefID, &us.ProficiencyLevel, &us.SkillName, &us.Category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserSkillRow{}, ErrUserSkillNotFound
		}
		return UserSkillRow{}, err
	}
	return us, nil
}
