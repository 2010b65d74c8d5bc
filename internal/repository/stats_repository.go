package repository

import (
	"context"

	"portfolio-hub/internal/database"
)

// Counts feeds the admin dashboard and the public landing stats.
type Counts struct {
	Users            int
	Projects         int
	Experience       int
	SkillDefinitions int
	UserSkills       int
}

type StatsRepository interface {
	Counts(ctx context.Context) (Counts, error)
}

type PostgresStatsRepository struct {
	db database.DB
}

func NewPostgresStatsRepository(db database.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	for _, q := range []struct {
		sql  string
		dest *int
	}{
		{`SELECT COUNT(1) FROM users`, &c.Users},
		{`SELECT COUNT(1) FROM projects`, &c.Projects},
		{`SELECT COUNT(1) FROM experience`, &c.Experience},
		{`SELECT COUNT(1) FROM skill_definitions`, &c.SkillDefinitions},
		{`SELECT COUNT(1) FROM user_skills`, &c.UserSkills},
	} {
		row := r.db.QueryRow(ctx, q.sql)
		if err := row.Scan(q.dest); err != nil {
			return Counts{}, err
		}
	}
	return c, nil
}
