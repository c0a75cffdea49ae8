package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"role-match/internal/database"
	"role-match/internal/domain/learningpath"
	"role-match/internal/domain/match"

	"github.com/jackc/pgx/v5"
)

type RecommendationQueryRepository interface {
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	TopForEmployee(ctx context.Context, employeeID string, limit int) ([]match.Recommendation, error)
	LearningPath(ctx context.Context, employeeID, roleID string) (learningpath.Entry, error)
}

type PostgresRecommendationQueryRepository struct {
	db database.DB
}

func NewPostgresRecommendationQueryRepository(db database.DB) *PostgresRecommendationQueryRepository {
	return &PostgresRecommendationQueryRepository{db: db}
}

func (r *PostgresRecommendationQueryRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE employee_id = $1)`, employeeID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// TopForEmployee ranks by score and keeps role order among ties.
func (r *PostgresRecommendationQueryRepository) TopForEmployee(ctx context.Context, employeeID string, limit int) ([]match.Recommendation, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := r.db.Query(ctx,
		`SELECT employee_id, role_id, match_score, matched_skills, missing_skills
		 FROM recommendations
		 WHERE employee_id = $1
		 ORDER BY match_score DESC, role_ordinal ASC
		 LIMIT $2`,
		employeeID,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Recommendation, 0, limit)
	for rows.Next() {
		var rec match.Recommendation
		var matched, missing string
		if err := rows.Scan(&rec.EmployeeID, &rec.RoleID, &rec.MatchScore, &matched, &missing); err != nil {
			return nil, err
		}
		rec.MatchedSkills = match.SplitSkills(matched)
		rec.MissingSkills = match.SplitSkills(missing)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRecommendationQueryRepository) LearningPath(ctx context.Context, employeeID, roleID string) (learningpath.Entry, error) {
	row := r.db.QueryRow(ctx,
		`SELECT employee_id, role_id, match_score, learning_path::text
		 FROM learning_paths
		 WHERE employee_id = $1 AND role_id = $2`,
		employeeID,
		roleID,
	)

	var e learningpath.Entry
	var raw string
	if err := row.Scan(&e.EmployeeID, &e.RoleID, &e.MatchScore, &raw); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return learningpath.Entry{}, ErrNotFound
		}
		return learningpath.Entry{}, err
	}
	if err := json.Unmarshal([]byte(raw), &e.LearningPath); err != nil {
		return learningpath.Entry{}, err
	}
	return e, nil
}
