package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"role-match/internal/database"
	"role-match/internal/domain/run"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PipelineRunRepository interface {
	Create(ctx context.Context, r run.Run) error
	Finish(ctx context.Context, id uuid.UUID, status run.Status, summary run.Summary, errMsg string, finishedAt time.Time) error
	Latest(ctx context.Context) (run.Run, error)
}

type PostgresPipelineRunRepository struct {
	db database.DB
}

func NewPostgresPipelineRunRepository(db database.DB) *PostgresPipelineRunRepository {
	return &PostgresPipelineRunRepository{db: db}
}

func (r *PostgresPipelineRunRepository) Create(ctx context.Context, pr run.Run) error {
	if pr.ID == uuid.Nil {
		return errors.New("empty run id")
	}
	if pr.StartedAt.IsZero() {
		pr.StartedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO pipeline_runs (id, status, started_at) VALUES ($1,$2,$3)`,
		pr.ID,
		string(pr.Status),
		pr.StartedAt,
	)
	return err
}

func (r *PostgresPipelineRunRepository) Finish(ctx context.Context, id uuid.UUID, status run.Status, summary run.Summary, errMsg string, finishedAt time.Time) error {
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}
	n, err := r.db.Exec(ctx,
		`UPDATE pipeline_runs SET
			status = $2,
			finished_at = $3,
			employees = $4,
			roles = $5,
			skills = $6,
			recommendations = $7,
			unresolved_skill_ids = $8,
			uncatalogued_skills = $9,
			error = $10
		 WHERE id = $1`,
		id,
		string(status),
		finishedAt,
		summary.Employees,
		summary.Roles,
		summary.Skills,
		summary.Recommendations,
		summary.UnresolvedSkillIDs,
		summary.UncataloguedSkills,
		errMsg,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPipelineRunRepository) Latest(ctx context.Context) (run.Run, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, status, started_at, finished_at,
			employees, roles, skills, recommendations, unresolved_skill_ids, uncatalogued_skills, error
		 FROM pipeline_runs
		 ORDER BY started_at DESC
		 LIMIT 1`,
	)

	var pr run.Run
	var status string
	if err := row.Scan(
		&pr.ID,
		&status,
		&pr.StartedAt,
		&pr.FinishedAt,
		&pr.Summary.Employees,
		&pr.Summary.Roles,
		&pr.Summary.Skills,
		&pr.Summary.Recommendations,
		&pr.Summary.UnresolvedSkillIDs,
		&pr.Summary.UncataloguedSkills,
		&pr.Error,
	); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return run.Run{}, ErrNotFound
		}
		return run.Run{}, err
	}
	pr.Status = run.Status(status)
	return pr, nil
}
