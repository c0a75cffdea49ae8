package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"role-match/internal/database"
	"role-match/internal/domain/match"
	"role-match/internal/domain/run"
	"role-match/internal/domain/skill"
)

var snapshotTables = []struct {
	name    string
	columns []string
}{
	{"skills", []string{"skill_id", "skill_name"}},
	{"roles", []string{"role_id", "role_ordinal", "role_name", "external_link", "required_skill_ids"}},
	{"employees", []string{"employee_id", "employee_ordinal", "source_id", "current_role", "assigned_skill_ids"}},
	{"recommendations", []string{"employee_id", "role_id", "role_ordinal", "match_score", "matched_skills", "missing_skills", "run_id"}},
	{"learning_paths", []string{"employee_id", "role_id", "match_score", "learning_path", "run_id"}},
}

type SnapshotRepository interface {
	Replace(ctx context.Context, s run.Snapshot) error
}

// PostgresSnapshotRepository stores the latest snapshot. It doubles as a
// pipeline sink.
type PostgresSnapshotRepository struct {
	db database.DB
}

func NewPostgresSnapshotRepository(db database.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

func (r *PostgresSnapshotRepository) Name() string { return "postgres" }

// Check fails with domain.ErrSchema when a snapshot table or column is
// missing.
func (r *PostgresSnapshotRepository) Check(ctx context.Context) error {
	for _, t := range snapshotTables {
		if err := database.EnsureTableColumns(ctx, r.db, t.name, t.columns...); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresSnapshotRepository) Write(ctx context.Context, s run.Snapshot) error {
	return r.Replace(ctx, s)
}

// Replace swaps every snapshot table for the contents of s in one
// transaction. Readers see either the previous snapshot or the new one.
func (r *PostgresSnapshotRepository) Replace(ctx context.Context, s run.Snapshot) error {
	if s.Vocabulary == nil {
		return fmt.Errorf("snapshot without vocabulary")
	}
	if err := r.Check(ctx); err != nil {
		return err
	}

	data, err := snapshotRows(s)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if _, err := tx.Exec(ctx, `TRUNCATE skills, roles, employees, recommendations, learning_paths`); err != nil {
		return err
	}

	for i, t := range snapshotTables {
		if _, err := tx.CopyFrom(ctx, t.name, t.columns, data[i]); err != nil {
			return fmt.Errorf("copy %s: %w", t.name, err)
		}
	}

	return tx.Commit(ctx)
}

// snapshotRows renders s into COPY rows, one slice per entry of snapshotTables.
func snapshotRows(s run.Snapshot) ([][][]any, error) {
	skills := s.Vocabulary.Skills()
	skillRows := make([][]any, 0, len(skills))
	for _, sk := range skills {
		skillRows = append(skillRows, []any{int32(sk.ID), sk.Name})
	}

	ordinal := make(map[string]int32, len(s.Roles))
	roleRows := make([][]any, 0, len(s.Roles))
	for i, ro := range s.Roles {
		ordinal[ro.ID] = int32(i + 1)
		roleRows = append(roleRows, []any{ro.ID, int32(i + 1), ro.Name, ro.ExternalLink, skillIDs(ro.RequiredSkills)})
	}

	empRows := make([][]any, 0, len(s.Employees))
	for i, e := range s.Employees {
		empRows = append(empRows, []any{e.ID, int32(i + 1), e.SourceID, e.CurrentRole, skillIDs(e.AssignedSkills)})
	}

	recRows := make([][]any, 0, len(s.Recommendations))
	for _, rec := range s.Recommendations {
		ord, ok := ordinal[rec.RoleID]
		if !ok {
			return nil, fmt.Errorf("recommendation for unknown role %s", rec.RoleID)
		}
		recRows = append(recRows, []any{
			rec.EmployeeID,
			rec.RoleID,
			ord,
			int32(rec.MatchScore),
			match.JoinSkills(rec.MatchedSkills),
			match.JoinSkills(rec.MissingSkills),
			s.RunID,
		})
	}

	pathRows := make([][]any, 0, len(s.LearningPaths))
	for _, lp := range s.LearningPaths {
		b, err := json.Marshal(lp.LearningPath)
		if err != nil {
			return nil, err
		}
		pathRows = append(pathRows, []any{lp.EmployeeID, lp.RoleID, int32(lp.MatchScore), string(b), s.RunID})
	}

	return [][][]any{skillRows, roleRows, empRows, recRows, pathRows}, nil
}

func skillIDs(s skill.Set) []int32 {
	ids := s.IDs()
	out := make([]int32, 0, len(ids))
	for _, id := range ids {
		out = append(out, int32(id))
	}
	return out
}
