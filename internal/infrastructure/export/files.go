package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"role-match/internal/domain/learningpath"
	"role-match/internal/domain/match"
	"role-match/internal/domain/run"
)

const (
	SkillsFile          = "Skills.csv"
	RolesFile           = "Roles.csv"
	RecommendationsFile = "Recommendations.csv"
	LearningPathsFile   = "LearningPaths.json"
)

// FileWriter writes a snapshot as CSV/JSON files. Files are staged in a
// temporary directory and moved into Dir only once every file is written.
type FileWriter struct {
	Dir string
}

func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{Dir: dir}
}

func (w *FileWriter) Name() string { return "files" }

// Check makes sure Dir exists and is writable without touching any output.
func (w *FileWriter) Check(ctx context.Context) error {
	if w == nil || w.Dir == "" {
		return fmt.Errorf("export: empty output dir")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(w.Dir, ".check-")
	if err != nil {
		return fmt.Errorf("export: output dir not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

func (w *FileWriter) Write(ctx context.Context, s run.Snapshot) error {
	if w == nil || w.Dir == "" {
		return fmt.Errorf("export: empty output dir")
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}

	stage, err := os.MkdirTemp(w.Dir, ".staging-")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.RemoveAll(stage)
	}()

	steps := []struct {
		name  string
		write func(path string) error
	}{
		{SkillsFile, func(p string) error { return writeCSV(p, skillRows(s)) }},
		{RolesFile, func(p string) error { return writeCSV(p, roleRows(s)) }},
		{RecommendationsFile, func(p string) error { return writeCSV(p, recommendationRows(s.Recommendations)) }},
		{LearningPathsFile, func(p string) error { return writeJSON(p, s) }},
	}

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := st.write(filepath.Join(stage, st.name)); err != nil {
			return fmt.Errorf("export %s: %w", st.name, err)
		}
	}

	for _, st := range steps {
		if err := os.Rename(filepath.Join(stage, st.name), filepath.Join(w.Dir, st.name)); err != nil {
			return fmt.Errorf("export %s: %w", st.name, err)
		}
	}
	return nil
}

func skillRows(s run.Snapshot) [][]string {
	rows := [][]string{{"skill_id", "skill_name"}}
	for _, sk := range s.Vocabulary.Skills() {
		rows = append(rows, []string{strconv.Itoa(int(sk.ID)), sk.Name})
	}
	return rows
}

func roleRows(s run.Snapshot) [][]string {
	rows := [][]string{{"role_external_link", "role_name", "role_id"}}
	for _, r := range s.Roles {
		rows = append(rows, []string{r.ExternalLink, r.Name, r.ID})
	}
	return rows
}

func recommendationRows(recs []match.Recommendation) [][]string {
	rows := make([][]string, 0, len(recs)+1)
	rows = append(rows, []string{"employee_id", "role_id", "match_score", "matched_skills", "missing_skills"})
	for _, r := range recs {
		rows = append(rows, []string{
			r.EmployeeID,
			r.RoleID,
			strconv.Itoa(r.MatchScore),
			match.JoinSkills(r.MatchedSkills),
			match.JoinSkills(r.MissingSkills),
		})
	}
	return rows
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(path string, s run.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	entries := s.LearningPaths
	if entries == nil {
		entries = []learningpath.Entry{}
	}
	if err := enc.Encode(entries); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
