package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"role-match/internal/domain/learningpath"
	"role-match/internal/domain/match"
	"role-match/internal/domain/role"
	"role-match/internal/domain/run"
	"role-match/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testSnapshot(t *testing.T) run.Snapshot {
	t.Helper()
	v, err := skill.NewVocabulary([]skill.Skill{{ID: 1, Name: "SQL"}, {ID: 2, Name: "Excel"}, {ID: 3, Name: "Python"}})
	require.NoError(t, err)

	rec := match.Recommendation{
		EmployeeID:    "E1",
		RoleID:        "R1",
		MatchScore:    1,
		MatchedSkills: []string{"SQL"},
		MissingSkills: []string{"Excel", "Cobol"},
	}
	a := learningpath.NewAnnotator(learningpath.Catalog{"Excel": {"https://exceljet.net/"}}, "")

	return run.Snapshot{
		RunID:           uuid.New(),
		Vocabulary:      v,
		Roles:           []role.Role{{ID: "R1", Name: "Analyst", ExternalLink: "https://jobs/1"}},
		Recommendations: []match.Recommendation{rec},
		LearningPaths:   []learningpath.Entry{a.Annotate(rec)},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestFileWriter_WritesAllFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewFileWriter(dir)

	require.NoError(t, w.Write(context.Background(), testSnapshot(t)))

	require.Equal(t, [][]string{
		{"employee_id", "role_id", "match_score", "matched_skills", "missing_skills"},
		{"E1", "R1", "1", "SQL", "Excel, Cobol"},
	}, readCSV(t, filepath.Join(dir, RecommendationsFile)))

	require.Equal(t, [][]string{
		{"skill_id", "skill_name"},
		{"1", "SQL"},
		{"2", "Excel"},
		{"3", "Python"},
	}, readCSV(t, filepath.Join(dir, SkillsFile)))

	require.Equal(t, [][]string{
		{"role_external_link", "role_name", "role_id"},
		{"https://jobs/1", "Analyst", "R1"},
	}, readCSV(t, filepath.Join(dir, RolesFile)))

	b, err := os.ReadFile(filepath.Join(dir, LearningPathsFile))
	require.NoError(t, err)
	require.JSONEq(t, `[{
		"employee_id": "E1",
		"role_id": "R1",
		"match_score": 1,
		"learning_path": {
			"Excel": ["https://exceljet.net/"],
			"Cobol": ["No resource found (add manually)"]
		}
	}]`, string(b))

	var entries []learningpath.Entry
	require.NoError(t, json.Unmarshal(b, &entries))
	require.Equal(t, []string{"Excel", "Cobol"}, entries[0].LearningPath.Skills())

	leftovers, err := filepath.Glob(filepath.Join(dir, ".staging-*"))
	require.NoError(t, err)
	require.Empty(t, leftovers)
}

func TestFileWriter_CanceledContextWritesNothing(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFileWriter(dir).Write(ctx, testSnapshot(t))
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(filepath.Join(dir, RecommendationsFile))
	require.True(t, os.IsNotExist(statErr))
}

func TestFileWriter_EmptyDir(t *testing.T) {
	require.Error(t, NewFileWriter("").Write(context.Background(), run.Snapshot{}))
}

func TestFileWriter_CheckCreatesDirWithoutOutputs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, NewFileWriter(dir).Check(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	require.Error(t, NewFileWriter("").Check(context.Background()))
}
