package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeGenerateInputs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"job_skills.csv":     "job_link,job_skills\nhttps://jobs/1,\"SQL, Excel\"\nhttps://jobs/2,Tableau\n",
		"job_postings.csv":   "job_link,job_title\nhttps://jobs/1,Data Analyst\nhttps://jobs/2,BI Developer\n",
		"Employees.csv":      "employee_id,original_emp_id,current_role\nE1,RM1,Clerk\nE2,RM2,Clerk\n",
		"EmployeeSkills.csv": "employee_id,skill_id\nE1,2\nE2,3\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestRunGenerate_WritesFilesAndPreview(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	in := writeGenerateInputs(t)
	out := filepath.Join(t.TempDir(), "out")
	logs := captureLog(t)

	code := runGenerate([]string{"-data-dir", in, "-out-dir", out, "-workers", "2", "-top", "1"})
	require.Equal(t, 0, code)

	_, err := os.Stat(filepath.Join(out, "Recommendations.csv"))
	require.NoError(t, err)

	require.Contains(t, logs.String(), "preview employee=E1 rank=1 role=R1 score=1")
	require.NotContains(t, logs.String(), "rank=2")
}

func TestRunGenerate_MissingInputReturnsNonZero(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	in := writeGenerateInputs(t)
	require.NoError(t, os.Remove(filepath.Join(in, "Employees.csv")))
	out := filepath.Join(t.TempDir(), "out")
	captureLog(t)

	code := runGenerate([]string{"-data-dir", in, "-out-dir", out})
	require.Equal(t, 1, code)

	_, err := os.Stat(out)
	require.True(t, os.IsNotExist(err))
}

func TestRunGenerate_BadFlag(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	captureLog(t)
	require.Equal(t, 2, runGenerate([]string{"-no-such-flag"}))
}
