package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"role-match/internal/domain"
	"role-match/internal/domain/employee"
	"role-match/internal/domain/role"
	"role-match/internal/domain/skill"
)

const (
	ColJobLink       = "job_link"
	ColJobSkills     = "job_skills"
	ColJobTitle      = "job_title"
	ColEmployeeID    = "employee_id"
	ColOriginalEmpID = "original_emp_id"
	ColCurrentRole   = "current_role"
	ColSkillID       = "skill_id"
)

type Files struct {
	JobSkills      string
	JobPostings    string
	Employees      string
	EmployeeSkills string
}

func DefaultFiles(dir string) Files {
	return Files{
		JobSkills:      filepath.Join(dir, "job_skills.csv"),
		JobPostings:    filepath.Join(dir, "job_postings.csv"),
		Employees:      filepath.Join(dir, "Employees.csv"),
		EmployeeSkills: filepath.Join(dir, "EmployeeSkills.csv"),
	}
}

// Dataset holds every input the engine needs, fully materialized.
type Dataset struct {
	Vocabulary *skill.Vocabulary
	Roles      []role.Role
	Employees  []employee.Employee
}

// Load reads all sources and builds the vocabulary, roles and employees.
// Any missing file or column aborts the whole load.
func Load(ctx context.Context, files Files, baseline string) (Dataset, error) {
	skillsTbl, err := readTable(files.JobSkills, ColJobLink, ColJobSkills)
	if err != nil {
		return Dataset{}, err
	}
	postingsTbl, err := readTable(files.JobPostings, ColJobLink, ColJobTitle)
	if err != nil {
		return Dataset{}, err
	}
	employeesTbl, err := readTable(files.Employees, ColEmployeeID, ColOriginalEmpID, ColCurrentRole)
	if err != nil {
		return Dataset{}, err
	}
	assignTbl, err := readTable(files.EmployeeSkills, ColEmployeeID, ColSkillID)
	if err != nil {
		return Dataset{}, err
	}
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}

	blobs, blobByLink := skillBlobs(skillsTbl)
	vocab, err := skill.Normalize(blobs, baseline)
	if err != nil {
		return Dataset{}, err
	}

	roles := buildRoles(postingsTbl, blobByLink, vocab)

	employees, err := buildEmployees(employeesTbl, assignTbl)
	if err != nil {
		return Dataset{}, err
	}

	return Dataset{Vocabulary: vocab, Roles: roles, Employees: employees}, nil
}

func skillBlobs(t *table) ([]string, map[string]string) {
	blobs := make([]string, 0, len(t.rows))
	byLink := make(map[string]string, len(t.rows))
	for _, row := range t.rows {
		blob := t.value(row, ColJobSkills)
		link := t.value(row, ColJobLink)
		if link != "" {
			byLink[link] = blob
		}
		if blob == "" {
			continue
		}
		blobs = append(blobs, blob)
	}
	return blobs, byLink
}

func buildRoles(t *table, blobByLink map[string]string, vocab *skill.Vocabulary) []role.Role {
	type key struct{ link, title string }
	seen := make(map[key]struct{}, len(t.rows))

	out := make([]role.Role, 0, len(t.rows))
	for _, row := range t.rows {
		k := key{link: t.value(row, ColJobLink), title: t.value(row, ColJobTitle)}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}

		out = append(out, role.Role{
			ID:             "R" + strconv.Itoa(len(out)+1),
			Name:           k.title,
			ExternalLink:   k.link,
			RequiredSkills: vocab.SetFromBlob(blobByLink[k.link]),
		})
	}
	return out
}

func buildEmployees(empTbl, assignTbl *table) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(empTbl.rows))
	index := make(map[string]int, len(empTbl.rows))
	for i, row := range empTbl.rows {
		id := empTbl.value(row, ColEmployeeID)
		if id == "" {
			return nil, fmt.Errorf("%w: %s row %d has empty %s", domain.ErrSchema, empTbl.path, i+2, ColEmployeeID)
		}
		if _, ok := index[id]; ok {
			return nil, fmt.Errorf("%w: %s duplicate %s %q", domain.ErrSchema, empTbl.path, ColEmployeeID, id)
		}
		index[id] = len(out)
		out = append(out, employee.Employee{
			ID:             id,
			SourceID:       empTbl.value(row, ColOriginalEmpID),
			CurrentRole:    empTbl.value(row, ColCurrentRole),
			AssignedSkills: skill.NewSet(),
		})
	}

	for i, row := range assignTbl.rows {
		empID := assignTbl.value(row, ColEmployeeID)
		pos, ok := index[empID]
		if !ok {
			continue
		}
		raw := assignTbl.value(row, ColSkillID)
		sid, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d invalid %s %q", domain.ErrSchema, assignTbl.path, i+2, ColSkillID, raw)
		}
		out[pos].AssignedSkills.Add(skill.ID(sid))
	}

	return out, nil
}
