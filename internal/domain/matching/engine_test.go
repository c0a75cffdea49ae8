package matching

import (
	"fmt"
	"testing"

	"role-match/internal/domain/employee"
	"role-match/internal/domain/role"
	"role-match/internal/domain/skill"

	"github.com/stretchr/testify/require"
)

func exampleVocabulary(t *testing.T) *skill.Vocabulary {
	t.Helper()
	v, err := skill.NewVocabulary([]skill.Skill{
		{ID: 1, Name: "SQL"},
		{ID: 2, Name: "Excel"},
		{ID: 3, Name: "Python"},
	})
	require.NoError(t, err)
	return v
}

func TestCalculate_Example(t *testing.T) {
	v := exampleVocabulary(t)
	e := employee.Employee{ID: "E1", AssignedSkills: skill.NewSet(1, 3)}
	r := role.Role{ID: "R1", RequiredSkills: skill.NewSet(1, 2)}

	rec := Calculate(v, e, r)
	require.Equal(t, "E1", rec.EmployeeID)
	require.Equal(t, "R1", rec.RoleID)
	require.Equal(t, []string{"SQL"}, rec.MatchedSkills)
	require.Equal(t, []string{"Excel"}, rec.MissingSkills)
	require.Equal(t, 1, rec.MatchScore)
}

func TestCalculate_EmptyRole(t *testing.T) {
	v := exampleVocabulary(t)
	e := employee.Employee{ID: "E1", AssignedSkills: skill.NewSet(1, 2, 3)}
	r := role.Role{ID: "R9"}

	rec := Calculate(v, e, r)
	require.Equal(t, 0, rec.MatchScore)
	require.Empty(t, rec.MatchedSkills)
	require.Empty(t, rec.MissingSkills)
}

func TestCalculate_EmployeeWithoutSkills(t *testing.T) {
	v := exampleVocabulary(t)
	rec := Calculate(v, employee.Employee{ID: "E2"}, role.Role{ID: "R1", RequiredSkills: skill.NewSet(1, 2)})
	require.Empty(t, rec.MatchedSkills)
	require.Equal(t, []string{"SQL", "Excel"}, rec.MissingSkills)
	require.Equal(t, 0, rec.MatchScore)
}

func TestCalculate_UnknownSkillIDIsIgnored(t *testing.T) {
	v := exampleVocabulary(t)
	r := role.Role{ID: "R1", RequiredSkills: skill.NewSet(1, 2)}

	with := Calculate(v, employee.Employee{ID: "E1", AssignedSkills: skill.NewSet(1, 42)}, r)
	without := Calculate(v, employee.Employee{ID: "E1", AssignedSkills: skill.NewSet(1)}, r)
	require.Equal(t, without, with)

	rolePlusUnknown := role.Role{ID: "R1", RequiredSkills: skill.NewSet(1, 2, 77)}
	require.Equal(t, without, Calculate(v, employee.Employee{ID: "E1", AssignedSkills: skill.NewSet(1)}, rolePlusUnknown))
}

func TestCrossProduct_ShapeAndOrder(t *testing.T) {
	blobs := []string{
		"SQL, Excel, Tableau",
		"Python, Machine Learning, SQL",
		"Go, Docker, Kubernetes, AWS",
		"",
	}
	v, err := skill.Normalize(blobs, skill.DefaultBaseline)
	require.NoError(t, err)

	roles := make([]role.Role, 0, len(blobs))
	for i, b := range blobs {
		roles = append(roles, role.Role{ID: fmt.Sprintf("R%d", i+1), RequiredSkills: v.SetFromBlob(b)})
	}

	all := v.Skills()
	employees := make([]employee.Employee, 0)
	for i := 0; i < 6; i++ {
		s := skill.NewSet()
		for j, sk := range all {
			if (i+j)%3 == 0 {
				s.Add(sk.ID)
			}
		}
		if i == 5 {
			s.Add(1000)
		}
		employees = append(employees, employee.Employee{ID: fmt.Sprintf("E%d", i+1), AssignedSkills: s})
	}

	recs := CrossProduct(v, employees, roles)
	require.Len(t, recs, len(employees)*len(roles))

	seen := map[string]struct{}{}
	for i, rec := range recs {
		key := rec.EmployeeID + "/" + rec.RoleID
		_, dup := seen[key]
		require.False(t, dup, "duplicate pair %s", key)
		seen[key] = struct{}{}

		require.Equal(t, employees[i/len(roles)].ID, rec.EmployeeID)
		r := roles[i%len(roles)]
		require.Equal(t, r.ID, rec.RoleID)

		required, _ := v.Names(r.RequiredSkills)
		union := map[string]struct{}{}
		for _, m := range rec.MatchedSkills {
			union[m] = struct{}{}
		}
		for _, m := range rec.MissingSkills {
			_, overlap := union[m]
			require.False(t, overlap, "skill %s both matched and missing", m)
			union[m] = struct{}{}
		}
		require.Len(t, union, len(required))
		for _, name := range required {
			require.Contains(t, union, name)
		}

		require.Equal(t, len(rec.MatchedSkills), rec.MatchScore)
		require.GreaterOrEqual(t, rec.MatchScore, 0)
		require.LessOrEqual(t, rec.MatchScore, len(required))
	}
}

func TestRoleProfile_CountsUnresolved(t *testing.T) {
	v := exampleVocabulary(t)
	p := RoleProfile(v, role.Role{ID: "R1", RequiredSkills: skill.NewSet(1, 8, 9)})
	require.Equal(t, []string{"SQL"}, p.Skills)
	require.Equal(t, 2, p.Unresolved)
}
