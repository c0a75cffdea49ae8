package matching

import (
	"role-match/internal/domain/employee"
	"role-match/internal/domain/match"
	"role-match/internal/domain/role"
	"role-match/internal/domain/skill"
)

// Profile is an entity's skill set resolved to names through the vocabulary.
// Comparison happens on names, not ids, so two ids sharing a name count once.
type Profile struct {
	ID         string
	Skills     []string
	Unresolved int

	index map[string]struct{}
}

func newProfile(id string, vocab *skill.Vocabulary, s skill.Set) Profile {
	names, unresolved := vocab.Names(s)
	idx := make(map[string]struct{}, len(names))
	for _, n := range names {
		idx[n] = struct{}{}
	}
	return Profile{ID: id, Skills: names, Unresolved: unresolved, index: idx}
}

func EmployeeProfile(vocab *skill.Vocabulary, e employee.Employee) Profile {
	return newProfile(e.ID, vocab, e.AssignedSkills)
}

func RoleProfile(vocab *skill.Vocabulary, r role.Role) Profile {
	return newProfile(r.ID, vocab, r.RequiredSkills)
}

func (p Profile) Has(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Score compares one employee with one role. Matched and missing skills
// follow the role's requirement order.
func Score(emp, r Profile) match.Recommendation {
	matched := make([]string, 0, len(r.Skills))
	missing := make([]string, 0)
	for _, name := range r.Skills {
		if emp.Has(name) {
			matched = append(matched, name)
			continue
		}
		missing = append(missing, name)
	}

	return match.Recommendation{
		EmployeeID:    emp.ID,
		RoleID:        r.ID,
		MatchScore:    len(matched),
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}

// ScoreEmployee scores one employee against every role, in role order.
func ScoreEmployee(emp Profile, roles []Profile) []match.Recommendation {
	out := make([]match.Recommendation, 0, len(roles))
	for _, r := range roles {
		out = append(out, Score(emp, r))
	}
	return out
}

func Calculate(vocab *skill.Vocabulary, e employee.Employee, r role.Role) match.Recommendation {
	return Score(EmployeeProfile(vocab, e), RoleProfile(vocab, r))
}

// CrossProduct scores every employee against every role, employee-major.
func CrossProduct(vocab *skill.Vocabulary, employees []employee.Employee, roles []role.Role) []match.Recommendation {
	rps := RoleProfiles(vocab, roles)
	out := make([]match.Recommendation, 0, len(employees)*len(roles))
	for _, e := range employees {
		out = append(out, ScoreEmployee(EmployeeProfile(vocab, e), rps)...)
	}
	return out
}

func RoleProfiles(vocab *skill.Vocabulary, roles []role.Role) []Profile {
	out := make([]Profile, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleProfile(vocab, r))
	}
	return out
}
