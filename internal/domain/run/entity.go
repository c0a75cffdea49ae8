package run

import (
	"time"

	"role-match/internal/domain/employee"
	"role-match/internal/domain/learningpath"
	"role-match/internal/domain/match"
	"role-match/internal/domain/role"
	"role-match/internal/domain/skill"

	"github.com/google/uuid"
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Snapshot is the complete output of one batch run. Sinks persist it whole.
type Snapshot struct {
	RunID           uuid.UUID
	Vocabulary      *skill.Vocabulary
	Roles           []role.Role
	Employees       []employee.Employee
	Recommendations []match.Recommendation
	LearningPaths   []learningpath.Entry
}

// TopForEmployee ranks one employee's recommendations by score, keeping role
// order among ties, and returns at most k of them.
func (s Snapshot) TopForEmployee(employeeID string, k int) []match.Recommendation {
	return match.TopK(match.ForEmployee(s.Recommendations, employeeID), k)
}

// LearningPath returns the entry for one employee and role.
func (s Snapshot) LearningPath(employeeID, roleID string) (learningpath.Entry, bool) {
	for _, e := range s.LearningPaths {
		if e.EmployeeID == employeeID && e.RoleID == roleID {
			return e, true
		}
	}
	return learningpath.Entry{}, false
}

type Summary struct {
	Employees          int `json:"employees"`
	Roles              int `json:"roles"`
	Skills             int `json:"skills"`
	Recommendations    int `json:"recommendations"`
	UnresolvedSkillIDs int `json:"unresolved_skill_ids"`
	UncataloguedSkills int `json:"uncatalogued_skills"`
}

type Run struct {
	ID         uuid.UUID  `json:"id"`
	Status     Status     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Summary    Summary    `json:"summary"`
	Error      string     `json:"error,omitempty"`
}
