package employee

import "role-match/internal/domain/skill"

type Employee struct {
	ID             string
	SourceID       string
	CurrentRole    string
	AssignedSkills skill.Set
}
