package role

import "role-match/internal/domain/skill"

type Role struct {
	ID             string
	Name           string
	ExternalLink   string
	RequiredSkills skill.Set
}
