package dto

import "role-match/internal/domain/learningpath"

type LearningPathResponse struct {
	EmployeeID   string               `json:"employee_id"`
	RoleID       string               `json:"role_id"`
	MatchScore   int                  `json:"match_score"`
	LearningPath learningpath.Roadmap `json:"learning_path"`
}

func NewLearningPathResponse(e learningpath.Entry) LearningPathResponse {
	path := e.LearningPath
	if path == nil {
		path = learningpath.Roadmap{}
	}
	return LearningPathResponse{
		EmployeeID:   e.EmployeeID,
		RoleID:       e.RoleID,
		MatchScore:   e.MatchScore,
		LearningPath: path,
	}
}
