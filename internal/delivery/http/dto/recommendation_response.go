package dto

import "role-match/internal/domain/match"

type RecommendationResponse struct {
	RoleID        string   `json:"role_id"`
	MatchScore    int      `json:"match_score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

type RecommendationListResponse struct {
	EmployeeID string                   `json:"employee_id"`
	Limit      int                      `json:"limit"`
	Items      []RecommendationResponse `json:"items"`
}

func NewRecommendationListResponse(employeeID string, limit int, recs []match.Recommendation) RecommendationListResponse {
	items := make([]RecommendationResponse, 0, len(recs))
	for _, r := range recs {
		items = append(items, RecommendationResponse{
			RoleID:        r.RoleID,
			MatchScore:    r.MatchScore,
			MatchedSkills: nonNil(r.MatchedSkills),
			MissingSkills: nonNil(r.MissingSkills),
		})
	}
	return RecommendationListResponse{EmployeeID: employeeID, Limit: limit, Items: items}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
