package usecase

import (
	"context"
	"errors"
	"testing"

	"role-match/internal/domain/learningpath"
	"role-match/internal/domain/match"
	"role-match/internal/infrastructure/cache"

	"github.com/stretchr/testify/require"
)

func sampleRecs() []match.Recommendation {
	return []match.Recommendation{
		{EmployeeID: "E1", RoleID: "R1", MatchScore: 1, MatchedSkills: []string{"SQL"}, MissingSkills: []string{"Excel"}},
		{EmployeeID: "E1", RoleID: "R2", MatchScore: 2, MatchedSkills: []string{"SQL", "Python"}, MissingSkills: []string{}},
		{EmployeeID: "E1", RoleID: "R3", MatchScore: 1, MatchedSkills: []string{"Python"}, MissingSkills: []string{"Tableau"}},
	}
}

func TestRecommendation_TopRecommendations_CacheAside(t *testing.T) {
	repo := &fakeQueryRepo{employees: map[string][]match.Recommendation{"E1": sampleRecs()}}
	c := newMemCache()
	uc := NewRecommendationUsecase(repo, c, 0, 2, quietLogger())

	got, err := uc.TopRecommendations(context.Background(), " E1 ", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "R2", got[0].RoleID)
	require.Equal(t, "R1", got[1].RoleID)
	require.Equal(t, 1, repo.topCalls)
	require.Contains(t, c.data, cache.TopRecommendationsKey("E1", 2))

	again, err := uc.TopRecommendations(context.Background(), "E1", 2)
	require.NoError(t, err)
	require.Equal(t, got, again)
	require.Equal(t, 1, repo.topCalls)
}

func TestRecommendation_TopRecommendations_Errors(t *testing.T) {
	repo := &fakeQueryRepo{employees: map[string][]match.Recommendation{"E1": sampleRecs()}}
	uc := NewRecommendationUsecase(repo, nil, 0, 5, quietLogger())

	_, err := uc.TopRecommendations(context.Background(), "", 5)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.TopRecommendations(context.Background(), "E1", MaxTopK+1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.TopRecommendations(context.Background(), "E1", -1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.TopRecommendations(context.Background(), "E404", 5)
	require.ErrorIs(t, err, ErrEmployeeNotFound)

	repo.err = errors.New("connection reset")
	_, err = uc.TopRecommendations(context.Background(), "E1", 5)
	require.ErrorIs(t, err, ErrInternal)
}

func TestLearningPath_Get(t *testing.T) {
	entry := learningpath.Entry{
		EmployeeID:   "E1",
		RoleID:       "R1",
		MatchScore:   1,
		LearningPath: learningpath.Roadmap{{Skill: "Excel", Resources: []string{"https://exceljet.net/"}}},
	}
	repo := &fakeQueryRepo{paths: map[string]learningpath.Entry{"E1/R1": entry}}
	uc := NewLearningPathUsecase(repo, quietLogger())

	got, err := uc.Get(context.Background(), "E1", "R1")
	require.NoError(t, err)
	require.Equal(t, entry, got)

	_, err = uc.Get(context.Background(), "E1", "R9")
	require.ErrorIs(t, err, ErrLearningPathNotFound)

	_, err = uc.Get(context.Background(), "E1", " ")
	require.ErrorIs(t, err, ErrInvalidInput)

	repo.err = errors.New("boom")
	_, err = uc.Get(context.Background(), "E1", "R1")
	require.ErrorIs(t, err, ErrInternal)
}
