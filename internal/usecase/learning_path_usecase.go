package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"role-match/internal/domain/learningpath"
	"role-match/internal/repository"
)

type LearningPathUsecase interface {
	Get(ctx context.Context, employeeID, roleID string) (learningpath.Entry, error)
}

type LearningPath struct {
	repo   repository.RecommendationQueryRepository
	logger *log.Logger
}

func NewLearningPathUsecase(repo repository.RecommendationQueryRepository, logger *log.Logger) *LearningPath {
	if logger == nil {
		logger = log.Default()
	}
	return &LearningPath{repo: repo, logger: logger}
}

func (u *LearningPath) Get(ctx context.Context, employeeID, roleID string) (learningpath.Entry, error) {
	employeeID = strings.TrimSpace(employeeID)
	roleID = strings.TrimSpace(roleID)
	if employeeID == "" || roleID == "" {
		return learningpath.Entry{}, ErrInvalidInput
	}

	e, err := u.repo.LearningPath(ctx, employeeID, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return learningpath.Entry{}, ErrLearningPathNotFound
		}
		u.logger.Printf("[LearningPaths] query failed employee_id=%s role_id=%s err=%v", employeeID, roleID, err)
		return learningpath.Entry{}, ErrInternal
	}
	return e, nil
}
