package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"role-match/internal/domain/match"
	"role-match/internal/infrastructure/cache"
	"role-match/internal/repository"
)

const MaxTopK = 50

type RecommendationUsecase interface {
	TopRecommendations(ctx context.Context, employeeID string, k int) ([]match.Recommendation, error)
}

type Recommendation struct {
	repo     repository.RecommendationQueryRepository
	cache    RecommendationCache
	ttl      time.Duration
	defaultK int
	logger   *log.Logger
}

func NewRecommendationUsecase(repo repository.RecommendationQueryRepository, c RecommendationCache, ttl time.Duration, defaultK int, logger *log.Logger) *Recommendation {
	if defaultK <= 0 {
		defaultK = 5
	}
	if defaultK > MaxTopK {
		defaultK = MaxTopK
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Recommendation{repo: repo, cache: c, ttl: ttl, defaultK: defaultK, logger: logger}
}

// TopRecommendations returns at most k recommendations for the employee,
// best score first. k == 0 selects the configured default.
func (u *Recommendation) TopRecommendations(ctx context.Context, employeeID string, k int) ([]match.Recommendation, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, ErrInvalidInput
	}
	if k == 0 {
		k = u.defaultK
	}
	if k < 0 || k > MaxTopK {
		return nil, ErrInvalidInput
	}

	key := cache.TopRecommendationsKey(employeeID, k)
	if u.cache != nil {
		var cached []match.Recommendation
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			u.logger.Printf("[Recommendations] Cache HIT: %s", key)
			return cached, nil
		}
		u.logger.Printf("[Recommendations] Cache MISS: %s", key)
	}

	exists, err := u.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		u.logger.Printf("[Recommendations] employee lookup failed employee_id=%s err=%v", employeeID, err)
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrEmployeeNotFound
	}

	recs, err := u.repo.TopForEmployee(ctx, employeeID, k)
	if err != nil {
		u.logger.Printf("[Recommendations] query failed employee_id=%s err=%v", employeeID, err)
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, recs, u.ttl); err != nil {
			u.logger.Printf("[Recommendations] cache write failed key=%s err=%v", key, err)
		}
	}
	return recs, nil
}
