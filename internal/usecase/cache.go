package usecase

import (
	"context"
	"time"
)

type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// PipelineCache holds the cross-process run lock and the cached responses a
// finished run makes stale.
type PipelineCache interface {
	Available() bool
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	ReleaseIfOwner(ctx context.Context, key string, value string) error
	InvalidateRecommendations(ctx context.Context) error
}
