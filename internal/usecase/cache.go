package usecase

import (
	"context"
	"time"
)

// Cache is the best-effort JSON cache the portfolio read path uses; nil is a
// valid value and disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func portfolioCacheKey(userID string) string {
	return "portfolio:v1:" + userID
}
