// Package services: IdempotencyService
//
// This file implements the store behind the Idempotency-Key middleware. It
// records which resource a (scope, key) pair produced so a retried request
// can be answered with the original result.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/repo"
)

// IdempotencyService remembers completed unsafe requests so a retried
// request with the same Idempotency-Key replays the original result.
type IdempotencyService struct {
	DB  *gorm.DB
	TTL time.Duration
	Now func() time.Time
}

func (s *IdempotencyService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Lookup returns the remembered outcome for (scope, key), or nil.
func (s *IdempotencyService) Lookup(ctx context.Context, scope, key string) (*domain.Idempotency, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, scope, key, s.now())
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("lookup idempotency", err)
	}
	return rec, nil
}

// Remember stores the outcome of a completed request. A concurrent request
// that already stored the same key is not an error.
func (s *IdempotencyService) Remember(ctx context.Context, scope, key, resourceID string, status int) error {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	_, err := repo.CreateIdempotency(ctx, s.DB, scope, key, resourceID, status, ttl, s.now())
	if err != nil && !errors.Is(err, repo.ErrDuplicate) {
		return persistence("remember idempotency", err)
	}
	return nil
}

// Purge drops expired records.
func (s *IdempotencyService) Purge(ctx context.Context) (int64, error) {
	return repo.PurgeExpiredIdempotency(ctx, s.DB, s.now())
}
