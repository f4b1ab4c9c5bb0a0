// Package repo implements the data persistence layer for the workout
// tracker. This file provides repository functions for the
// SharedWorkoutLink model.
//
// Error semantics:
//   - An unknown token returns ErrNotFound.
//   - MarkLinkUsed returns ErrConflict when its conditional update matches
//     no row. Callers inside a transaction treat that as "someone else
//     consumed the link first".
//
// Functions:
//
//   - CreateLink(ctx, db, link) -> error
//     Inserts a link; a token collision returns ErrDuplicate.
//
//   - GetLinkByToken(ctx, db, token) -> *domain.SharedWorkoutLink, error
//     Looks a link up by its unique token.
//
//   - MarkLinkUsed(ctx, db, linkID, workoutID, now) -> error
//     Flips is_used exactly once for an unexpired link.
//
// Links are never deleted.
package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
)

// CreateLink inserts a shared link. A token collision surfaces as
// ErrDuplicate wrapped with context; callers must not retry it.
func CreateLink(ctx context.Context, db *gorm.DB, l *domain.SharedWorkoutLink) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if err := db.WithContext(ctx).Omit("Client", "Template").Create(l).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert shared link: %w", ErrDuplicate)
		}
		return err
	}
	return nil
}

// GetLinkByToken fetches a link by its token, or ErrNotFound.
func GetLinkByToken(ctx context.Context, db *gorm.DB, token string) (*domain.SharedWorkoutLink, error) {
	var l domain.SharedWorkoutLink
	if err := db.WithContext(ctx).Where("token = ?", token).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// MarkLinkUsed flips is_used to true for linkID, recording the workout that
// consumed it. The update only matches an unused, unexpired row; when
// nothing matches (a concurrent submission won, or the link expired) it
// returns ErrConflict and leaves the row untouched.
func MarkLinkUsed(ctx context.Context, db *gorm.DB, linkID, workoutID string, now time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.SharedWorkoutLink{}).
		Where("id = ? AND is_used = ? AND expires_at >= ?", linkID, false, now).
		Updates(map[string]any{
			"is_used":    true,
			"used_at":    now,
			"workout_id": workoutID,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
