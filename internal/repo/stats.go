// Package repo implements the data persistence layer for the workout
// tracker. This file computes the aggregates behind the client list ETag.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
)

// ClientsStats returns the number of clients of trainerID and the greatest
// UpdatedAt among them (nil when there are none). The HTTP layer derives a
// weak ETag for the client list from these two values plus the latest
// workout date, since logging a workout changes the "days ago" column.
func ClientsStats(ctx context.Context, db *gorm.DB, trainerID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Client{}).Where("trainer_id = ?", trainerID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Avoid MAX() which SQLite returns as TEXT.
	var row struct{ UpdatedAt time.Time }
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	latest := row.UpdatedAt

	var w struct{ CreatedAt time.Time }
	res := db.WithContext(ctx).
		Table("workouts").
		Select("workouts.created_at").
		Joins("JOIN clients ON clients.id = workouts.client_id").
		Where("clients.trainer_id = ?", trainerID).
		Order("workouts.created_at DESC").
		Limit(1).
		Scan(&w)
	if res.Error != nil {
		return 0, nil, res.Error
	}
	if res.RowsAffected > 0 && w.CreatedAt.After(latest) {
		latest = w.CreatedAt
	}
	return count, &latest, nil
}
