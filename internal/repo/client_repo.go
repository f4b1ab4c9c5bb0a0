// Package repo implements the data persistence layer for the workout
// tracker. This file provides repository functions for the Client model.
//
// Reads are scoped by trainer id except GetClientByID, which serves the
// shared-link path where the link itself carries the ownership.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
)

// CreateClient inserts c with a fresh UUID when c.ID is empty.
func CreateClient(ctx context.Context, db *gorm.DB, c *domain.Client) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(c).Error
}

// GetClient fetches a client owned by trainerID, or ErrNotFound.
func GetClient(ctx context.Context, db *gorm.DB, trainerID, id string) (*domain.Client, error) {
	var c domain.Client
	err := db.WithContext(ctx).
		Where("id = ? AND trainer_id = ?", id, trainerID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetClientByID fetches a client regardless of trainer. Only token-scoped
// paths (shared links) use it; trainer paths go through GetClient.
func GetClientByID(ctx context.Context, db *gorm.DB, id string) (*domain.Client, error) {
	var c domain.Client
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CountClients returns the number of clients owned by trainerID.
func CountClients(ctx context.Context, db *gorm.DB, trainerID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("trainer_id = ?", trainerID).
		Count(&total).Error
	return total, err
}

// ListClientsPage returns clients of trainerID ordered by name.
func ListClientsPage(ctx context.Context, db *gorm.DB, trainerID string, offset, limit int) ([]domain.Client, error) {
	var out []domain.Client
	err := db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("name asc").
		Order("id asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// LatestWorkoutDates maps each of clientIDs to the date of its most recent
// workout. Clients without workouts are absent from the map.
func LatestWorkoutDates(ctx context.Context, db *gorm.DB, clientIDs []string) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(clientIDs))
	if len(clientIDs) == 0 {
		return out, nil
	}
	// MAX(date) comes back as TEXT from SQLite, so scan plain rows instead.
	var rows []struct {
		ClientID string
		Date     time.Time
	}
	err := db.WithContext(ctx).
		Model(&domain.Workout{}).
		Select("client_id, date").
		Where("client_id IN ?", clientIDs).
		Order("date desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if _, seen := out[r.ClientID]; !seen {
			out[r.ClientID] = r.Date
		}
	}
	return out, nil
}
