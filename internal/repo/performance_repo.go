// Package repo implements the data persistence layer for the workout
// tracker. This file holds the last-performance query.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
)

// LastPerformance finds the most recent workout of clientID that contains
// exerciseID and returns it together with that exercise's sets ordered by
// set_number. It returns ErrNotFound when the client never did the exercise.
//
// Recency is the workout date; same-date workouts are ordered by creation
// time, then id, so repeated calls always pick the same row. Within one
// workout the first occurrence (lowest order_index) wins. The query runs on
// idx_client_date and idx_exercise_history.
func LastPerformance(ctx context.Context, db *gorm.DB, clientID, exerciseID string) (*domain.LastPerformance, error) {
	var hit struct {
		WorkoutExerciseID string
		WorkoutID         string
	}
	res := db.WithContext(ctx).
		Table("workout_exercises AS we").
		Select("we.id AS workout_exercise_id, w.id AS workout_id").
		Joins("JOIN workouts AS w ON w.id = we.workout_id").
		Where("w.client_id = ? AND we.exercise_id = ?", clientID, exerciseID).
		Order("w.date DESC").
		Order("w.created_at DESC").
		Order("w.id DESC").
		Order("we.order_index ASC").
		Limit(1).
		Scan(&hit)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 || hit.WorkoutExerciseID == "" {
		return nil, ErrNotFound
	}

	var w domain.Workout
	if err := db.WithContext(ctx).First(&w, "id = ?", hit.WorkoutID).Error; err != nil {
		return nil, err
	}
	sets, err := ListSets(ctx, db, hit.WorkoutExerciseID)
	if err != nil {
		return nil, err
	}
	return &domain.LastPerformance{
		Workout:     w,
		WorkoutDate: w.Date,
		Sets:        sets,
	}, nil
}
