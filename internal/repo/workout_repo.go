// Package repo implements the data persistence layer for the workout
// tracker. This file provides repository functions for workouts, their
// exercises and sets.
//
// Loaders fill Workout.Exercises and WorkoutExercise.Sets by hand; GORM
// associations are not used for reads.
package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
)

// CreateWorkout inserts the workout row only; children are written with
// CreateWorkoutExercise and CreateSet inside the same transaction.
func CreateWorkout(ctx context.Context, db *gorm.DB, w *domain.Workout) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Omit("Client").Create(w).Error
}

// CreateWorkoutExercise inserts one exercise entry of a workout.
func CreateWorkoutExercise(ctx context.Context, db *gorm.DB, we *domain.WorkoutExercise) error {
	if we.ID == "" {
		we.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Omit("Workout", "Exercise").Create(we).Error
}

// CreateSet inserts one set.
func CreateSet(ctx context.Context, db *gorm.DB, s *domain.Set) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Omit("WorkoutExercise").Create(s).Error
}

// GetWorkout fetches a workout with its exercises and sets.
func GetWorkout(ctx context.Context, db *gorm.DB, id string) (*domain.Workout, error) {
	var w domain.Workout
	if err := db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	ws := []domain.Workout{w}
	if err := loadWorkoutChildren(ctx, db, ws); err != nil {
		return nil, err
	}
	return &ws[0], nil
}

// CountWorkouts returns the number of workouts of clientID.
func CountWorkouts(ctx context.Context, db *gorm.DB, clientID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Workout{}).
		Where("client_id = ?", clientID).
		Count(&total).Error
	return total, err
}

// ListWorkoutsPage returns workouts of clientID, most recent first, with
// exercises and sets filled in.
func ListWorkoutsPage(ctx context.Context, db *gorm.DB, clientID string, offset, limit int) ([]domain.Workout, error) {
	var out []domain.Workout
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date desc").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if err := loadWorkoutChildren(ctx, db, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSets returns the sets of one workout exercise ordered by set number.
func ListSets(ctx context.Context, db *gorm.DB, workoutExerciseID string) ([]domain.Set, error) {
	out := []domain.Set{}
	err := db.WithContext(ctx).
		Where("workout_exercise_id = ?", workoutExerciseID).
		Order("set_number asc").
		Find(&out).Error
	return out, err
}

// loadWorkoutChildren fills Exercises (by order_index) and their Sets (by
// set_number) for every workout in ws using two IN queries.
func loadWorkoutChildren(ctx context.Context, db *gorm.DB, ws []domain.Workout) error {
	if len(ws) == 0 {
		return nil
	}
	ids := make([]string, len(ws))
	for i := range ws {
		ids[i] = ws[i].ID
	}

	var wes []domain.WorkoutExercise
	err := db.WithContext(ctx).
		Where("workout_id IN ?", ids).
		Order("order_index asc").
		Order("id asc").
		Find(&wes).Error
	if err != nil {
		return err
	}

	sets := map[string][]domain.Set{}
	if len(wes) > 0 {
		weIDs := make([]string, len(wes))
		for i := range wes {
			weIDs[i] = wes[i].ID
		}
		var all []domain.Set
		err := db.WithContext(ctx).
			Where("workout_exercise_id IN ?", weIDs).
			Order("set_number asc").
			Find(&all).Error
		if err != nil {
			return err
		}
		for _, s := range all {
			sets[s.WorkoutExerciseID] = append(sets[s.WorkoutExerciseID], s)
		}
	}

	byWorkout := map[string][]domain.WorkoutExercise{}
	for _, we := range wes {
		we.Sets = sets[we.ID]
		if we.Sets == nil {
			we.Sets = []domain.Set{}
		}
		byWorkout[we.WorkoutID] = append(byWorkout[we.WorkoutID], we)
	}
	for i := range ws {
		ws[i].Exercises = byWorkout[ws[i].ID]
	}
	return nil
}
