// Package repo implements the data persistence layer for the workout
// tracker. This file provides repository functions for the exercise
// catalog. Duplicate names surface as ErrDuplicate.
package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
)

// CreateExercise inserts e. A name clash yields ErrDuplicate.
func CreateExercise(ctx context.Context, db *gorm.DB, e *domain.Exercise) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetExercise fetches one exercise by id, or ErrNotFound.
func GetExercise(ctx context.Context, db *gorm.DB, id string) (*domain.Exercise, error) {
	var e domain.Exercise
	if err := db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ListExercises returns the whole catalog ordered by name.
func ListExercises(ctx context.Context, db *gorm.DB) ([]domain.Exercise, error) {
	var out []domain.Exercise
	err := db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// ExistingExerciseIDs returns the subset of ids present in the catalog.
func ExistingExerciseIDs(ctx context.Context, db *gorm.DB, ids []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []string
	err := db.WithContext(ctx).
		Model(&domain.Exercise{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = struct{}{}
	}
	return out, nil
}

// ExerciseNames returns the set of catalog names, used by seeding to skip
// entries that already exist.
func ExerciseNames(ctx context.Context, db *gorm.DB) (map[string]struct{}, error) {
	var names []string
	if err := db.WithContext(ctx).Model(&domain.Exercise{}).Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out, nil
}
