// Package repo implements the data persistence layer for the workout
// tracker. This file provides repository functions for templates and their
// ordered exercises.
package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
)

// CreateTemplate inserts t with a fresh UUID when t.ID is empty.
func CreateTemplate(ctx context.Context, db *gorm.DB, t *domain.WorkoutTemplate) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Omit("Client").Create(t).Error
}

// ListTemplates returns the templates of clientID, newest first.
func ListTemplates(ctx context.Context, db *gorm.DB, clientID string) ([]domain.WorkoutTemplate, error) {
	var out []domain.WorkoutTemplate
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetTemplateForTrainer fetches a template whose client belongs to
// trainerID. Templates of other trainers are reported as ErrNotFound.
func GetTemplateForTrainer(ctx context.Context, db *gorm.DB, trainerID, id string) (*domain.WorkoutTemplate, error) {
	var t domain.WorkoutTemplate
	err := db.WithContext(ctx).
		Joins("JOIN clients ON clients.id = workout_templates.client_id").
		Where("workout_templates.id = ? AND clients.trainer_id = ?", id, trainerID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTemplate fetches a template by id without an ownership check.
func GetTemplate(ctx context.Context, db *gorm.DB, id string) (*domain.WorkoutTemplate, error) {
	var t domain.WorkoutTemplate
	if err := db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTemplateExercises fills t.Exercises ordered by position, each with its
// catalog exercise preloaded.
func LoadTemplateExercises(ctx context.Context, db *gorm.DB, t *domain.WorkoutTemplate) error {
	var items []domain.TemplateExercise
	err := db.WithContext(ctx).
		Preload("Exercise").
		Where("template_id = ?", t.ID).
		Order("order_index asc").
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return err
	}
	t.Exercises = items
	return nil
}

// NextTemplateOrderIndex returns the position after the last exercise of
// templateID (0 for an empty template).
func NextTemplateOrderIndex(ctx context.Context, db *gorm.DB, templateID string) (int, error) {
	var last []int
	err := db.WithContext(ctx).
		Model(&domain.TemplateExercise{}).
		Where("template_id = ?", templateID).
		Order("order_index desc").
		Limit(1).
		Pluck("order_index", &last).Error
	if err != nil {
		return 0, err
	}
	if len(last) == 0 {
		return 0, nil
	}
	return last[0] + 1, nil
}

// CreateTemplateExercise inserts te with a fresh UUID when te.ID is empty.
func CreateTemplateExercise(ctx context.Context, db *gorm.DB, te *domain.TemplateExercise) error {
	if te.ID == "" {
		te.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Omit("Exercise").Create(te).Error
}
