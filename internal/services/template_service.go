// Package services: TemplateService
//
// This file implements workout templates: named, ordered exercise plans
// owned by one client. New exercises are appended after the current last
// position.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/repo"
)

// TemplateExerciseInput places an exercise in a template. A nil OrderIndex
// appends at the end; zero TargetSets and blank TargetReps take the
// defaults of 3 sets of "10".
type TemplateExerciseInput struct {
	ExerciseID string
	OrderIndex *int
	TargetSets int
	TargetReps string
	Notes      *string
}

// TemplateService manages workout templates. Ownership flows through the
// template's client, which must belong to the calling trainer.
type TemplateService struct {
	DB *gorm.DB
}

// Create adds an empty template for a client of trainerID.
func (s *TemplateService) Create(ctx context.Context, trainerID, clientID, name string) (*domain.WorkoutTemplate, error) {
	name = normalizeSpaces(name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if _, err := repo.GetClient(ctx, s.DB, trainerID, clientID); err != nil {
		return nil, notFoundAs(err, ErrClientNotFound, "load client")
	}
	t := &domain.WorkoutTemplate{ClientID: clientID, Name: name, IsActive: true}
	if err := repo.CreateTemplate(ctx, s.DB, t); err != nil {
		return nil, persistence("insert template", err)
	}
	t.Exercises = []domain.TemplateExercise{}
	return t, nil
}

// ListForClient returns the templates of a client of trainerID.
func (s *TemplateService) ListForClient(ctx context.Context, trainerID, clientID string) ([]domain.WorkoutTemplate, error) {
	if _, err := repo.GetClient(ctx, s.DB, trainerID, clientID); err != nil {
		return nil, notFoundAs(err, ErrClientNotFound, "load client")
	}
	out, err := repo.ListTemplates(ctx, s.DB, clientID)
	if err != nil {
		return nil, persistence("list templates", err)
	}
	if out == nil {
		out = []domain.WorkoutTemplate{}
	}
	return out, nil
}

// Get returns a template of trainerID with its exercises in order.
func (s *TemplateService) Get(ctx context.Context, trainerID, id string) (*domain.WorkoutTemplate, error) {
	t, err := repo.GetTemplateForTrainer(ctx, s.DB, trainerID, id)
	if err != nil {
		return nil, notFoundAs(err, ErrTemplateNotFound, "load template")
	}
	if err := repo.LoadTemplateExercises(ctx, s.DB, t); err != nil {
		return nil, persistence("load template exercises", err)
	}
	return t, nil
}

// AddExercise appends (or inserts at OrderIndex) a catalog exercise.
func (s *TemplateService) AddExercise(ctx context.Context, trainerID, templateID string, in TemplateExerciseInput) (*domain.TemplateExercise, error) {
	if in.TargetSets < 0 {
		return nil, invalid("target_sets", "must be >= 0")
	}
	if in.OrderIndex != nil && *in.OrderIndex < 0 {
		return nil, invalid("order_index", "must be >= 0")
	}

	var out *domain.TemplateExercise
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetTemplateForTrainer(ctx, tx, trainerID, templateID); err != nil {
			return notFoundAs(err, ErrTemplateNotFound, "load template")
		}
		ex, err := repo.GetExercise(ctx, tx, strings.TrimSpace(in.ExerciseID))
		if err != nil {
			return notFoundAs(err, ErrExerciseNotFound, "load exercise")
		}

		te := &domain.TemplateExercise{
			TemplateID: templateID,
			ExerciseID: ex.ID,
			TargetSets: in.TargetSets,
			TargetReps: strings.TrimSpace(in.TargetReps),
			Notes:      trimmedOrNil(in.Notes),
		}
		if te.TargetSets == 0 {
			te.TargetSets = 3
		}
		if te.TargetReps == "" {
			te.TargetReps = "10"
		}
		if in.OrderIndex != nil {
			te.OrderIndex = *in.OrderIndex
		} else {
			next, err := repo.NextTemplateOrderIndex(ctx, tx, templateID)
			if err != nil {
				return persistence("next order index", err)
			}
			te.OrderIndex = next
		}
		if err := repo.CreateTemplateExercise(ctx, tx, te); err != nil {
			return persistence("insert template exercise", err)
		}
		te.Exercise = *ex
		out = te
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
