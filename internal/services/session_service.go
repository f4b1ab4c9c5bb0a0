// Package services: SessionService
//
// This file implements session assembly. A template's exercises are paired,
// in template order, with the client's last performance of each, producing
// the payload shown in a live session and on a shared link page.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/repo"
)

// SessionService composes a template with the client's history into the
// payload of a live session or a shared link page. It never writes.
type SessionService struct {
	DB *gorm.DB
}

// ForTrainer loads a template and its client, both owned by trainerID, and
// builds their session view. The template must belong to clientID.
func (s *SessionService) ForTrainer(ctx context.Context, trainerID, clientID, templateID string) (*domain.SessionView, error) {
	client, err := repo.GetClient(ctx, s.DB, trainerID, clientID)
	if err != nil {
		return nil, notFoundAs(err, ErrClientNotFound, "load client")
	}
	tmpl, err := repo.GetTemplate(ctx, s.DB, templateID)
	if err != nil {
		return nil, notFoundAs(err, ErrTemplateNotFound, "load template")
	}
	if tmpl.ClientID != client.ID {
		return nil, ErrTemplateNotFound
	}
	return s.BuildSessionView(ctx, tmpl, client)
}

// BuildSessionView enriches every exercise of tmpl, in template order, with
// the last performance of client. Exercises without history carry an empty
// LastSets list and no LastWorkoutDate.
func (s *SessionService) BuildSessionView(ctx context.Context, tmpl *domain.WorkoutTemplate, client *domain.Client) (*domain.SessionView, error) {
	ctx, span := otel.Tracer("services/SessionService").Start(ctx, "BuildSessionView",
		trace.WithAttributes(
			attribute.String("client.id", client.ID),
			attribute.String("template.id", tmpl.ID),
		),
	)
	defer span.End()

	if tmpl.Exercises == nil {
		if err := repo.LoadTemplateExercises(ctx, s.DB, tmpl); err != nil {
			return nil, persistence("load template exercises", err)
		}
	}

	view := &domain.SessionView{
		Client: domain.SessionClient{ID: client.ID, Name: client.Name},
		Template: domain.SessionTemplate{
			ID:        tmpl.ID,
			Name:      tmpl.Name,
			Exercises: make([]domain.SessionExercise, 0, len(tmpl.Exercises)),
		},
	}
	for _, te := range tmpl.Exercises {
		ex := domain.SessionExercise{
			TemplateExerciseID: te.ID,
			ExerciseID:         te.ExerciseID,
			Name:               te.Exercise.Name,
			Category:           te.Exercise.Category,
			VideoURL:           te.Exercise.VideoURL,
			Instructions:       te.Exercise.Instructions,
			OrderIndex:         te.OrderIndex,
			TargetSets:         te.TargetSets,
			TargetReps:         te.TargetReps,
			Notes:              te.Notes,
			LastSets:           []domain.Set{},
		}
		lp, err := lastPerformance(ctx, s.DB, client.ID, te.ExerciseID)
		if err != nil {
			return nil, err
		}
		if lp != nil {
			d := lp.WorkoutDate
			ex.LastWorkoutDate = &d
			ex.LastSets = lp.Sets
		}
		view.Template.Exercises = append(view.Template.Exercises, ex)
	}
	span.SetAttributes(attribute.Int("exercises", len(view.Template.Exercises)))
	return view, nil
}
