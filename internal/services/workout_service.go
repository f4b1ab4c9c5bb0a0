// Package services: WorkoutService
//
// This file implements trainer-side workout logging and history. Logging
// goes through the same submission path as shared links (see
// submission.go), so both sources validate and store sets identically.
package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/repo"
)

// LogWorkoutInput is a trainer-run session. TemplateID is optional.
type LogWorkoutInput struct {
	ClientID   string
	TemplateID *string
	Submission
}

// WorkoutService records trainer-run sessions and serves workout history.
type WorkoutService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s *WorkoutService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Log persists a session for a client of trainerID under the same rules as
// a shared link submission, atomically.
func (s *WorkoutService) Log(ctx context.Context, trainerID string, in LogWorkoutInput) (*domain.Workout, error) {
	ctx, span := otel.Tracer("services/WorkoutService").Start(ctx, "Log",
		trace.WithAttributes(
			attribute.String("trainer.id", trainerID),
			attribute.String("client.id", in.ClientID),
		),
	)
	defer span.End()

	var out *domain.Workout
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetClient(ctx, tx, trainerID, in.ClientID); err != nil {
			return notFoundAs(err, ErrClientNotFound, "load client")
		}
		if in.TemplateID != nil {
			t, err := repo.GetTemplate(ctx, tx, *in.TemplateID)
			if err != nil {
				return notFoundAs(err, ErrTemplateNotFound, "load template")
			}
			if t.ClientID != in.ClientID {
				return ErrTemplateNotFound
			}
		}
		w, err := persistSubmission(ctx, tx, in.ClientID, in.TemplateID, in.Submission, s.now())
		if err != nil {
			return err
		}
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	workoutsLogged.WithLabelValues("trainer").Inc()
	return out, nil
}

// Get returns a workout of a client of trainerID with exercises and sets.
func (s *WorkoutService) Get(ctx context.Context, trainerID, id string) (*domain.Workout, error) {
	w, err := repo.GetWorkout(ctx, s.DB, id)
	if err != nil {
		return nil, notFoundAs(err, ErrWorkoutNotFound, "load workout")
	}
	if _, err := repo.GetClient(ctx, s.DB, trainerID, w.ClientID); err != nil {
		return nil, notFoundAs(err, ErrWorkoutNotFound, "load client")
	}
	return w, nil
}

// ListForClient returns a page of workouts, most recent first.
func (s *WorkoutService) ListForClient(ctx context.Context, trainerID, clientID string, page, pageSize int) ([]domain.Workout, int64, error) {
	if _, err := repo.GetClient(ctx, s.DB, trainerID, clientID); err != nil {
		return nil, 0, notFoundAs(err, ErrClientNotFound, "load client")
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	total, err := repo.CountWorkouts(ctx, s.DB, clientID)
	if err != nil {
		return nil, 0, persistence("count workouts", err)
	}
	if total == 0 {
		return []domain.Workout{}, 0, nil
	}
	items, err := repo.ListWorkoutsPage(ctx, s.DB, clientID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, persistence("list workouts", err)
	}
	return items, total, nil
}
