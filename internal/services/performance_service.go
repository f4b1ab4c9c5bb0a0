// Package services: PerformanceService
//
// This file implements the last-performance lookup: the sets a client did
// for an exercise in their most recent workout containing it. "No history"
// is a normal answer, not an error.
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

// PerformanceService answers "what did this client last do for this
// exercise?".
type PerformanceService struct {
	DB *gorm.DB
}

// Last returns the sets of the most recent workout of clientID containing
// exerciseID. A client who never did the exercise yields (nil, nil); a
// workout that logged it without sets yields an empty Sets list.
func (s *PerformanceService) Last(ctx context.Context, clientID, exerciseID string) (*domain.LastPerformance, error) {
	ctx, span := otel.Tracer("services/PerformanceService").Start(ctx, "Last",
		trace.WithAttributes(
			attribute.String("client.id", clientID),
			attribute.String("exercise.id", exerciseID),
		),
	)
	defer span.End()

	return lastPerformance(ctx, s.DB, clientID, exerciseID)
}

// LastForTrainer is Last behind a check that clientID belongs to trainerID.
func (s *PerformanceService) LastForTrainer(ctx context.Context, trainerID, clientID, exerciseID string) (*domain.LastPerformance, error) {
	if _, err := repo.GetClient(ctx, s.DB, trainerID, clientID); err != nil {
		return nil, notFoundAs(err, ErrClientNotFound, "load client")
	}
	return s.Last(ctx, clientID, exerciseID)
}

func lastPerformance(ctx context.Context, db *gorm.DB, clientID, exerciseID string) (*domain.LastPerformance, error) {
	lp, err := repo.LastPerformance(ctx, db, clientID, exerciseID)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("last performance", err)
	}
	return lp, nil
}
