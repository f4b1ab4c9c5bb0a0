// Package services: ClientService
//
// This file implements ClientService, which creates and lists the clients
// of a trainer. Every read is scoped by trainer id; a client of another
// trainer is reported as not found rather than forbidden.
//
// The paged list carries a "days since last workout" figure derived from
// each client's latest workout date.
package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/repo"
)

// ClientInput carries the editable fields of a client.
type ClientInput struct {
	Name  string
	Email *string
	Phone *string
	Notes *string
}

// ClientService manages the clients of a trainer. Every method takes the
// trainer id explicitly; a client of another trainer is ErrClientNotFound.
type ClientService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s *ClientService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create adds a client for trainerID. Name is required.
func (s *ClientService) Create(ctx context.Context, trainerID string, in ClientInput) (*domain.Client, error) {
	name := normalizeSpaces(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	c := &domain.Client{
		TrainerID: trainerID,
		Name:      name,
		Email:     trimmedOrNil(in.Email),
		Phone:     trimmedOrNil(in.Phone),
		Notes:     trimmedOrNil(in.Notes),
	}
	if err := repo.CreateClient(ctx, s.DB, c); err != nil {
		return nil, persistence("insert client", err)
	}
	return c, nil
}

// Get returns one client of trainerID.
func (s *ClientService) Get(ctx context.Context, trainerID, id string) (*domain.Client, error) {
	c, err := repo.GetClient(ctx, s.DB, trainerID, id)
	if err != nil {
		return nil, notFoundAs(err, ErrClientNotFound, "load client")
	}
	return c, nil
}

// ListPage returns a page of client summaries ordered by name, with the
// date of the last workout and whole days elapsed since it.
func (s *ClientService) ListPage(ctx context.Context, trainerID string, page, pageSize int) ([]domain.ClientSummary, int64, error) {
	ctx, span := otel.Tracer("services/ClientService").Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("trainer.id", trainerID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	total, err := repo.CountClients(ctx, s.DB, trainerID)
	if err != nil {
		return nil, 0, persistence("count clients", err)
	}
	if total == 0 {
		return []domain.ClientSummary{}, 0, nil
	}
	clients, err := repo.ListClientsPage(ctx, s.DB, trainerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, persistence("list clients", err)
	}

	ids := make([]string, len(clients))
	for i := range clients {
		ids[i] = clients[i].ID
	}
	latest, err := repo.LatestWorkoutDates(ctx, s.DB, ids)
	if err != nil {
		return nil, 0, persistence("latest workouts", err)
	}

	today := truncateDay(s.now())
	out := make([]domain.ClientSummary, len(clients))
	for i, c := range clients {
		out[i] = domain.ClientSummary{Client: c}
		if d, ok := latest[c.ID]; ok {
			d := d
			days := int(today.Sub(truncateDay(d.UTC())).Hours() / 24)
			if days < 0 {
				days = 0
			}
			out[i].LastWorkoutAt = &d
			out[i].DaysSinceLastWorkout = &days
		}
	}
	return out, total, nil
}

// Stats returns the client count of trainerID and a change watermark for
// cache validation.
func (s *ClientService) Stats(ctx context.Context, trainerID string) (int64, *time.Time, error) {
	n, latest, err := repo.ClientsStats(ctx, s.DB, trainerID)
	if err != nil {
		return 0, nil, persistence("client stats", err)
	}
	return n, latest, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func trimmedOrNil(p *string) *string {
	if p == nil {
		return nil
	}
	t := strings.TrimSpace(*p)
	if t == "" {
		return nil
	}
	return &t
}
