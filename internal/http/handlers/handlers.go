// Package handlers wires HTTP endpoints to the application services.
//
// Handlers are transport-thin: they bind and shape input, take the trainer
// identity from the request context, call a service and render the result.
// Ownership checks and business rules live in the services.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-workout-backend/internal/catalog"
	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/http/middleware"
	"github.com/tbourn/go-workout-backend/internal/services"
	"github.com/tbourn/go-workout-backend/internal/utils"
)

// ClientService manages a trainer's clients.
type ClientService interface {
	Create(ctx context.Context, trainerID string, in services.ClientInput) (*domain.Client, error)
	Get(ctx context.Context, trainerID, id string) (*domain.Client, error)
	ListPage(ctx context.Context, trainerID string, page, pageSize int) ([]domain.ClientSummary, int64, error)
	// Stats returns the client count and latest update, for ETags.
	Stats(ctx context.Context, trainerID string) (int64, *time.Time, error)
}

// ExerciseService serves the exercise catalog.
type ExerciseService interface {
	Create(ctx context.Context, e catalog.Entry) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	Search(ctx context.Context, q string, k int) ([]domain.Exercise, error)
}

// TemplateService manages workout templates.
type TemplateService interface {
	Create(ctx context.Context, trainerID, clientID, name string) (*domain.WorkoutTemplate, error)
	ListForClient(ctx context.Context, trainerID, clientID string) ([]domain.WorkoutTemplate, error)
	Get(ctx context.Context, trainerID, id string) (*domain.WorkoutTemplate, error)
	AddExercise(ctx context.Context, trainerID, templateID string, in services.TemplateExerciseInput) (*domain.TemplateExercise, error)
}

// SessionService assembles the trainer-run session screen.
type SessionService interface {
	ForTrainer(ctx context.Context, trainerID, clientID, templateID string) (*domain.SessionView, error)
}

// WorkoutService records and reads workouts.
type WorkoutService interface {
	Log(ctx context.Context, trainerID string, in services.LogWorkoutInput) (*domain.Workout, error)
	Get(ctx context.Context, trainerID, id string) (*domain.Workout, error)
	ListForClient(ctx context.Context, trainerID, clientID string, page, pageSize int) ([]domain.Workout, int64, error)
}

// PerformanceService answers last-performance queries. A nil result with a
// nil error means the client never performed the exercise.
type PerformanceService interface {
	LastForTrainer(ctx context.Context, trainerID, clientID, exerciseID string) (*domain.LastPerformance, error)
}

// LinkService drives the shared link lifecycle.
type LinkService interface {
	Issue(ctx context.Context, trainerID, clientID, templateID string) (*domain.SharedWorkoutLink, error)
	Resolve(ctx context.Context, token string) (*domain.LinkView, error)
	Consume(ctx context.Context, token string, sub services.Submission) (*domain.Workout, error)
	SubmittedWorkout(ctx context.Context, token string) (*domain.Workout, error)
}

// IdempotencyService stores and replays completed unsafe requests.
type IdempotencyService interface {
	Lookup(ctx context.Context, scope, key string) (*domain.Idempotency, error)
	Remember(ctx context.Context, scope, key, resourceID string, status int) error
}

// Deps are the services behind the handlers. Idempotency may be nil, which
// disables replays.
type Deps struct {
	Clients     ClientService
	Exercises   ExerciseService
	Templates   TemplateService
	Sessions    SessionService
	Workouts    WorkoutService
	Performance PerformanceService
	Links       LinkService
	Idempotency IdempotencyService

	// PublicBaseURL prefixes share URLs: {PublicBaseURL}/workout/{token}.
	PublicBaseURL string
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	clients     ClientService
	exercises   ExerciseService
	templates   TemplateService
	sessions    SessionService
	workouts    WorkoutService
	performance PerformanceService
	links       LinkService
	idem        IdempotencyService

	publicBaseURL string
}

// New constructs Handlers bound to d.
func New(d Deps) *Handlers {
	return &Handlers{
		clients:       d.Clients,
		exercises:     d.Exercises,
		templates:     d.Templates,
		sessions:      d.Sessions,
		workouts:      d.Workouts,
		performance:   d.Performance,
		links:         d.Links,
		idem:          d.Idempotency,
		publicBaseURL: d.PublicBaseURL,
	}
}

func trainerID(c *gin.Context) string { return middleware.TrainerID(c) }

func clampPagination(c *gin.Context) (page, pageSize int) {
	return utils.ClampPage(c.Query("page"), c.Query("page_size"))
}

// idemRequest returns the scope and key of an Idempotency-Key request, or
// ok=false when the request carries none or replays are disabled.
func (h *Handlers) idemRequest(c *gin.Context) (scope, key string, ok bool) {
	if h.idem == nil {
		return "", "", false
	}
	key, ok = middleware.GetIdempotencyKey(c)
	scope = middleware.GetIdempotencyScope(c)
	return scope, key, ok && scope != ""
}

// replayed returns the resource id stored for this request's key, if any.
func (h *Handlers) replayed(c *gin.Context) (string, bool) {
	scope, key, ok := h.idemRequest(c)
	if !ok || !middleware.IsReplay(c) {
		return "", false
	}
	rec, err := h.idem.Lookup(c.Request.Context(), scope, key)
	if err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
		return "", false
	}
	if rec == nil {
		return "", false
	}
	return rec.ResourceID, true
}

// remember stores the outcome of a completed request; failures only log.
func (h *Handlers) remember(c *gin.Context, resourceID string, status int) {
	scope, key, ok := h.idemRequest(c)
	if !ok {
		return
	}
	if err := h.idem.Remember(c.Request.Context(), scope, key, resourceID, status); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency store failed")
	}
}
