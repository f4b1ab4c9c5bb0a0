// Package services: LinkService
//
// This file implements LinkService, which owns shared workout links from
// issue to consumption. A link is a 64-hex-char bearer token that lets a
// client log one session of a template without an account.
//
// Notes:
//   - Issue checks that the client belongs to the calling trainer and that
//     the template belongs to the client.
//   - Resolve never writes; it reports used before expired so a client who
//     already submitted sees "already submitted".
//   - Consume runs in a single transaction. The final conditional update in
//     repo.MarkLinkUsed is what serializes racing submissions.
//
// Observability: Issue, Resolve and Consume open spans under
// "services/LinkService" and feed the workout_link_* counters.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/repo"
)

const (
	// DefaultLinkTTL is how long a shared link stays valid.
	DefaultLinkTTL = 7 * 24 * time.Hour

	// tokenBytes of randomness give a 256-bit, 64-hex-char token.
	tokenBytes = 32
)

// LinkService owns the lifecycle of single-use shared workout links.
type LinkService struct {
	DB       *gorm.DB
	Sessions *SessionService

	// TTL defaults to DefaultLinkTTL.
	TTL time.Duration
	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
	// Rand defaults to crypto/rand.Reader.
	Rand io.Reader
}

// NewLinkService wires a LinkService with its defaults.
func NewLinkService(db *gorm.DB, ttl time.Duration) *LinkService {
	return &LinkService{DB: db, Sessions: &SessionService{DB: db}, TTL: ttl}
}

func (s *LinkService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *LinkService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultLinkTTL
}

func (s *LinkService) sessions() *SessionService {
	if s.Sessions != nil {
		return s.Sessions
	}
	return &SessionService{DB: s.DB}
}

// NewToken returns 32 bytes from r hex-encoded.
func NewToken(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	b := make([]byte, tokenBytes)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Issue creates an active link letting clientID submit one workout for
// templateID. The client must belong to trainerID and the template to the
// client. A token collision is reported as ErrPersistence and not retried.
func (s *LinkService) Issue(ctx context.Context, trainerID, clientID, templateID string) (*domain.SharedWorkoutLink, error) {
	ctx, span := otel.Tracer("services/LinkService").Start(ctx, "Issue",
		trace.WithAttributes(
			attribute.String("trainer.id", trainerID),
			attribute.String("client.id", clientID),
			attribute.String("template.id", templateID),
		),
	)
	defer span.End()

	if _, err := repo.GetClient(ctx, s.DB, trainerID, clientID); err != nil {
		return nil, notFoundAs(err, ErrClientNotFound, "load client")
	}
	tmpl, err := repo.GetTemplate(ctx, s.DB, templateID)
	if err != nil {
		return nil, notFoundAs(err, ErrTemplateNotFound, "load template")
	}
	if tmpl.ClientID != clientID {
		return nil, ErrTemplateNotFound
	}

	token, err := NewToken(s.Rand)
	if err != nil {
		return nil, persistence("generate token", err)
	}
	now := s.now()
	link := &domain.SharedWorkoutLink{
		ClientID:   clientID,
		TemplateID: templateID,
		Token:      token,
		ExpiresAt:  now.Add(s.ttl()),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := repo.CreateLink(ctx, s.DB, link); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			log.Error().Str("client_id", clientID).Msg("shared link token collision")
		}
		span.SetStatus(codes.Error, "insert link")
		return nil, persistence("issue link", err)
	}
	linksIssued.Inc()
	return link, nil
}

// Resolve returns the session view behind token, or ErrLinkNotFound,
// ErrLinkUsed or ErrLinkExpired. It never writes.
func (s *LinkService) Resolve(ctx context.Context, token string) (view *domain.LinkView, err error) {
	ctx, span := otel.Tracer("services/LinkService").Start(ctx, "Resolve")
	defer span.End()
	defer func() {
		outcome := outcomeOf(err, "valid")
		linkResolutions.WithLabelValues(outcome).Inc()
		span.SetAttributes(attribute.String("link.outcome", outcome))
	}()

	link, err := s.activeLink(ctx, s.DB, token, s.now())
	if err != nil {
		return nil, err
	}
	client, err := repo.GetClientByID(ctx, s.DB, link.ClientID)
	if err != nil {
		return nil, notFoundAs(err, ErrLinkNotFound, "load client")
	}
	tmpl, err := repo.GetTemplate(ctx, s.DB, link.TemplateID)
	if err != nil {
		return nil, notFoundAs(err, ErrLinkNotFound, "load template")
	}
	sv, err := s.sessions().BuildSessionView(ctx, tmpl, client)
	if err != nil {
		return nil, err
	}
	return &domain.LinkView{SessionView: *sv, ExpiresAt: link.ExpiresAt}, nil
}

// Consume re-checks the link, persists sub as a workout of the link's
// client and template, and marks the link used. Everything happens in one
// transaction: a failure at any step leaves neither a workout nor a used
// link behind. Of two racing submissions exactly one succeeds; the other
// gets ErrLinkUsed.
func (s *LinkService) Consume(ctx context.Context, token string, sub Submission) (w *domain.Workout, err error) {
	ctx, span := otel.Tracer("services/LinkService").Start(ctx, "Consume",
		trace.WithAttributes(attribute.Int("exercises", len(sub.Exercises))),
	)
	defer span.End()
	defer func() {
		outcome := outcomeOf(err, "consumed")
		linkSubmissions.WithLabelValues(outcome).Inc()
		span.SetAttributes(attribute.String("link.outcome", outcome))
		if outcome == "error" {
			span.RecordError(err)
			span.SetStatus(codes.Error, "consume link")
		}
	}()

	now := s.now()
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		link, err := s.activeLink(ctx, tx, token, now)
		if err != nil {
			return err
		}
		created, err := persistSubmission(ctx, tx, link.ClientID, &link.TemplateID, sub, now)
		if err != nil {
			return err
		}
		// Expiry was checked against the same instant, so a miss here means
		// a concurrent submission got there first.
		if err := repo.MarkLinkUsed(ctx, tx, link.ID, created.ID, now); err != nil {
			if errors.Is(err, repo.ErrConflict) {
				return ErrLinkUsed
			}
			return persistence("mark link used", err)
		}
		w = created
		return nil
	})
	if err != nil {
		if !isBusinessError(err) && !errors.Is(err, ErrPersistence) {
			err = persistence("consume link", err)
		}
		return nil, err
	}
	workoutsLogged.WithLabelValues("link").Inc()
	return w, nil
}

// SubmittedWorkout returns the workout recorded by the used link token, or
// ErrLinkNotFound when the token is unknown or still unused.
func (s *LinkService) SubmittedWorkout(ctx context.Context, token string) (*domain.Workout, error) {
	link, err := repo.GetLinkByToken(ctx, s.DB, token)
	if err != nil {
		return nil, notFoundAs(err, ErrLinkNotFound, "load link")
	}
	if !link.IsUsed || link.WorkoutID == nil {
		return nil, ErrLinkNotFound
	}
	w, err := repo.GetWorkout(ctx, s.DB, *link.WorkoutID)
	if err != nil {
		return nil, notFoundAs(err, ErrWorkoutNotFound, "load workout")
	}
	return w, nil
}

// Inspect returns the stored link and its state at now, for operators.
func (s *LinkService) Inspect(ctx context.Context, token string) (*domain.SharedWorkoutLink, domain.LinkState, error) {
	link, err := repo.GetLinkByToken(ctx, s.DB, token)
	if err != nil {
		return nil, 0, notFoundAs(err, ErrLinkNotFound, "load link")
	}
	return link, link.State(s.now()), nil
}

// activeLink loads token through db and maps its state to an error.
func (s *LinkService) activeLink(ctx context.Context, db *gorm.DB, token string, now time.Time) (*domain.SharedWorkoutLink, error) {
	if token == "" {
		return nil, ErrLinkNotFound
	}
	link, err := repo.GetLinkByToken(ctx, db, token)
	if err != nil {
		return nil, notFoundAs(err, ErrLinkNotFound, "load link")
	}
	switch link.State(now) {
	case domain.LinkUsed:
		return nil, ErrLinkUsed
	case domain.LinkExpired:
		return nil, ErrLinkExpired
	}
	return link, nil
}

func isValidation(err error) bool { return errors.Is(err, ErrValidation) }

// isBusinessError reports the expected outcomes that are surfaced verbatim.
func isBusinessError(err error) bool {
	for _, target := range []error{
		ErrLinkNotFound, ErrLinkUsed, ErrLinkExpired, ErrValidation,
		ErrClientNotFound, ErrTemplateNotFound, ErrExerciseNotFound, ErrWorkoutNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
