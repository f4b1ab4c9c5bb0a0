// Package services holds the business logic of the workout tracker: shared
// link lifecycle, last-performance lookup, session assembly and the CRUD
// around clients, exercises, templates and workouts.
//
// This file centralizes the service-level error values. Handlers translate
// them into HTTP statuses; services never do.
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/repo"
)

// Lookup errors.
var (
	// ErrClientNotFound indicates the client does not exist or belongs to
	// another trainer.
	ErrClientNotFound = errors.New("client not found")

	// ErrTemplateNotFound indicates the template does not exist, belongs to
	// another trainer, or does not belong to the given client.
	ErrTemplateNotFound = errors.New("template not found")

	ErrExerciseNotFound = errors.New("exercise not found")
	ErrWorkoutNotFound  = errors.New("workout not found")
)

// Shared link outcomes. Each one is rendered differently to the client.
var (
	// ErrLinkNotFound is returned for an unknown token.
	ErrLinkNotFound = errors.New("link not found")

	// ErrLinkUsed is returned once a link has been consumed, including to
	// the loser of a concurrent submission.
	ErrLinkUsed = errors.New("link already used")

	// ErrLinkExpired is returned for an unused link past its expiry.
	ErrLinkExpired = errors.New("link expired")
)

var (
	// ErrValidation rejects malformed input. It is always wrapped with the
	// offending field, e.g. "validation failed: exercises[0].sets[1].reps: ...".
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateExercise is returned when a catalog name is taken.
	ErrDuplicateExercise = errors.New("exercise already exists")

	// ErrPersistence wraps unexpected store failures (unavailable database,
	// constraint violations such as a token collision).
	ErrPersistence = errors.New("persistence failure")
)

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, fmt.Sprintf(format, args...))
}

func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

// isNotFound matches the repo sentinel and GORM's in a driver-agnostic way.
func isNotFound(err error) bool {
	return errors.Is(err, repo.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// notFoundAs maps a repo miss to sentinel and wraps anything else as a
// persistence failure.
func notFoundAs(err error, sentinel error, op string) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return sentinel
	}
	return persistence(op, err)
}
