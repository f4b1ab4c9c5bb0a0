// Package services: ExerciseService
//
// This file implements the shared exercise catalog. Names are unique after
// whitespace normalization and categories are title-cased. Seed loads the
// bundled catalog idempotently.
//
// Search ranks entries with the in-memory index from internal/search,
// built per call from the current rows.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/catalog"
	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/repo"
	"github.com/tbourn/go-workout-backend/internal/search"
)

// ExerciseService manages the shared exercise catalog. Search builds an
// in-memory index from the rows it just listed, so entries written by any
// process are visible to the next query.
type ExerciseService struct {
	DB *gorm.DB
}

// Create adds a catalog entry. The category is title-cased so "upper body"
// and "Upper Body" group together.
func (s *ExerciseService) Create(ctx context.Context, e catalog.Entry) (*domain.Exercise, error) {
	name := normalizeSpaces(e.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	category := normalizeCategory(e.Category)
	if category == "" {
		return nil, invalid("category", "is required")
	}
	ex := &domain.Exercise{
		Name:         name,
		Category:     category,
		Instructions: trimmedOrNil(&e.Instructions),
		VideoURL:     trimmedOrNil(&e.VideoURL),
	}
	if err := repo.CreateExercise(ctx, s.DB, ex); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateExercise
		}
		return nil, persistence("insert exercise", err)
	}
	return ex, nil
}

// Get returns one catalog entry.
func (s *ExerciseService) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	e, err := repo.GetExercise(ctx, s.DB, id)
	if err != nil {
		return nil, notFoundAs(err, ErrExerciseNotFound, "load exercise")
	}
	return e, nil
}

// List returns the catalog ordered by name.
func (s *ExerciseService) List(ctx context.Context) ([]domain.Exercise, error) {
	out, err := repo.ListExercises(ctx, s.DB)
	if err != nil {
		return nil, persistence("list exercises", err)
	}
	if out == nil {
		out = []domain.Exercise{}
	}
	return out, nil
}

// Search returns up to k catalog entries matching q by name or category,
// best match first.
func (s *ExerciseService) Search(ctx context.Context, q string, k int) ([]domain.Exercise, error) {
	ctx, span := otel.Tracer("services/ExerciseService").Start(ctx, "Search")
	defer span.End()

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	hits := buildIndex(all).TopK(q, k)
	span.SetAttributes(attribute.Int("hits", len(hits)))

	byID := make(map[string]domain.Exercise, len(all))
	for _, e := range all {
		byID[e.ID] = e
	}
	out := make([]domain.Exercise, 0, len(hits))
	for _, h := range hits {
		if e, ok := byID[h.ID]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// Seed inserts the entries whose names are not in the catalog yet and
// returns how many were added.
func (s *ExerciseService) Seed(ctx context.Context, entries []catalog.Entry) (int, error) {
	existing, err := repo.ExerciseNames(ctx, s.DB)
	if err != nil {
		return 0, persistence("load exercise names", err)
	}
	added := 0
	for _, e := range entries {
		if _, ok := existing[normalizeSpaces(e.Name)]; ok {
			log.Debug().Str("exercise", e.Name).Msg("seed: already present")
			continue
		}
		if _, err := s.Create(ctx, e); err != nil {
			if errors.Is(err, ErrDuplicateExercise) {
				continue
			}
			return added, err
		}
		added++
	}
	return added, nil
}

// buildIndex indexes each entry by name and category.
func buildIndex(all []domain.Exercise) *search.Index {
	docs := make([]search.Document, len(all))
	for i, e := range all {
		docs[i] = search.Document{ID: e.ID, Text: e.Name + " " + e.Category}
	}
	return search.New(docs)
}

// normalizeCategory title-cases c. A cases.Caser keeps state, so each call
// gets its own.
func normalizeCategory(c string) string {
	c = normalizeSpaces(c)
	if c == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ToLower(c))
}
