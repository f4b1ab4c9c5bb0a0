// Package services: workout submissions
//
// This file holds the validation and persistence shared by link and
// trainer submissions. Set fields arrive as text and are parsed here.
//
// Notes:
//   - A set with blank reps was not performed and is dropped.
//   - Weights are decimals in kilograms, 0 to 999.99.
//   - Every exercise id is checked against the catalog before any insert.
package services

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/repo"
)

// maxWeightKg is the largest weight a decimal(5,2) column holds.
var maxWeightKg = decimal.RequireFromString("999.99")

// Submission is one performed workout as entered by a client or trainer.
// Numeric set fields arrive as text; empty means absent.
type Submission struct {
	Notes           *string
	DurationMinutes *int
	Exercises       []ExerciseInput
}

// ExerciseInput is one performed exercise of a Submission.
type ExerciseInput struct {
	ExerciseID string
	Notes      *string
	Sets       []SetInput
}

// SetInput is one set of an ExerciseInput. SetNumber 0 means "use the
// position". A set whose Reps is blank was not performed and is skipped.
type SetInput struct {
	SetNumber   int
	Reps        string
	WeightKg    string
	RestSeconds string
	RPE         string
	Notes       *string
}

// plannedExercise is a validated ExerciseInput ready to insert.
type plannedExercise struct {
	exerciseID string
	notes      *string
	sets       []domain.Set
}

// planSubmission validates sub without touching the store. Exercise ids are
// checked separately against the catalog.
func planSubmission(sub Submission) ([]plannedExercise, error) {
	if len(sub.Exercises) == 0 {
		return nil, invalid("exercises", "at least one exercise is required")
	}
	if sub.DurationMinutes != nil && *sub.DurationMinutes < 0 {
		return nil, invalid("duration_minutes", "must be >= 0")
	}

	plan := make([]plannedExercise, 0, len(sub.Exercises))
	for i, ex := range sub.Exercises {
		field := "exercises[" + strconv.Itoa(i) + "]"
		id := strings.TrimSpace(ex.ExerciseID)
		if id == "" {
			return nil, invalid(field+".exercise_id", "is required")
		}

		sets := make([]domain.Set, 0, len(ex.Sets))
		seen := map[int]struct{}{}
		for j, in := range ex.Sets {
			sf := field + ".sets[" + strconv.Itoa(j) + "]"
			s, skip, err := parseSet(sf, j, in)
			if err != nil {
				return nil, err
			}
			if skip {
				continue
			}
			if _, dup := seen[s.SetNumber]; dup {
				return nil, invalid(sf+".set_number", "%d is repeated", s.SetNumber)
			}
			seen[s.SetNumber] = struct{}{}
			sets = append(sets, s)
		}
		plan = append(plan, plannedExercise{exerciseID: id, notes: ex.Notes, sets: sets})
	}
	return plan, nil
}

// parseSet converts one SetInput. skip reports a set without reps.
func parseSet(field string, pos int, in SetInput) (s domain.Set, skip bool, err error) {
	reps := strings.TrimSpace(in.Reps)
	if reps == "" {
		return s, true, nil
	}
	n, err := strconv.Atoi(reps)
	if err != nil || n < 0 {
		return s, false, invalid(field+".reps", "%q is not a non-negative integer", in.Reps)
	}
	s.Reps = n

	switch {
	case in.SetNumber == 0:
		s.SetNumber = pos + 1
	case in.SetNumber < 0:
		return s, false, invalid(field+".set_number", "must be >= 1")
	default:
		s.SetNumber = in.SetNumber
	}

	s.WeightKg = decimal.Zero
	if w := strings.TrimSpace(in.WeightKg); w != "" {
		d, err := decimal.NewFromString(w)
		if err != nil {
			return s, false, invalid(field+".weight_kg", "%q is not a number", in.WeightKg)
		}
		d = d.Round(2)
		if d.IsNegative() || d.GreaterThan(maxWeightKg) {
			return s, false, invalid(field+".weight_kg", "must be between 0 and 999.99")
		}
		s.WeightKg = d
	}

	if r := strings.TrimSpace(in.RestSeconds); r != "" {
		v, err := strconv.Atoi(r)
		if err != nil || v < 0 {
			return s, false, invalid(field+".rest_seconds", "%q is not a non-negative integer", in.RestSeconds)
		}
		s.RestSeconds = &v
	}
	if r := strings.TrimSpace(in.RPE); r != "" {
		v, err := strconv.Atoi(r)
		if err != nil || v < 1 || v > 10 {
			return s, false, invalid(field+".rpe", "%q is not an integer between 1 and 10", in.RPE)
		}
		s.RPE = &v
	}
	if in.Notes != nil {
		if t := strings.TrimSpace(*in.Notes); t != "" {
			s.Notes = &t
		}
	}
	return s, false, nil
}

// persistSubmission validates sub and writes the workout, its exercises and
// sets through tx. The caller owns the transaction.
func persistSubmission(ctx context.Context, tx *gorm.DB, clientID string, templateID *string, sub Submission, now time.Time) (*domain.Workout, error) {
	plan, err := planSubmission(sub)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(plan))
	for _, p := range plan {
		ids = append(ids, p.exerciseID)
	}
	known, err := repo.ExistingExerciseIDs(ctx, tx, ids)
	if err != nil {
		return nil, persistence("check exercises", err)
	}
	for i, p := range plan {
		if _, ok := known[p.exerciseID]; !ok {
			return nil, invalid("exercises["+strconv.Itoa(i)+"].exercise_id", "unknown exercise %q", p.exerciseID)
		}
	}

	w := &domain.Workout{
		ClientID:        clientID,
		TemplateID:      templateID,
		Date:            now,
		DurationMinutes: sub.DurationMinutes,
		Notes:           sub.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := repo.CreateWorkout(ctx, tx, w); err != nil {
		return nil, persistence("insert workout", err)
	}

	w.Exercises = make([]domain.WorkoutExercise, 0, len(plan))
	for i, p := range plan {
		we := domain.WorkoutExercise{
			WorkoutID:  w.ID,
			ExerciseID: p.exerciseID,
			OrderIndex: i,
			Notes:      p.notes,
		}
		if err := repo.CreateWorkoutExercise(ctx, tx, &we); err != nil {
			return nil, persistence("insert workout exercise", err)
		}
		we.Sets = make([]domain.Set, 0, len(p.sets))
		for _, s := range p.sets {
			s.WorkoutExerciseID = we.ID
			s.CreatedAt = now
			if err := repo.CreateSet(ctx, tx, &s); err != nil {
				return nil, persistence("insert set", err)
			}
			we.Sets = append(we.Sets, s)
		}
		slices.SortFunc(we.Sets, func(a, b domain.Set) int { return a.SetNumber - b.SetNumber })
		w.Exercises = append(w.Exercises, we)
	}
	return w, nil
}
