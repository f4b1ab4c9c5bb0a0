package services

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-workout-backend/internal/domain"
)

func TestWorkoutService_LogGetList(t *testing.T) {
	f := newFixture(t, newSvcDB(t))
	ctx := context.Background()
	c := &clock{t: time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)}
	s := &WorkoutService{DB: f.db, Now: c.Now}
	before := testutil.ToFloat64(workoutsLogged.WithLabelValues("trainer"))

	dur := 45
	notes := "good session"
	w, err := s.Log(ctx, trainer, LogWorkoutInput{
		ClientID:   f.client.ID,
		TemplateID: &f.tmpl.ID,
		Submission: Submission{
			Notes:           &notes,
			DurationMinutes: &dur,
			Exercises: []ExerciseInput{
				{ExerciseID: f.squat.ID, Sets: []SetInput{{Reps: "10", WeightKg: "24"}}},
				{ExerciseID: f.press.ID, Sets: []SetInput{{Reps: "8", WeightKg: "18", RPE: "9"}}},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(workoutsLogged.WithLabelValues("trainer")))
	require.Len(t, w.Exercises, 2)
	assert.Equal(t, f.squat.ID, w.Exercises[0].ExerciseID)
	assert.Equal(t, 1, w.Exercises[1].OrderIndex)

	got, err := s.Get(ctx, trainer, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, *got.DurationMinutes)
	assert.Equal(t, 9, *got.Exercises[1].Sets[0].RPE)
	_, err = s.Get(ctx, "trainer-2", w.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
	_, err = s.Get(ctx, trainer, "missing")
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	c.t = c.t.AddDate(0, 0, 2)
	adhoc, err := s.Log(ctx, trainer, LogWorkoutInput{ClientID: f.client.ID, Submission: sub(f.press.ID, SetInput{Reps: "5"})})
	require.NoError(t, err)
	assert.Nil(t, adhoc.TemplateID)

	items, total, err := s.ListForClient(ctx, trainer, f.client.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, adhoc.ID, items[0].ID)
}

func TestWorkoutService_LogRejects(t *testing.T) {
	f := newFixture(t, newSvcDB(t))
	ctx := context.Background()
	s := &WorkoutService{DB: f.db}

	_, err := s.Log(ctx, "trainer-2", LogWorkoutInput{ClientID: f.client.ID, Submission: sub(f.press.ID, SetInput{Reps: "5"})})
	assert.ErrorIs(t, err, ErrClientNotFound)

	missing := "missing"
	_, err = s.Log(ctx, trainer, LogWorkoutInput{ClientID: f.client.ID, TemplateID: &missing, Submission: sub(f.press.ID, SetInput{Reps: "5"})})
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = s.Log(ctx, trainer, LogWorkoutInput{ClientID: f.client.ID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Log(ctx, trainer, LogWorkoutInput{ClientID: f.client.ID, Submission: sub("ghost", SetInput{Reps: "5"})})
	assert.ErrorIs(t, err, ErrValidation)

	assert.EqualValues(t, 0, countRows(t, f.db, &domain.Workout{}))
	_, _, err = s.ListForClient(ctx, "trainer-2", f.client.ID, 1, 10)
	assert.ErrorIs(t, err, ErrClientNotFound)
}
