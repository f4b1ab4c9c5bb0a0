package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-workout-backend/internal/domain"
)

func TestSessionService_ForTrainer(t *testing.T) {
	f := newFixture(t, newSvcDB(t))
	ctx := context.Background()
	sessions := &SessionService{DB: f.db}

	workouts := &WorkoutService{DB: f.db, Now: (&clock{t: time.Now().UTC()}).Now}
	_, err := workouts.Log(ctx, trainer, LogWorkoutInput{
		ClientID:   f.client.ID,
		TemplateID: &f.tmpl.ID,
		Submission: sub(f.squat.ID, SetInput{Reps: "12", WeightKg: "16"}),
	})
	require.NoError(t, err)

	view, err := sessions.ForTrainer(ctx, trainer, f.client.ID, f.tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionClient{ID: f.client.ID, Name: "Ana Costa"}, view.Client)
	require.Len(t, view.Template.Exercises, 2)

	press, squat := view.Template.Exercises[0], view.Template.Exercises[1]
	assert.Equal(t, 0, press.OrderIndex)
	assert.Equal(t, "Chest", press.Category)
	assert.Equal(t, "8-12", press.TargetReps)
	assert.Equal(t, 3, press.TargetSets)
	assert.NotNil(t, press.LastSets)
	assert.Empty(t, press.LastSets)

	assert.Equal(t, 1, squat.OrderIndex)
	require.Len(t, squat.LastSets, 1)
	assert.Equal(t, "16.00", squat.LastSets[0].WeightKg.StringFixed(2))

	_, err = sessions.ForTrainer(ctx, "trainer-2", f.client.ID, f.tmpl.ID)
	assert.ErrorIs(t, err, ErrClientNotFound)
	_, err = sessions.ForTrainer(ctx, trainer, f.client.ID, "missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	other, err := (&ClientService{DB: f.db}).Create(ctx, trainer, ClientInput{Name: "Ben"})
	require.NoError(t, err)
	_, err = sessions.ForTrainer(ctx, trainer, other.ID, f.tmpl.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestSessionService_EmptyTemplate(t *testing.T) {
	f := newFixture(t, newSvcDB(t))
	ctx := context.Background()
	tmpl, err := (&TemplateService{DB: f.db}).Create(ctx, trainer, f.client.ID, "Rest day")
	require.NoError(t, err)

	view, err := (&SessionService{DB: f.db}).BuildSessionView(ctx, tmpl, f.client)
	require.NoError(t, err)
	assert.NotNil(t, view.Template.Exercises)
	assert.Empty(t, view.Template.Exercises)
}
