package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-workout-backend/internal/catalog"
	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/repo"
)

const trainer = "trainer-1"

func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	db.Exec("PRAGMA foreign_keys=ON;")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.AutoMigrate(db))
	return db
}

// fixture is a client with a two-exercise template.
type fixture struct {
	db     *gorm.DB
	client *domain.Client
	tmpl   *domain.WorkoutTemplate
	press  *domain.Exercise
	squat  *domain.Exercise
}

func newFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	ctx := context.Background()
	clients := &ClientService{DB: db}
	exercises := &ExerciseService{DB: db}
	templates := &TemplateService{DB: db}

	c, err := clients.Create(ctx, trainer, ClientInput{Name: "Ana Costa"})
	require.NoError(t, err)
	press, err := exercises.Create(ctx, catalog.Entry{Name: "Dumbbell Chest Press", Category: "chest"})
	require.NoError(t, err)
	squat, err := exercises.Create(ctx, catalog.Entry{Name: "Goblet Squats", Category: "legs"})
	require.NoError(t, err)
	tmpl, err := templates.Create(ctx, trainer, c.ID, "Full body")
	require.NoError(t, err)
	for _, e := range []*domain.Exercise{press, squat} {
		_, err := templates.AddExercise(ctx, trainer, tmpl.ID, TemplateExerciseInput{ExerciseID: e.ID, TargetReps: "8-12"})
		require.NoError(t, err)
	}
	return &fixture{db: db, client: c, tmpl: tmpl, press: press, squat: squat}
}

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func sub(exerciseID string, sets ...SetInput) Submission {
	return Submission{Exercises: []ExerciseInput{{ExerciseID: exerciseID, Sets: sets}}}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
