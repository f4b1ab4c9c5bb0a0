package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-workout-backend/internal/domain"
)

// newTestDB returns a migrated, private in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func mustClient(t *testing.T, db *gorm.DB, trainerID, name string) *domain.Client {
	t.Helper()
	c := &domain.Client{TrainerID: trainerID, Name: name}
	if err := CreateClient(context.Background(), db, c); err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c
}

func mustExercise(t *testing.T, db *gorm.DB, name, category string) *domain.Exercise {
	t.Helper()
	e := &domain.Exercise{Name: name, Category: category}
	if err := CreateExercise(context.Background(), db, e); err != nil {
		t.Fatalf("create exercise: %v", err)
	}
	return e
}

func mustTemplate(t *testing.T, db *gorm.DB, clientID, name string) *domain.WorkoutTemplate {
	t.Helper()
	tmpl := &domain.WorkoutTemplate{ClientID: clientID, Name: name, IsActive: true}
	if err := CreateTemplate(context.Background(), db, tmpl); err != nil {
		t.Fatalf("create template: %v", err)
	}
	return tmpl
}

// mustWorkout writes a workout for clientID on date containing exerciseID
// with one set per entry of reps.
func mustWorkout(t *testing.T, db *gorm.DB, clientID, exerciseID string, date, created time.Time, reps ...int) (*domain.Workout, *domain.WorkoutExercise) {
	t.Helper()
	ctx := context.Background()
	w := &domain.Workout{ClientID: clientID, Date: date, CreatedAt: created, UpdatedAt: created}
	if err := CreateWorkout(ctx, db, w); err != nil {
		t.Fatalf("create workout: %v", err)
	}
	we := &domain.WorkoutExercise{WorkoutID: w.ID, ExerciseID: exerciseID}
	if err := CreateWorkoutExercise(ctx, db, we); err != nil {
		t.Fatalf("create workout exercise: %v", err)
	}
	for i, r := range reps {
		s := &domain.Set{WorkoutExerciseID: we.ID, SetNumber: i + 1, Reps: r, WeightKg: decimal.NewFromInt(int64(10 * (i + 1)))}
		if err := CreateSet(ctx, db, s); err != nil {
			t.Fatalf("create set: %v", err)
		}
	}
	return w, we
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }
