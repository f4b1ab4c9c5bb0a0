package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestClients_ScopedToTrainer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	mine := mustClient(t, db, "trainer-1", "Zoe")
	mustClient(t, db, "trainer-1", "Adam")
	theirs := mustClient(t, db, "trainer-2", "Eve")

	if _, err := GetClient(ctx, db, "trainer-1", mine.ID); err != nil {
		t.Fatalf("GetClient own: %v", err)
	}
	if _, err := GetClient(ctx, db, "trainer-1", theirs.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign client, got %v", err)
	}
	if c, err := GetClientByID(ctx, db, theirs.ID); err != nil || c.TrainerID != "trainer-2" {
		t.Fatalf("GetClientByID: %+v, %v", c, err)
	}

	n, err := CountClients(ctx, db, "trainer-1")
	if err != nil || n != 2 {
		t.Fatalf("CountClients = %d, %v", n, err)
	}
	page, err := ListClientsPage(ctx, db, "trainer-1", 0, 10)
	if err != nil {
		t.Fatalf("ListClientsPage: %v", err)
	}
	if len(page) != 2 || page[0].Name != "Adam" || page[1].Name != "Zoe" {
		t.Fatalf("expected name order, got %+v", page)
	}
}

func TestLatestWorkoutDates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := mustClient(t, db, "trainer-1", "A")
	b := mustClient(t, db, "trainer-1", "B")
	e := mustExercise(t, db, "Plank", "Core")
	now := time.Now().UTC()

	mustWorkout(t, db, a.ID, e.ID, day(2024, 6, 1), now)
	mustWorkout(t, db, a.ID, e.ID, day(2024, 6, 9), now)

	got, err := LatestWorkoutDates(ctx, db, []string{a.ID, b.ID})
	if err != nil {
		t.Fatalf("LatestWorkoutDates: %v", err)
	}
	if d, ok := got[a.ID]; !ok || !d.Equal(day(2024, 6, 9)) {
		t.Fatalf("latest for A = %v (present=%v)", d, ok)
	}
	if _, ok := got[b.ID]; ok {
		t.Fatalf("client without workouts must be absent")
	}
	if empty, err := LatestWorkoutDates(ctx, db, nil); err != nil || len(empty) != 0 {
		t.Fatalf("nil ids: %v, %v", empty, err)
	}
}
