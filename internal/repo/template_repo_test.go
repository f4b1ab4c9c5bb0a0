package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-workout-backend/internal/domain"
)

func TestTemplates_OwnershipAndOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c := mustClient(t, db, "trainer-1", "Ana")
	tmpl := mustTemplate(t, db, c.ID, "Pull")
	row := mustExercise(t, db, "Row", "Back")
	curl := mustExercise(t, db, "Curl", "Arms")

	if _, err := GetTemplateForTrainer(ctx, db, "trainer-2", tmpl.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign trainer, got %v", err)
	}
	if got, err := GetTemplateForTrainer(ctx, db, "trainer-1", tmpl.ID); err != nil || got.ID != tmpl.ID {
		t.Fatalf("GetTemplateForTrainer: %+v, %v", got, err)
	}

	next, err := NextTemplateOrderIndex(ctx, db, tmpl.ID)
	if err != nil || next != 0 {
		t.Fatalf("NextTemplateOrderIndex on empty = %d, %v", next, err)
	}
	for _, e := range []*domain.Exercise{row, curl} {
		idx, err := NextTemplateOrderIndex(ctx, db, tmpl.ID)
		if err != nil {
			t.Fatalf("NextTemplateOrderIndex: %v", err)
		}
		te := &domain.TemplateExercise{TemplateID: tmpl.ID, ExerciseID: e.ID, OrderIndex: idx, TargetSets: 3, TargetReps: "8-12"}
		if err := CreateTemplateExercise(ctx, db, te); err != nil {
			t.Fatalf("CreateTemplateExercise: %v", err)
		}
	}

	got, err := GetTemplate(ctx, db, tmpl.ID)
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	if err := LoadTemplateExercises(ctx, db, got); err != nil {
		t.Fatalf("LoadTemplateExercises: %v", err)
	}
	if len(got.Exercises) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(got.Exercises))
	}
	if got.Exercises[0].Exercise.Name != "Row" || got.Exercises[1].OrderIndex != 1 || got.Exercises[1].TargetReps != "8-12" {
		t.Fatalf("unexpected template exercises: %+v", got.Exercises)
	}

	list, err := ListTemplates(ctx, db, c.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListTemplates: %+v, %v", list, err)
	}
}
