package domain

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:domain_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Enforce FKs so cascades actually execute. The pragma is per
	// connection, so pin the pool to one.
	db.Exec("PRAGMA foreign_keys=ON;")
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	if err := db.AutoMigrate(&Client{}, &Exercise{}, &WorkoutTemplate{}, &TemplateExercise{},
		&Workout{}, &WorkoutExercise{}, &Set{}, &SharedWorkoutLink{}, &Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(Client{}).TableName():            "clients",
		(Exercise{}).TableName():          "exercises",
		(WorkoutTemplate{}).TableName():   "workout_templates",
		(TemplateExercise{}).TableName():  "template_exercises",
		(Workout{}).TableName():           "workouts",
		(WorkoutExercise{}).TableName():   "workout_exercises",
		(Set{}).TableName():               "sets",
		(SharedWorkoutLink{}).TableName(): "shared_workout_links",
		(Idempotency{}).TableName():       "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestMigrations_Indexes(t *testing.T) {
	db := newDomainDB(t)
	m := db.Migrator()

	checks := []struct {
		model any
		index string
	}{
		{&Client{}, "idx_trainer_clients"},
		{&Exercise{}, "ux_exercise_name"},
		{&TemplateExercise{}, "idx_template_order"},
		{&Workout{}, "idx_client_date"},
		{&WorkoutExercise{}, "idx_workout_exercises"},
		{&WorkoutExercise{}, "idx_exercise_history"},
		{&Set{}, "ux_set_number"},
		{&SharedWorkoutLink{}, "ux_link_token"},
		{&Idempotency{}, "ux_idem_scope_key"},
	}
	for _, c := range checks {
		if !m.HasIndex(c.model, c.index) {
			t.Fatalf("expected index %s on %T", c.index, c.model)
		}
	}
}

func seedWorkout(t *testing.T, db *gorm.DB) (Client, Workout, WorkoutExercise) {
	t.Helper()
	c := Client{ID: uuid.NewString(), TrainerID: "t1", Name: "Ana"}
	ex := Exercise{ID: uuid.NewString(), Name: "Plank " + uuid.NewString()[:8], Category: "Core"}
	w := Workout{ID: uuid.NewString(), ClientID: c.ID, Date: time.Now().UTC()}
	we := WorkoutExercise{ID: uuid.NewString(), WorkoutID: w.ID, ExerciseID: ex.ID}
	for _, v := range []any{&c, &ex, &w, &we} {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("seed %T: %v", v, err)
		}
	}
	return c, w, we
}

func TestSet_DecimalWeight_RoundTrip(t *testing.T) {
	db := newDomainDB(t)
	_, _, we := seedWorkout(t, db)

	s := Set{ID: uuid.NewString(), WorkoutExerciseID: we.ID, SetNumber: 1, Reps: 8, WeightKg: decimal.RequireFromString("22.5")}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create set: %v", err)
	}
	var got Set
	if err := db.First(&got, "id = ?", s.ID).Error; err != nil {
		t.Fatalf("load set: %v", err)
	}
	if got.WeightKg.StringFixed(2) != "22.50" || got.Reps != 8 {
		t.Fatalf("round-trip mismatch: weight=%s reps=%d", got.WeightKg.StringFixed(2), got.Reps)
	}
}

func TestSet_MarshalJSON_TwoDecimalWeight(t *testing.T) {
	cases := map[string]string{"20": "20.00", "22.5": "22.50", "0": "0.00", "999.99": "999.99"}
	for in, want := range cases {
		b, err := json.Marshal(Set{ID: "s1", SetNumber: 1, Reps: 8, WeightKg: decimal.RequireFromString(in)})
		if err != nil {
			t.Fatalf("marshal %s: %v", in, err)
		}
		var got map[string]any
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["weight_kg"] != want {
			t.Fatalf("weight_kg for %s = %v; want %q", in, got["weight_kg"], want)
		}
		if got["set_number"] != float64(1) || got["id"] != "s1" {
			t.Fatalf("other fields lost: %s", b)
		}
	}

	// slices of sets go through the same path
	b, err := json.Marshal([]Set{{WeightKg: decimal.NewFromInt(20)}})
	if err != nil {
		t.Fatalf("marshal slice: %v", err)
	}
	var back []Set
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal slice: %v", err)
	}
	if !back[0].WeightKg.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("decoded weight %s", back[0].WeightKg)
	}
}

func TestSet_UniqueSetNumberPerExercise(t *testing.T) {
	db := newDomainDB(t)
	_, _, we := seedWorkout(t, db)

	a := Set{ID: uuid.NewString(), WorkoutExerciseID: we.ID, SetNumber: 1, Reps: 5}
	b := Set{ID: uuid.NewString(), WorkoutExerciseID: we.ID, SetNumber: 1, Reps: 6}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := db.Create(&b).Error; err == nil {
		t.Fatalf("expected unique violation on duplicate set_number")
	}
}

func TestSet_RPECheck(t *testing.T) {
	db := newDomainDB(t)
	_, _, we := seedWorkout(t, db)

	bad := 11
	s := Set{ID: uuid.NewString(), WorkoutExerciseID: we.ID, SetNumber: 1, Reps: 5, RPE: &bad}
	if err := db.Create(&s).Error; err == nil {
		t.Fatalf("expected check constraint failure for rpe=11")
	}
}

func TestWorkout_CascadeDeletesChildren(t *testing.T) {
	db := newDomainDB(t)
	_, w, we := seedWorkout(t, db)
	if err := db.Create(&Set{ID: uuid.NewString(), WorkoutExerciseID: we.ID, SetNumber: 1, Reps: 3}).Error; err != nil {
		t.Fatalf("seed set: %v", err)
	}

	if err := db.Delete(&Workout{}, "id = ?", w.ID).Error; err != nil {
		t.Fatalf("delete workout: %v", err)
	}
	var n int64
	db.Model(&Set{}).Where("workout_exercise_id = ?", we.ID).Count(&n)
	if n != 0 {
		t.Fatalf("expected sets to cascade, %d left", n)
	}
}

func TestIdempotency_UniqueScopeKey(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()
	a := Idempotency{ID: uuid.NewString(), Scope: "link:abc", Key: "k1", ResourceID: uuid.NewString(), Status: 200, ExpiresAt: now.Add(time.Hour)}
	b := a
	b.ID = uuid.NewString()
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.Create(&b).Error; err == nil {
		t.Fatalf("expected duplicate (scope,key) to fail")
	}
}

func TestSharedWorkoutLink_ParentsCannotBeDeleted(t *testing.T) {
	db := newDomainDB(t)
	c := Client{ID: uuid.NewString(), TrainerID: "t1", Name: "Ana"}
	tpl := WorkoutTemplate{ID: uuid.NewString(), ClientID: c.ID, Name: "Push", IsActive: true}
	link := SharedWorkoutLink{ID: uuid.NewString(), ClientID: c.ID, TemplateID: tpl.ID,
		Token: uuid.NewString(), ExpiresAt: time.Now().Add(time.Hour)}
	for _, v := range []any{&c, &tpl, &link} {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("seed %T: %v", v, err)
		}
	}

	if err := db.Delete(&WorkoutTemplate{}, "id = ?", tpl.ID).Error; err == nil {
		t.Fatalf("expected template delete to be restricted")
	}
	if err := db.Delete(&Client{}, "id = ?", c.ID).Error; err == nil {
		t.Fatalf("expected client delete to be restricted")
	}
	var n int64
	db.Model(&SharedWorkoutLink{}).Where("id = ?", link.ID).Count(&n)
	if n != 1 {
		t.Fatalf("expected link to survive, %d rows", n)
	}
}
