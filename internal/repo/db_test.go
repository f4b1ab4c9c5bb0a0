package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tbourn/go-workout-backend/internal/config"
	"github.com/tbourn/go-workout-backend/internal/domain"
)

func TestOpenSQLite_ErrorOnBadPath(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "does-not-exist", "app.db")

	db, err := OpenSQLite(bad)
	if err == nil || db != nil {
		t.Fatalf("expected error opening %q, got db=%v err=%v", bad, db, err)
	}
	lower := strings.ToLower(err.Error())
	if !(os.IsNotExist(err) ||
		strings.Contains(lower, "unable to open database file") ||
		strings.Contains(lower, "no such file or directory")) {
		t.Fatalf("unexpected error opening %q: %v", bad, err)
	}
}

func TestOpenSQLite_PragmasPoolAndMigrate(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "workouts.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	var journal string
	if err := db.Raw("PRAGMA journal_mode;").Row().Scan(&journal); err != nil || strings.ToLower(journal) != "wal" {
		t.Fatalf("journal_mode = %q, err=%v", journal, err)
	}
	var fk int
	if err := db.Raw("PRAGMA foreign_keys;").Row().Scan(&fk); err != nil || fk != 1 {
		t.Fatalf("foreign_keys = %d, err=%v", fk, err)
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("expected a single writer connection, got %d", got)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	for _, m := range Models() {
		if !db.Migrator().HasTable(m) {
			t.Fatalf("expected table for %T", m)
		}
	}
}

func TestOpen_Drivers(t *testing.T) {
	if _, err := Open(config.DBConfig{Driver: "oracle"}, false); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}

	db, err := Open(config.DBConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "w.db")}, true)
	if err != nil {
		t.Fatalf("Open sqlite with tracing: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&domain.Client{ID: "c1", TrainerID: "t", Name: "n"}).Error; err != nil {
		t.Fatalf("insert through traced db: %v", err)
	}
}

func TestModels_ParentsFirst(t *testing.T) {
	ms := Models()
	if _, ok := ms[0].(*domain.Client); !ok {
		t.Fatalf("clients must migrate first, got %T", ms[0])
	}
	pos := map[string]int{}
	for i, m := range ms {
		pos[strings.TrimPrefix(strings.TrimPrefix(typeName(m), "*"), "domain.")] = i
	}
	if !(pos["Workout"] < pos["WorkoutExercise"] && pos["WorkoutExercise"] < pos["Set"]) {
		t.Fatalf("workout hierarchy out of order: %v", pos)
	}
}
