// Package domain defines the persistence models of the workout tracker:
// clients, the exercise catalog, templates, logged workouts with their sets,
// and the shared links that let a client self-report one session. These types
// are mapped with GORM and shared by the repository and service layers.
package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Client is a person coached by a trainer. Every client belongs to exactly
// one trainer; the trainer id is an opaque identity string.
type Client struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	TrainerID string    `json:"trainer_id" gorm:"type:varchar(64);not null;index:idx_trainer_clients"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	Email     *string   `json:"email,omitempty" gorm:"type:varchar(255)"`
	Phone     *string   `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Notes     *string   `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Client.
func (Client) TableName() string { return "clients" }

// Exercise is an entry of the shared exercise catalog.
type Exercise struct {
	ID           string    `json:"id"       gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name"     gorm:"type:varchar(255);not null;uniqueIndex:ux_exercise_name"`
	Category     string    `json:"category" gorm:"type:varchar(100);not null;index"`
	VideoURL     *string   `json:"video_url,omitempty"    gorm:"type:varchar(500)"`
	Instructions *string   `json:"instructions,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for Exercise.
func (Exercise) TableName() string { return "exercises" }

// WorkoutTemplate is a reusable, trainer-authored plan for one client.
// Exercises is filled by the repository, not by GORM associations, so the
// child tables keep their inline foreign keys.
type WorkoutTemplate struct {
	ID        string             `json:"id"        gorm:"type:char(36);primaryKey"`
	ClientID  string             `json:"client_id" gorm:"type:char(36);not null;index"`
	Name      string             `json:"name"      gorm:"type:varchar(255);not null"`
	IsActive  bool               `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Exercises []TemplateExercise `json:"exercises,omitempty" gorm:"-"`

	Client Client `json:"-" gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for WorkoutTemplate.
func (WorkoutTemplate) TableName() string { return "workout_templates" }

// TemplateExercise places one catalog exercise at a position of a template.
// TargetReps is free text so ranges such as "8-12" survive unchanged.
type TemplateExercise struct {
	ID         string  `json:"id"          gorm:"type:char(36);primaryKey"`
	TemplateID string  `json:"template_id" gorm:"type:char(36);not null;index:idx_template_order,priority:1"`
	ExerciseID string  `json:"exercise_id" gorm:"type:char(36);not null;index"`
	OrderIndex int     `json:"order_index" gorm:"not null;index:idx_template_order,priority:2"`
	TargetSets int     `json:"target_sets" gorm:"not null;default:3"`
	TargetReps string  `json:"target_reps" gorm:"type:varchar(50);not null;default:'10'"`
	Notes      *string `json:"notes,omitempty" gorm:"type:text"`

	Exercise Exercise `json:"exercise" gorm:"foreignKey:ExerciseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for TemplateExercise.
func (TemplateExercise) TableName() string { return "template_exercises" }

// Workout is a dated, completed session. TemplateID is nil for ad hoc
// sessions. The (client_id, date) index backs the last-performance lookup.
type Workout struct {
	ID              string            `json:"id"          gorm:"type:char(36);primaryKey"`
	ClientID        string            `json:"client_id"   gorm:"type:char(36);not null;index:idx_client_date,priority:1"`
	TemplateID      *string           `json:"template_id,omitempty" gorm:"type:char(36);index"`
	Date            time.Time         `json:"date"        gorm:"not null;index:idx_client_date,priority:2"`
	DurationMinutes *int              `json:"duration_minutes,omitempty"`
	Notes           *string           `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Exercises       []WorkoutExercise `json:"exercises,omitempty" gorm:"-"`

	Client Client `json:"-" gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Workout.
func (Workout) TableName() string { return "workouts" }

// WorkoutExercise is one exercise performed within a workout.
type WorkoutExercise struct {
	ID         string  `json:"id"          gorm:"type:char(36);primaryKey"`
	WorkoutID  string  `json:"workout_id"  gorm:"type:char(36);not null;index:idx_workout_exercises"`
	ExerciseID string  `json:"exercise_id" gorm:"type:char(36);not null;index:idx_exercise_history"`
	OrderIndex int     `json:"order_index" gorm:"not null"`
	Notes      *string `json:"notes,omitempty" gorm:"type:text"`
	Sets       []Set   `json:"sets" gorm:"-"`

	Workout  Workout  `json:"-" gorm:"foreignKey:WorkoutID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Exercise Exercise `json:"-" gorm:"foreignKey:ExerciseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for WorkoutExercise.
func (WorkoutExercise) TableName() string { return "workout_exercises" }

// Set is a single logged set. SetNumber is 1-based, unique within its
// workout exercise, and defines display order.
type Set struct {
	ID                string          `json:"id"                  gorm:"type:char(36);primaryKey"`
	WorkoutExerciseID string          `json:"workout_exercise_id" gorm:"type:char(36);not null;uniqueIndex:ux_set_number,priority:1"`
	SetNumber         int             `json:"set_number"          gorm:"not null;uniqueIndex:ux_set_number,priority:2;check:set_number >= 1"`
	Reps              int             `json:"reps"                gorm:"not null;check:reps >= 0"`
	WeightKg          decimal.Decimal `json:"weight_kg"           gorm:"type:decimal(5,2);not null;default:0" swaggertype:"string" example:"22.50"`
	RestSeconds       *int            `json:"rest_seconds,omitempty"`
	RPE               *int            `json:"rpe,omitempty" gorm:"column:rpe;check:rpe IS NULL OR (rpe BETWEEN 1 AND 10)"`
	Notes             *string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt         time.Time       `json:"created_at"`

	WorkoutExercise WorkoutExercise `json:"-" gorm:"foreignKey:WorkoutExerciseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Set.
func (Set) TableName() string { return "sets" }

type setJSON Set

// MarshalJSON renders weight_kg with exactly two decimals, matching the
// column's scale, so 20 goes out as "20.00".
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		setJSON
		WeightKg string `json:"weight_kg"`
	}{setJSON(s), s.WeightKg.StringFixed(2)})
}
