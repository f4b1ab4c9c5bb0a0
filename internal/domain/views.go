package domain

import "time"

// LastPerformance is the most recent history of one client on one exercise.
// Sets is never nil; a workout that logged the exercise without sets yields
// an empty list.
type LastPerformance struct {
	Workout     Workout   `json:"workout"`
	WorkoutDate time.Time `json:"workout_date"`
	Sets        []Set     `json:"sets"`
}

// SessionExercise is one template entry enriched with the client's last
// performance. LastSets is empty (not nil) when there is no history, in which
// case the UI falls back to TargetSets/TargetReps as placeholders.
type SessionExercise struct {
	TemplateExerciseID string     `json:"template_exercise_id"`
	ExerciseID         string     `json:"exercise_id"`
	Name               string     `json:"name"`
	Category           string     `json:"category"`
	VideoURL           *string    `json:"video_url,omitempty"`
	Instructions       *string    `json:"instructions,omitempty"`
	OrderIndex         int        `json:"order_index"`
	TargetSets         int        `json:"target_sets"`
	TargetReps         string     `json:"target_reps"`
	Notes              *string    `json:"notes,omitempty"`
	LastWorkoutDate    *time.Time `json:"last_workout_date,omitempty"`
	LastSets           []Set      `json:"last_sets"`
}

// SessionClient is the part of a client exposed to a session view.
type SessionClient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SessionTemplate is the template part of a session view.
type SessionTemplate struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Exercises []SessionExercise `json:"exercises"`
}

// SessionView is the payload behind both the trainer-run session screen and
// the client-facing shared link page.
type SessionView struct {
	Client   SessionClient   `json:"client"`
	Template SessionTemplate `json:"template"`
}

// LinkView is a resolved, valid shared link.
type LinkView struct {
	SessionView
	ExpiresAt time.Time `json:"expires_at"`
}

// ClientSummary is a client row for the trainer dashboard.
type ClientSummary struct {
	Client
	LastWorkoutAt        *time.Time `json:"last_workout_at,omitempty"`
	DaysSinceLastWorkout *int       `json:"days_since_last_workout,omitempty"`
}
