package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/services"
)

// NumberText accepts a JSON number, a numeric string, "" or null and keeps
// the raw text. Forms send set fields as strings while scripts send numbers;
// parsing and range checks happen in the services.
type NumberText string

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumberText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*n = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberText(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected a number or string, got %s", b)
	}
	*n = NumberText(num.String())
	return nil
}

// CreateClientRequest is the payload of POST /clients.
type CreateClientRequest struct {
	Name  string  `json:"name"  binding:"required,max=255" example:"Ana Costa"`
	Email *string `json:"email" binding:"omitempty,email,max=255" example:"ana@example.com"`
	Phone *string `json:"phone" binding:"omitempty,max=50" example:"+351 912 345 678"`
	Notes *string `json:"notes" example:"Knee surgery 2023, avoid deep squats"`
}

// CreateTemplateRequest is the payload of POST /clients/{id}/templates.
type CreateTemplateRequest struct {
	Name string `json:"name" binding:"required,max=255" example:"Upper body A"`
}

// AddTemplateExerciseRequest is the payload of POST /templates/{id}/exercises.
// Zero or missing targets default to 3 sets of "10".
type AddTemplateExerciseRequest struct {
	ExerciseID string  `json:"exercise_id" binding:"required" format:"uuid"`
	OrderIndex *int    `json:"order_index" binding:"omitempty,min=0"`
	TargetSets int     `json:"target_sets" binding:"omitempty,min=1,max=100" example:"3"`
	TargetReps string  `json:"target_reps" binding:"omitempty,max=50" example:"8-12"`
	Notes      *string `json:"notes"`
}

// CreateExerciseRequest is the payload of POST /exercises.
type CreateExerciseRequest struct {
	Name         string `json:"name"     binding:"required,max=255" example:"Bulgarian Split Squat"`
	Category     string `json:"category" binding:"required,max=100" example:"legs"`
	Instructions string `json:"instructions"`
	VideoURL     string `json:"video_url" binding:"omitempty,url,max=500"`
}

// SetRequest is one set of a submission. A set with empty reps was not
// performed and is skipped. set_number 0 or missing means "use position".
type SetRequest struct {
	SetNumber   int        `json:"set_number" example:"1"`
	Reps        NumberText `json:"reps" swaggertype:"string" example:"10"`
	WeightKg    NumberText `json:"weight_kg" swaggertype:"string" example:"22.5"`
	RestSeconds NumberText `json:"rest_seconds" swaggertype:"string" example:"90"`
	RPE         NumberText `json:"rpe" swaggertype:"string" example:"8"`
	Notes       *string    `json:"notes"`
}

// ExerciseRequest is one performed exercise of a submission.
type ExerciseRequest struct {
	ExerciseID string       `json:"exercise_id" format:"uuid"`
	Notes      *string      `json:"notes"`
	Sets       []SetRequest `json:"sets"`
}

// SubmitWorkoutRequest is the payload of POST /workout/{token}/submit.
type SubmitWorkoutRequest struct {
	Notes           *string           `json:"notes"`
	DurationMinutes *int              `json:"duration_minutes"`
	Exercises       []ExerciseRequest `json:"exercises"`
}

func (r SubmitWorkoutRequest) submission() services.Submission {
	sub := services.Submission{
		Notes:           r.Notes,
		DurationMinutes: r.DurationMinutes,
		Exercises:       make([]services.ExerciseInput, 0, len(r.Exercises)),
	}
	for _, ex := range r.Exercises {
		in := services.ExerciseInput{
			ExerciseID: ex.ExerciseID,
			Notes:      ex.Notes,
			Sets:       make([]services.SetInput, 0, len(ex.Sets)),
		}
		for _, s := range ex.Sets {
			in.Sets = append(in.Sets, services.SetInput{
				SetNumber:   s.SetNumber,
				Reps:        string(s.Reps),
				WeightKg:    string(s.WeightKg),
				RestSeconds: string(s.RestSeconds),
				RPE:         string(s.RPE),
				Notes:       s.Notes,
			})
		}
		sub.Exercises = append(sub.Exercises, in)
	}
	return sub
}

// LogWorkoutRequest is the payload of POST /workouts, a trainer-run session.
type LogWorkoutRequest struct {
	ClientID   string  `json:"client_id" binding:"required" format:"uuid"`
	TemplateID *string `json:"template_id" format:"uuid"`
	SubmitWorkoutRequest
}

// ShareLinkResponse is returned by the share endpoint.
type ShareLinkResponse struct {
	Link domain.SharedWorkoutLink `json:"link"`
	URL  string                   `json:"url" example:"https://app.example.com/workout/5f2b..."`
}

// SubmitWorkoutResponse acknowledges a shared-link submission.
type SubmitWorkoutResponse struct {
	Message string         `json:"message" example:"Workout submitted successfully"`
	Workout domain.Workout `json:"workout"`
}

// ListClientsResponse is a page of client summaries.
type ListClientsResponse struct {
	Clients    []domain.ClientSummary `json:"clients"`
	Pagination Pagination             `json:"pagination"`
}

// ListWorkoutsResponse is a page of a client's workouts, newest first.
type ListWorkoutsResponse struct {
	Workouts   []domain.Workout `json:"workouts"`
	Pagination Pagination       `json:"pagination"`
}

// ListTemplatesResponse lists a client's templates.
type ListTemplatesResponse struct {
	Templates []domain.WorkoutTemplate `json:"templates"`
}

// ListExercisesResponse lists catalog exercises.
type ListExercisesResponse struct {
	Exercises []domain.Exercise `json:"exercises"`
}
