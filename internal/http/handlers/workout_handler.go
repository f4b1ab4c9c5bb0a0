// Workout HTTP handlers for trainer-run sessions.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-workout-backend/internal/http/middleware"
	"github.com/tbourn/go-workout-backend/internal/services"
)

// LogWorkout godoc
// @ID          logWorkout
// @Summary     Log a trainer-run session
// @Description Records a workout for one of the trainer's clients under the same rules as a shared-link submission.
// @Description Supports Idempotency-Key: a retry with the same key replays the original workout with Idempotency-Replayed: true.
// @Tags        Workouts
// @Accept      json
// @Produce     json
//
// @Param       X-Trainer-ID     header  string  false "Trainer ID"  example(trainer-1)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"
// @Param       body             body    handlers.LogWorkoutRequest  true  "Performed workout"
//
// @Success     201  {object}  domain.Workout
// @Success     200  {object}  domain.Workout  "Replayed"
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse "Client or template not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /workouts [post]
func (h *Handlers) LogWorkout(c *gin.Context) {
	ctx := c.Request.Context()
	tid := trainerID(c)

	if id, hit := h.replayed(c); hit {
		if w, err := h.workouts.Get(ctx, tid, id); err == nil {
			c.Header(middleware.HeaderIdempotencyReplayed, "true")
			ok(c, http.StatusOK, w)
			return
		}
	}

	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "invalid JSON body: "+err.Error())
		return
	}
	w, err := h.workouts.Log(ctx, tid, services.LogWorkoutInput{
		ClientID:   req.ClientID,
		TemplateID: req.TemplateID,
		Submission: req.submission(),
	})
	if err != nil {
		failErr(c, err)
		return
	}
	h.remember(c, w.ID, http.StatusCreated)
	ok(c, http.StatusCreated, w)
}

// GetWorkout godoc
// @ID          getWorkout
// @Summary     Get a workout with its exercises and sets
// @Tags        Workouts
// @Produce     json
// @Param       X-Trainer-ID  header  string  false "Trainer ID"  example(trainer-1)
// @Param       id            path    string  true  "Workout ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.Workout
// @Failure     404  {object}  handlers.ErrorResponse "Workout not found"
// @Router      /workouts/{id} [get]
func (h *Handlers) GetWorkout(c *gin.Context) {
	id, okID := uuidParam(c, "id", "workout")
	if !okID {
		return
	}
	w, err := h.workouts.Get(c.Request.Context(), trainerID(c), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, w)
}
