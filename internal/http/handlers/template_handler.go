// Template HTTP handlers.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-workout-backend/internal/services"
)

// ListTemplates godoc
// @ID          listTemplates
// @Summary     List a client's templates
// @Tags        Templates
// @Produce     json
// @Param       X-Trainer-ID  header  string  false "Trainer ID"  example(trainer-1)
// @Param       id            path    string  true  "Client ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.ListTemplatesResponse
// @Failure     404  {object}  handlers.ErrorResponse "Client not found"
// @Router      /clients/{id}/templates [get]
func (h *Handlers) ListTemplates(c *gin.Context) {
	clientID, okID := uuidParam(c, "id", "client")
	if !okID {
		return
	}
	items, err := h.templates.ListForClient(c.Request.Context(), trainerID(c), clientID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListTemplatesResponse{Templates: items})
}

// CreateTemplate godoc
// @ID          createTemplate
// @Summary     Create a template for a client
// @Tags        Templates
// @Accept      json
// @Produce     json
// @Param       X-Trainer-ID  header  string  false "Trainer ID"  example(trainer-1)
// @Param       id            path    string  true  "Client ID (UUID)"  format(uuid)
// @Param       body          body    handlers.CreateTemplateRequest  true  "Template"
// @Success     201  {object}  domain.WorkoutTemplate
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse "Client not found"
// @Router      /clients/{id}/templates [post]
func (h *Handlers) CreateTemplate(c *gin.Context) {
	clientID, okID := uuidParam(c, "id", "client")
	if !okID {
		return
	}
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "name required (max 255 chars)")
		return
	}
	t, err := h.templates.Create(c.Request.Context(), trainerID(c), clientID, req.Name)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, t)
}

// GetTemplate godoc
// @ID          getTemplate
// @Summary     Get a template with its exercises
// @Tags        Templates
// @Produce     json
// @Param       X-Trainer-ID  header  string  false "Trainer ID"  example(trainer-1)
// @Param       id            path    string  true  "Template ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.WorkoutTemplate
// @Failure     404  {object}  handlers.ErrorResponse "Template not found"
// @Router      /templates/{id} [get]
func (h *Handlers) GetTemplate(c *gin.Context) {
	id, okID := uuidParam(c, "id", "template")
	if !okID {
		return
	}
	t, err := h.templates.Get(c.Request.Context(), trainerID(c), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, t)
}

// AddTemplateExercise godoc
// @ID          addTemplateExercise
// @Summary     Add an exercise to a template
// @Description Appends at the end unless order_index is given. Targets default to 3 sets of "10".
// @Tags        Templates
// @Accept      json
// @Produce     json
// @Param       X-Trainer-ID  header  string  false "Trainer ID"  example(trainer-1)
// @Param       id            path    string  true  "Template ID (UUID)"  format(uuid)
// @Param       body          body    handlers.AddTemplateExerciseRequest  true  "Template exercise"
// @Success     201  {object}  domain.TemplateExercise
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse "Template or exercise not found"
// @Router      /templates/{id}/exercises [post]
func (h *Handlers) AddTemplateExercise(c *gin.Context) {
	id, okID := uuidParam(c, "id", "template")
	if !okID {
		return
	}
	var req AddTemplateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "exercise_id required; target_sets 1-100")
		return
	}
	te, err := h.templates.AddExercise(c.Request.Context(), trainerID(c), id, services.TemplateExerciseInput{
		ExerciseID: req.ExerciseID,
		OrderIndex: req.OrderIndex,
		TargetSets: req.TargetSets,
		TargetReps: req.TargetReps,
		Notes:      req.Notes,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, te)
}

// SessionView godoc
// @ID          sessionView
// @Summary     Trainer-run session screen
// @Description Template exercises in order, each with the client's last performance (empty when there is no history).
// @Tags        Templates
// @Produce     json
// @Param       X-Trainer-ID  header  string  false "Trainer ID"  example(trainer-1)
// @Param       id            path    string  true  "Client ID (UUID)"    format(uuid)
// @Param       templateId    path    string  true  "Template ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.SessionView
// @Failure     404  {object}  handlers.ErrorResponse "Client or template not found"
// @Router      /clients/{id}/templates/{templateId}/session [get]
func (h *Handlers) SessionView(c *gin.Context) {
	clientID, okID := uuidParam(c, "id", "client")
	if !okID {
		return
	}
	templateID, okID := uuidParam(c, "templateId", "template")
	if !okID {
		return
	}
	view, err := h.sessions.ForTrainer(c.Request.Context(), trainerID(c), clientID, templateID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, view)
}
