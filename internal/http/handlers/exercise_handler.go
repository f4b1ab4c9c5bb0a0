package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-workout-backend/internal/catalog"
	"github.com/tbourn/go-workout-backend/internal/utils"
)

// ListExercises godoc
// @ID          listExercises
// @Summary     List or search the exercise catalog
// @Description Without q, returns the whole catalog by name. With q, returns the best matches (prefix-aware word overlap).
// @Tags        Exercises
// @Produce     json
// @Param       q      query  string  false "Search text"  example(press)
// @Param       limit  query  int     false "Max results when searching"  minimum(1) maximum(100) default(10)
// @Success     200  {object}  handlers.ListExercisesResponse
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /exercises [get]
func (h *Handlers) ListExercises(c *gin.Context) {
	ctx := c.Request.Context()
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		k := min(max(utils.AtoiDefault(c.Query("limit"), 10), 1), utils.MaxPageSize)
		items, err := h.exercises.Search(ctx, q, k)
		if err != nil {
			failErr(c, err)
			return
		}
		ok(c, http.StatusOK, ListExercisesResponse{Exercises: items})
		return
	}
	items, err := h.exercises.List(ctx)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListExercisesResponse{Exercises: items})
}

// CreateExercise godoc
// @ID          createExercise
// @Summary     Add an exercise to the catalog
// @Tags        Exercises
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateExerciseRequest  true  "Exercise"
// @Success     201  {object}  domain.Exercise
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     409  {object}  handlers.ErrorResponse "Name already taken"
// @Router      /exercises [post]
func (h *Handlers) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "name and category required; video_url must be a URL")
		return
	}
	ex, err := h.exercises.Create(c.Request.Context(), catalog.Entry{
		Name:         req.Name,
		Category:     req.Category,
		Instructions: req.Instructions,
		VideoURL:     req.VideoURL,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, ex)
}
