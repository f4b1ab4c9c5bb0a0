// Client HTTP handlers.
//
//   - GET  /clients                                        (list, paginated, ETag)
//   - POST /clients                                        (create)
//   - GET  /clients/{id}                                   (get)
//   - GET  /clients/{id}/workouts                          (history, paginated)
//   - GET  /clients/{id}/exercises/{exerciseId}/last-performance
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-workout-backend/internal/services"
)

// ListClients godoc
// @ID          listClients
// @Summary     List clients (paginated)
// @Description Returns the trainer's clients with the date of their last workout. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Clients
// @Produce     json
//
// @Param       X-Trainer-ID   header  string  false "Trainer ID"                  example(trainer-1)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListClientsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /clients [get]
func (h *Handlers) ListClients(c *gin.Context) {
	ctx := c.Request.Context()
	tid := trainerID(c)
	page, pageSize := clampPagination(c)

	// Best effort: a stats failure only skips the conditional response.
	if count, maxTS, err := h.clients.Stats(ctx, tid); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"clients:%s:%d:%d:%d:%d"`, tid, count, ts, page, pageSize)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.clients.ListPage(ctx, tid, page, pageSize)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListClientsResponse{Clients: items, Pagination: newPagination(page, pageSize, total)})
}

// CreateClient godoc
// @ID          createClient
// @Summary     Create a client
// @Tags        Clients
// @Accept      json
// @Produce     json
//
// @Param       X-Trainer-ID  header  string  false "Trainer ID"  example(trainer-1)
// @Param       body          body    handlers.CreateClientRequest  true  "Client"
//
// @Success     201  {object}  domain.Client
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /clients [post]
func (h *Handlers) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "name required (max 255 chars); email must be valid")
		return
	}
	cl, err := h.clients.Create(c.Request.Context(), trainerID(c), services.ClientInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, cl)
}

// GetClient godoc
// @ID          getClient
// @Summary     Get a client
// @Tags        Clients
// @Produce     json
// @Param       X-Trainer-ID  header  string  false "Trainer ID"  example(trainer-1)
// @Param       id            path    string  true  "Client ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.Client
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Client not found"
// @Router      /clients/{id} [get]
func (h *Handlers) GetClient(c *gin.Context) {
	id, okID := uuidParam(c, "id", "client")
	if !okID {
		return
	}
	cl, err := h.clients.Get(c.Request.Context(), trainerID(c), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, cl)
}

// ListClientWorkouts godoc
// @ID          listClientWorkouts
// @Summary     List a client's workouts (paginated)
// @Description Newest first, each with its exercises and sets.
// @Tags        Workouts
// @Produce     json
//
// @Param       X-Trainer-ID  header  string  false "Trainer ID"  example(trainer-1)
// @Param       id            path    string  true  "Client ID (UUID)"  format(uuid)
// @Param       page          query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size     query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListWorkoutsResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Client not found"
// @Router      /clients/{id}/workouts [get]
func (h *Handlers) ListClientWorkouts(c *gin.Context) {
	id, okID := uuidParam(c, "id", "client")
	if !okID {
		return
	}
	page, pageSize := clampPagination(c)
	items, total, err := h.workouts.ListForClient(c.Request.Context(), trainerID(c), id, page, pageSize)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListWorkoutsResponse{Workouts: items, Pagination: newPagination(page, pageSize, total)})
}

// LastPerformance godoc
// @ID          lastPerformance
// @Summary     Last performance of an exercise
// @Description Returns the client's most recent workout containing the exercise and its sets ordered by set number, or null when there is no history.
// @Tags        Workouts
// @Produce     json
//
// @Param       X-Trainer-ID  header  string  false "Trainer ID"  example(trainer-1)
// @Param       id            path    string  true  "Client ID (UUID)"    format(uuid)
// @Param       exerciseId    path    string  true  "Exercise ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.LastPerformance  "null when the client never performed the exercise"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Client not found"
// @Router      /clients/{id}/exercises/{exerciseId}/last-performance [get]
func (h *Handlers) LastPerformance(c *gin.Context) {
	clientID, okID := uuidParam(c, "id", "client")
	if !okID {
		return
	}
	exerciseID, okID := uuidParam(c, "exerciseId", "exercise")
	if !okID {
		return
	}
	lp, err := h.performance.LastForTrainer(c.Request.Context(), trainerID(c), clientID, exerciseID)
	if err != nil {
		failErr(c, err)
		return
	}
	if lp == nil {
		ok(c, http.StatusOK, nil)
		return
	}
	ok(c, http.StatusOK, lp)
}

// uuidParam reads a UUID path parameter, failing the request when malformed.
func uuidParam(c *gin.Context, name, what string) (string, bool) {
	v := c.Param(name)
	if _, err := uuid.Parse(v); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, what+" id must be a UUID")
		return "", false
	}
	return v, true
}
