package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/http/middleware"
)

func TestCreateAndGetClient(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodPost, "/clients", map[string]any{"name": "  Bruno   Lima ", "email": "bruno@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cl domain.Client
	decode(t, w, &cl)
	assert.Equal(t, "Bruno Lima", cl.Name)
	assert.Equal(t, testTrainer, cl.TrainerID)

	w = e.do(http.MethodGet, "/clients/"+cl.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodGet, "/clients/"+cl.ID, nil, middleware.HeaderTrainerID, "trainer-2")
	assert.Equal(t, http.StatusNotFound, w.Code, "clients are scoped to their trainer")

	for name, body := range map[string]any{
		"missing name": map[string]any{"email": "x@example.com"},
		"blank name":   map[string]any{"name": "   "},
		"bad email":    map[string]any{"name": "X", "email": "not-an-email"},
	} {
		t.Run(name, func(t *testing.T) {
			w := e.do(http.MethodPost, "/clients", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, ErrCodeValidation, errCode(t, w))
		})
	}

	w = e.do(http.MethodGet, "/clients/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListClients_PaginationAndETag(t *testing.T) {
	e := newEnv(t)
	for _, name := range []string{"Bruno", "Carla"} {
		w := e.do(http.MethodPost, "/clients", map[string]any{"name": name})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := e.do(http.MethodGet, "/clients?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp ListClientsResponse
	decode(t, w, &resp)
	assert.Len(t, resp.Clients, 2)
	assert.Equal(t, Pagination{Page: 1, PageSize: 2, Total: 3, TotalPages: 2, HasNext: true}, resp.Pagination)

	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	w = e.do(http.MethodGet, "/clients?page=1&page_size=2", nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, w.Code)

	// Another page has another tag.
	w = e.do(http.MethodGet, "/clients?page=2&page_size=2", nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusOK, w.Code)

	// A write changes the tag.
	e.clock.t = e.clock.t.Add(time.Minute)
	require.Equal(t, http.StatusCreated, e.do(http.MethodPost, "/clients", map[string]any{"name": "Duarte"}).Code)
	w = e.do(http.MethodGet, "/clients?page=1&page_size=2", nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusOK, w.Code)

	// Other trainers see nothing.
	w = e.do(http.MethodGet, "/clients", nil, middleware.HeaderTrainerID, "trainer-2")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Empty(t, resp.Clients)
	assert.EqualValues(t, 0, resp.Pagination.Total)
}

func TestLastPerformance(t *testing.T) {
	e := newEnv(t)
	path := "/clients/" + e.client.ID + "/exercises/" + e.press.ID + "/last-performance"

	w := e.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = e.do(http.MethodPost, "/workout/"+e.share()+"/submit", pressSubmission(e.press.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lp domain.LastPerformance
	decode(t, w, &lp)
	require.Len(t, lp.Sets, 2)
	assert.Equal(t, 1, lp.Sets[0].SetNumber)
	assert.Equal(t, e.client.ID, lp.Workout.ClientID)

	w = e.do(http.MethodGet, path, nil, middleware.HeaderTrainerID, "trainer-2")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodGet, "/clients/"+e.client.ID+"/exercises/nope/last-performance", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListClientWorkouts(t *testing.T) {
	e := newEnv(t)
	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/workout/"+e.share()+"/submit", pressSubmission(e.press.ID)).Code)

	w := e.do(http.MethodGet, "/clients/"+e.client.ID+"/workouts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp ListWorkoutsResponse
	decode(t, w, &resp)
	require.Len(t, resp.Workouts, 1)
	require.Len(t, resp.Workouts[0].Exercises, 1)
	assert.Len(t, resp.Workouts[0].Exercises[0].Sets, 2)
	assert.EqualValues(t, 1, resp.Pagination.Total)
}
