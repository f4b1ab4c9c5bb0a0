package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-workout-backend/internal/catalog"
	"github.com/tbourn/go-workout-backend/internal/domain"
	"github.com/tbourn/go-workout-backend/internal/http/middleware"
	"github.com/tbourn/go-workout-backend/internal/repo"
	"github.com/tbourn/go-workout-backend/internal/services"
)

const testTrainer = "trainer-1"

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

// env is a handler stack over real services and an in-memory database.
type env struct {
	t      *testing.T
	db     *gorm.DB
	clock  *clock
	engine *gin.Engine

	client   *domain.Client
	tmpl     *domain.WorkoutTemplate
	press    *domain.Exercise
	squat    *domain.Exercise
	links    *services.LinkService
	services Deps
}

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	db.Exec("PRAGMA foreign_keys=ON;")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.AutoMigrate(db))
	return db
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newHandlerDB(t)
	clk := &clock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}

	links := services.NewLinkService(db, 0)
	links.Now = clk.Now
	idem := &services.IdempotencyService{DB: db, TTL: time.Hour, Now: clk.Now}
	deps := Deps{
		Clients:       &services.ClientService{DB: db, Now: clk.Now},
		Exercises:     &services.ExerciseService{DB: db},
		Templates:     &services.TemplateService{DB: db},
		Sessions:      &services.SessionService{DB: db},
		Workouts:      &services.WorkoutService{DB: db, Now: clk.Now},
		Performance:   &services.PerformanceService{DB: db},
		Links:         links,
		Idempotency:   idem,
		PublicBaseURL: "https://app.example.com/",
	}
	h := New(deps)

	lookup := func(ctx context.Context, scope, key string, _ time.Time) (bool, error) {
		rec, err := idem.Lookup(ctx, scope, key)
		return rec != nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	tr := r.Group("", middleware.TrainerIdentity(testTrainer))
	tr.GET("/clients", h.ListClients)
	tr.POST("/clients", h.CreateClient)
	tr.GET("/clients/:id", h.GetClient)
	tr.GET("/clients/:id/templates", h.ListTemplates)
	tr.POST("/clients/:id/templates", h.CreateTemplate)
	tr.GET("/clients/:id/templates/:templateId/session", h.SessionView)
	tr.POST("/clients/:id/templates/:templateId/share", h.ShareTemplate)
	tr.GET("/clients/:id/workouts", h.ListClientWorkouts)
	tr.GET("/clients/:id/exercises/:exerciseId/last-performance", h.LastPerformance)
	tr.GET("/exercises", h.ListExercises)
	tr.POST("/exercises", h.CreateExercise)
	tr.GET("/templates/:id", h.GetTemplate)
	tr.POST("/templates/:id/exercises", h.AddTemplateExercise)
	tr.POST("/workouts", middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, middleware.TrainerWorkoutsScope, lookup), h.LogWorkout)
	tr.GET("/workouts/:id", h.GetWorkout)
	r.GET("/workout/:token", h.ResolveLink)
	r.POST("/workout/:token/submit", middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, middleware.LinkScope, lookup), h.SubmitLink)

	e := &env{t: t, db: db, clock: clk, engine: r, links: links, services: deps}
	e.seed()
	return e
}

// seed creates a client with a two-exercise template through the services.
func (e *env) seed() {
	ctx := context.Background()
	var err error
	e.client, err = e.services.Clients.Create(ctx, testTrainer, services.ClientInput{Name: "Ana Costa"})
	require.NoError(e.t, err)
	e.press, err = e.services.Exercises.Create(ctx, catalog.Entry{Name: "Dumbbell Chest Press", Category: "chest"})
	require.NoError(e.t, err)
	e.squat, err = e.services.Exercises.Create(ctx, catalog.Entry{Name: "Goblet Squats", Category: "legs"})
	require.NoError(e.t, err)
	e.tmpl, err = e.services.Templates.Create(ctx, testTrainer, e.client.ID, "Full body")
	require.NoError(e.t, err)
	for _, ex := range []*domain.Exercise{e.press, e.squat} {
		_, err = e.services.Templates.AddExercise(ctx, testTrainer, e.tmpl.ID, services.TemplateExerciseInput{ExerciseID: ex.ID, TargetReps: "8-12"})
		require.NoError(e.t, err)
	}
}

// do sends a request; body may be nil, a string of raw JSON, or a value to encode.
func (e *env) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(e.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// share issues a link for the seeded template and returns its token.
func (e *env) share() string {
	e.t.Helper()
	w := e.do(http.MethodPost, "/clients/"+e.client.ID+"/templates/"+e.tmpl.ID+"/share", nil)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	var resp ShareLinkResponse
	decode(e.t, w, &resp)
	return resp.Link.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var er ErrorResponse
	decode(t, w, &er)
	return er.Code
}
