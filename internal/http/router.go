// Package httpapi wires the Gin transport to the workout services, the
// middleware stack and the route handlers.
//
// Global middleware runs for every request: tracing, request ids, redacted
// access logs, panic recovery, the body cap, compression, metrics, CORS and
// security headers. Identity, idempotency and rate limiting are attached per
// group, because the shared-link routes authenticate by token alone.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-workout-backend/docs"
	"github.com/tbourn/go-workout-backend/internal/config"
	"github.com/tbourn/go-workout-backend/internal/http/handlers"
	"github.com/tbourn/go-workout-backend/internal/http/middleware"
	"github.com/tbourn/go-workout-backend/internal/services"
)

const maxBodyBytes = 1 << 20

var (
	corsMethods = []string{"GET", "POST", "OPTIONS"}
	corsHeaders = []string{
		"Origin", "Content-Type", "Accept", "If-None-Match",
		middleware.HeaderTrainerID, middleware.HeaderIdempotencyKey,
	}
	corsExpose = []string{
		"X-Request-ID", "Content-Length", "ETag", middleware.HeaderIdempotencyReplayed,
	}
)

// NewDeps builds the service graph shared by the HTTP handlers.
func NewDeps(db *gorm.DB, cfg config.Config) handlers.Deps {
	links := services.NewLinkService(db, cfg.LinkTTL)
	return handlers.Deps{
		Clients:       &services.ClientService{DB: db},
		Exercises:     &services.ExerciseService{DB: db},
		Templates:     &services.TemplateService{DB: db},
		Sessions:      links.Sessions,
		Workouts:      &services.WorkoutService{DB: db},
		Performance:   &services.PerformanceService{DB: db},
		Links:         links,
		Idempotency:   &services.IdempotencyService{DB: db, TTL: cfg.IdempotencyTTL},
		PublicBaseURL: cfg.PublicBaseURL,
	}
}

// RegisterRoutes attaches the middleware stack and every endpoint to r.
//
// Middleware order:
//  1. OpenTelemetry
//  2. RequestID
//  3. RedactingLogger (share tokens, e-mails, phones and ids masked)
//  4. Recovery
//  5. Body size limit
//  6. gzip
//  7. Metrics
//  8. CORS and security headers
//
// Per group: TrainerIdentity on trainer routes, then IdempotencyValidator on
// the two write routes that accept Idempotency-Key, then the rate limiter.
// The validator runs first so a replay bypasses the limiter.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	registerRoutes(r, NewDeps(db, cfg), cfg)
}

func registerRoutes(r *gin.Engine, deps handlers.Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{middleware.HeaderTrainerID},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:      cfg.Security.EnableHSTS,
		HSTSMaxAge:      cfg.Security.HSTSMaxAge,
		NoStorePrefixes: []string{strings.TrimRight(cfg.APIBasePath, "/") + "/workout/"},
		EnablePolicy:    true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(deps)
	limit := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByTrainerOrIP()).Handler()
	idem := func(scope middleware.ScopeFunc) gin.HandlerFunc {
		return middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, scope, idempotencyLookup(deps.Idempotency))
	}

	api := groupWithPrefix(r, cfg.APIBasePath)

	trainer := api.Group("", middleware.TrainerIdentity(cfg.DefaultTrainerID))
	{
		trainer.POST("/workouts", idem(middleware.TrainerWorkoutsScope), limit, h.LogWorkout)

		lim := trainer.Group("", limit)

		// Clients
		lim.GET("/clients", h.ListClients)
		lim.POST("/clients", h.CreateClient)
		lim.GET("/clients/:id", h.GetClient)
		lim.GET("/clients/:id/workouts", h.ListClientWorkouts)
		lim.GET("/clients/:id/exercises/:exerciseId/last-performance", h.LastPerformance)

		// Templates
		lim.GET("/clients/:id/templates", h.ListTemplates)
		lim.POST("/clients/:id/templates", h.CreateTemplate)
		lim.GET("/clients/:id/templates/:templateId/session", h.SessionView)
		lim.POST("/clients/:id/templates/:templateId/share", h.ShareTemplate)
		lim.GET("/templates/:id", h.GetTemplate)
		lim.POST("/templates/:id/exercises", h.AddTemplateExercise)

		// Exercises
		lim.GET("/exercises", h.ListExercises)
		lim.POST("/exercises", h.CreateExercise)

		// Workouts
		lim.GET("/workouts/:id", h.GetWorkout)
	}

	// Shared links: the token is the credential, limits are per IP.
	api.GET("/workout/:token", limit, h.ResolveLink)
	api.POST("/workout/:token/submit", idem(middleware.LinkScope), limit, h.SubmitLink)
}

// idempotencyLookup adapts the idempotency service to the validator's
// lookup signature. Expired records are already filtered by the service.
func idempotencyLookup(svc handlers.IdempotencyService) middleware.IdempotencyLookup {
	return func(ctx context.Context, scope, key string, _ time.Time) (bool, error) {
		rec, err := svc.Lookup(ctx, scope, key)
		if err != nil {
			return false, err
		}
		return rec != nil, nil
	}
}

// corsMiddleware returns the CORS chain. With no allowlist every origin is
// accepted without credentials; otherwise allowed origins are echoed.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	if len(origins) == 0 {
		return []gin.HandlerFunc{
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins: true,
				AllowMethods:    corsMethods,
				AllowHeaders:    corsHeaders,
				ExposeHeaders:   corsExpose,
				MaxAge:          12 * time.Hour,
			}),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  corsMethods,
			AllowHeaders:  corsHeaders,
			ExposeHeaders: corsExpose,
			MaxAge:        12 * time.Hour,
		}),
	}
}

// limitBody caps the request body at maxBytes; reads past it fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
