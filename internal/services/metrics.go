package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	linksIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "workout_links_issued_total",
		Help: "Shared workout links issued.",
	})

	// linkResolutions counts link page loads by outcome
	// (valid, not_found, used, expired, error).
	linkResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workout_link_resolutions_total",
		Help: "Shared workout link resolutions by outcome.",
	}, []string{"outcome"})

	// linkSubmissions counts link submissions by outcome
	// (consumed, not_found, used, expired, invalid, error).
	linkSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workout_link_submissions_total",
		Help: "Shared workout link submissions by outcome.",
	}, []string{"outcome"})

	workoutsLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workouts_logged_total",
		Help: "Workouts persisted, by source (link or trainer).",
	}, []string{"source"})
)

func init() {
	prometheus.MustRegister(linksIssued, linkResolutions, linkSubmissions, workoutsLogged)
}

// outcomeOf names err for the link counters.
func outcomeOf(err error, success string) string {
	switch {
	case err == nil:
		return success
	case errors.Is(err, ErrLinkNotFound):
		return "not_found"
	case errors.Is(err, ErrLinkUsed):
		return "used"
	case errors.Is(err, ErrLinkExpired):
		return "expired"
	case isValidation(err):
		return "invalid"
	default:
		return "error"
	}
}
