// Package middleware: RateLimiter
//
// This file implements a per-key token bucket on top of x/time/rate.
//
// Notes:
//   - Buckets live in process memory; multiple replicas each enforce their
//     own budget.
//   - Idle buckets are swept every sweepEvery lookups.
//   - A denied request gets 429 with Retry-After in whole seconds.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// sweepEvery is the number of lookups between idle-bucket sweeps.
	sweepEvery = 1024
	// bucketIdleTTL is how long an unused bucket survives a sweep.
	bucketIdleTTL = 10 * time.Minute
)

// keyFunc maps a request to its bucket, e.g. "trainer:<id>" or "ip:<addr>".
type keyFunc func(*gin.Context) string

// KeyByTrainerOrIP keys buckets by trainer when the caller named one in
// X-Trainer-ID, and by client IP otherwise. Requests that fell back to the
// default trainer share that identity, so they are keyed by IP instead.
// Shared-link routes carry no trainer and always key by IP.
func KeyByTrainerOrIP() keyFunc {
	return func(c *gin.Context) string {
		if trainerExplicit(c) {
			if id := TrainerID(c); id != "" {
				return "trainer:" + id
			}
		}
		return "ip:" + c.ClientIP()
	}
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a process-local token-bucket limiter with one bucket per
// key. It is safe for concurrent use. Replays flagged by
// IdempotencyValidator are never limited.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn keyFunc
	now   func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
	lookups int
}

// NewRateLimiter builds a limiter refilling rps tokens per second up to
// burst (at least 1). rps 0 grants each key its burst and nothing more.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   max(burst, 1),
		keyFn:   keyFn,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// bucketFor returns the limiter for key, sweeping idle buckets first every
// sweepEvery lookups so a stale bucket is dropped rather than refreshed.
func (rl *RateLimiter) bucketFor(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.lookups++
	if rl.lookups >= sweepEvery {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= bucketIdleTTL {
				delete(rl.buckets, k)
			}
		}
		rl.lookups = 0
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rl.rps, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim
}

// IsRateBypass reports whether IdempotencyValidator marked this request as
// a replay.
func IsRateBypass(c *gin.Context) bool {
	b, _ := c.Value(ctxKeyRateBypass).(bool)
	return b
}

// Handler enforces the limit. A rejected request gets 429 with the JSON
// error envelope and a Retry-After of the whole seconds until the next
// token (1 when no token will ever come).
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}

		key := rl.keyFn(c)
		now := rl.now()
		lim := rl.bucketFor(key, now)

		res := lim.ReserveN(now, 1)
		delay := rate.InfDuration
		if res.OK() {
			delay = res.DelayFrom(now)
		}
		if delay == 0 {
			c.Next()
			return
		}
		res.CancelAt(now)
		// With a zero rate an empty bucket never refills and the limiter
		// reports an infinite delay.
		retry := "1"
		if delay != rate.InfDuration && rl.rps > 0 {
			retry = strconv.Itoa(int(math.Ceil(delay.Seconds())))
		}
		c.Header("Retry-After", retry)

		rateLimited.WithLabelValues(bucketKind(key)).Inc()
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get(requestIDHeader),
			"code":       "too_many_requests",
			"message":    "rate limit exceeded",
		})
	}
}

// bucketKind is the metric label for key: the part before the first colon.
func bucketKind(key string) string {
	kind, _, ok := strings.Cut(key, ":")
	if !ok || kind == "" {
		return "other"
	}
	return kind
}
