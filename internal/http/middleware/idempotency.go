// Package middleware: Idempotency
//
// This file implements Idempotency-Key handling for unsafe methods. Keys
// are validated and stashed on the context; looking up and serving stored
// results is delegated so the middleware stays storage-agnostic.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the idempotency key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed is set on responses served from a stored result.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemScope  = "idem.scope"
	ctxKeyIdemReplay = "idem.replay" // bool: a stored result exists
	ctxKeyRateBypass = "rate.bypass" // bool: skip rate limiting
)

// GetIdempotencyKey returns the validated key stored by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// GetIdempotencyScope returns the scope the key was checked against.
func GetIdempotencyScope(c *gin.Context) string {
	v, _ := c.Get(ctxKeyIdemScope)
	s, _ := v.(string)
	return s
}

// IsReplay reports whether the key already completed within its scope.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

var defaultIdemKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// IdempotencyOptions configures header validation. TTL is enforced by the
// lookup, not here.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. Nil means ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// ScopeFunc names what an idempotency key protects for a request, for example
// "link:<token>". An empty scope disables the lookup for that request.
type ScopeFunc func(c *gin.Context) string

// IdempotencyLookup reports whether a still-valid result exists for
// (scope, key) at now. Errors are treated as a miss.
type IdempotencyLookup func(ctx context.Context, scope, key string, now time.Time) (exists bool, err error)

// LinkScope scopes keys to the shared-link token in the :token path param.
func LinkScope(c *gin.Context) string {
	if tok := c.Param("token"); tok != "" {
		return "link:" + tok
	}
	return ""
}

// TrainerWorkoutsScope scopes keys to the calling trainer's workout log.
func TrainerWorkoutsScope(c *gin.Context) string {
	if id := TrainerID(c); id != "" {
		return "trainer:" + id + ":workouts"
	}
	return ""
}

// IdempotencyValidator handles Idempotency-Key on unsafe methods. It
// validates the header when present and stashes it; a malformed key aborts
// with 400. When lookup finds a stored result for the request's scope, the
// replay and rate-bypass flags are set. Serving the stored result is left
// to the handler.
func IdempotencyValidator(opts IdempotencyOptions, scope ScopeFunc, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultIdemKeyPattern
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "bad_idempotency_key",
				"message":    "invalid Idempotency-Key",
			})
			return
		}
		c.Set(ctxKeyIdemKey, key)

		var sc string
		if scope != nil {
			sc = scope(c)
		}
		if sc != "" {
			c.Set(ctxKeyIdemScope, sc)
			if lookup != nil {
				exists, err := lookup(c.Request.Context(), sc, key, time.Now().UTC())
				if err != nil {
					LoggerFrom(c).Warn().Err(err).Str("scope", sc).Msg("idempotency lookup failed")
				} else if exists {
					c.Set(ctxKeyIdemReplay, true)
					c.Set(ctxKeyRateBypass, true)
				}
			}
		}
		c.Next()
	}
}
