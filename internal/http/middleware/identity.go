// Package middleware: TrainerIdentity
//
// This file resolves the calling trainer from X-Trainer-ID. Authentication
// is out of scope; the header is trusted after a format check, and a
// configured default identity applies when it is absent.
package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

// HeaderTrainerID carries the calling trainer's opaque identity.
const HeaderTrainerID = "X-Trainer-ID"

const (
	ctxKeyTrainerID       = "trainerID"
	ctxKeyTrainerExplicit = "trainer.explicit"
)

var trainerIDPattern = regexp.MustCompile(`^[A-Za-z0-9._@\-]{1,64}$`)

// TrainerIdentity resolves the trainer for the request. Authentication is
// handled upstream; this only reads X-Trainer-ID and falls back to defaultID
// for single-trainer deployments. A malformed header aborts with 400, and a
// request with neither header nor default aborts with 401.
func TrainerIdentity(defaultID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderTrainerID)
		explicit := id != ""
		if explicit && !trainerIDPattern.MatchString(id) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "bad_request",
				"message":    "invalid " + HeaderTrainerID,
			})
			return
		}
		if !explicit {
			id = defaultID
		}
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "unauthorized",
				"message":    "trainer identity required",
			})
			return
		}
		c.Set(ctxKeyTrainerID, id)
		c.Set(ctxKeyTrainerExplicit, explicit)
		c.Next()
	}
}

// TrainerID returns the trainer resolved by TrainerIdentity, or "".
func TrainerID(c *gin.Context) string {
	v, _ := c.Get(ctxKeyTrainerID)
	s, _ := v.(string)
	return s
}

func trainerExplicit(c *gin.Context) bool {
	v, _ := c.Get(ctxKeyTrainerExplicit)
	b, _ := v.(bool)
	return b
}
