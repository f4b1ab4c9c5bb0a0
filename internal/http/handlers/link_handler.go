// Shared workout link HTTP handlers.
//
//   - POST /clients/{id}/templates/{templateId}/share  (issue, trainer)
//   - GET  /workout/{token}                            (resolve, public)
//   - POST /workout/{token}/submit                     (consume, public)
//
// The public routes carry no trainer identity; the token is the credential.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-workout-backend/internal/http/middleware"
)

// ShareTemplate godoc
// @ID          shareTemplate
// @Summary     Create a shared workout link
// @Description Issues a single-use link that lets the client log one session of the template without an account. The link expires after the configured TTL (7 days by default).
// @Tags        Links
// @Produce     json
//
// @Param       X-Trainer-ID  header  string  false "Trainer ID"  example(trainer-1)
// @Param       id            path    string  true  "Client ID (UUID)"    format(uuid)
// @Param       templateId    path    string  true  "Template ID (UUID)"  format(uuid)
//
// @Success     201  {object}  handlers.ShareLinkResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Client or template not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /clients/{id}/templates/{templateId}/share [post]
func (h *Handlers) ShareTemplate(c *gin.Context) {
	clientID, templateID := c.Param("id"), c.Param("templateId")
	if _, err := uuid.Parse(clientID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "client id must be a UUID")
		return
	}
	if _, err := uuid.Parse(templateID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "template id must be a UUID")
		return
	}

	link, err := h.links.Issue(c.Request.Context(), trainerID(c), clientID, templateID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, ShareLinkResponse{Link: *link, URL: h.shareURL(link.Token)})
}

func (h *Handlers) shareURL(token string) string {
	return strings.TrimRight(h.publicBaseURL, "/") + "/workout/" + token
}

// ResolveLink godoc
// @ID          resolveLink
// @Summary     Open a shared workout link
// @Description Returns the client's name, the template and, per exercise, the sets of the client's last performance. Used and expired links answer 410 with distinct codes.
// @Tags        Links
// @Produce     json
//
// @Param       token  path  string  true  "Share token (64 hex chars)"
//
// @Success     200  {object}  domain.LinkView
// @Failure     404  {object}  handlers.ErrorResponse "Link not found"
// @Failure     410  {object}  handlers.ErrorResponse "Link already used (link_used) or expired (link_expired)"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /workout/{token} [get]
func (h *Handlers) ResolveLink(c *gin.Context) {
	view, err := h.links.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		failErr(c, err)
		return
	}
	// The view is personal data behind a bearer token.
	c.Header("Cache-Control", "no-store")
	ok(c, http.StatusOK, view)
}

// SubmitLink godoc
// @ID          submitLink
// @Summary     Submit a workout through a shared link
// @Description Records the workout and burns the link in one transaction; a link accepts exactly one submission. Sets with empty reps are skipped.
// @Description Supports Idempotency-Key: a retry with the same key replays the original workout with Idempotency-Replayed: true.
// @Tags        Links
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"
// @Param       token            path    string  true  "Share token (64 hex chars)"
// @Param       body             body    handlers.SubmitWorkoutRequest  true  "Performed workout"
//
// @Success     200  {object}  handlers.SubmitWorkoutResponse
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse "Link not found"
// @Failure     410  {object}  handlers.ErrorResponse "Link already used (link_used) or expired (link_expired)"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /workout/{token}/submit [post]
func (h *Handlers) SubmitLink(c *gin.Context) {
	ctx := c.Request.Context()
	token := c.Param("token")

	if id, hit := h.replayed(c); hit {
		if w, err := h.links.SubmittedWorkout(ctx, token); err == nil && w.ID == id {
			c.Header(middleware.HeaderIdempotencyReplayed, "true")
			ok(c, http.StatusOK, SubmitWorkoutResponse{Message: "Workout submitted successfully", Workout: *w})
			return
		}
	}

	var req SubmitWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "invalid JSON body: "+err.Error())
		return
	}

	w, err := h.links.Consume(ctx, token, req.submission())
	if err != nil {
		failErr(c, err)
		return
	}
	h.remember(c, w.ID, http.StatusOK)

	middleware.LoggerFrom(c).Info().
		Str("workout_id", w.ID).
		Str("client_id", w.ClientID).
		Msg("shared workout submitted")
	ok(c, http.StatusOK, SubmitWorkoutResponse{Message: "Workout submitted successfully", Workout: *w})
}
