package handlers

// Error codes carried by ErrorResponse. Codes are lowercase snake_case and
// stable; clients branch on them. The shared-link codes tell apart the two
// 410 outcomes, which a client renders differently ("already submitted" vs
// "ask your trainer for a new link"). Middleware writes its own codes with
// the same envelope (too_many_requests, bad_idempotency_key, ...).
const (
	ErrCodeBadRequest = "bad_request"
	ErrCodeNotFound   = "not_found"
	ErrCodeConflict   = "conflict"
	ErrCodeInternal   = "internal_error"

	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeValidation       = "validation_failed"

	// Shared links:
	ErrCodeLinkUsed    = "link_used"
	ErrCodeLinkExpired = "link_expired"
)
