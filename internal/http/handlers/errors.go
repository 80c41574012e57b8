package handlers

// Error codes carried in ErrorResponse.Code. Generic codes mirror the HTTP
// status; the domain codes let the mini-app tell client mistakes apart.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeValidation       = "validation_failed"
	ErrCodeEmptyCart        = "empty_cart"
	ErrCodeUnsupportedImage = "unsupported_image"
	ErrCodeUpdateRejected   = "update_rejected"
)
