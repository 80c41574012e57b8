// Package handlers implements the HTTP endpoints of the mini-app, the admin
// page and the Telegram webhook.
//
// This file holds the response helpers shared by every endpoint. Errors are
// always written as an ErrorResponse with a stable code so the mini-app can
// branch on it; successful writes go through ok().
//
// Example error response:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "empty_cart",
//	  "message": "order has no items"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-table-order/internal/http/middleware"
	"github.com/tbourn/go-table-order/internal/media"
	"github.com/tbourn/go-table-order/internal/services"
)

// ErrorResponse is the error envelope returned by all JSON endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"validation_failed"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"name is required"`
}

// OKResponse is the acknowledgement body of the write endpoints.
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

// fail aborts the request with a structured error. Server errors (>=500) are
// logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), used by the router fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failErr maps a service error onto the envelope. Client mistakes keep their
// message; anything else is logged and answered with a generic 500.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		fail(c, http.StatusBadRequest, ErrCodeEmptyCart, "order has no items")
	case errors.Is(err, services.ErrValidation):
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
	case errors.Is(err, media.ErrUnsupportedImage),
		errors.Is(err, media.ErrImageTooLarge):
		fail(c, http.StatusBadRequest, ErrCodeUnsupportedImage, err.Error())
	case errors.Is(err, services.ErrUploadsDisabled):
		fail(c, http.StatusBadRequest, ErrCodeUnsupportedImage, "image uploads are disabled")
	case errors.Is(err, services.ErrItemNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "menu item not found")
	default:
		lg := middleware.LoggerFrom(c)
		lg.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
