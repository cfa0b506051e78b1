package apierrors

import (
	"net/http"

	"standup-relay/internal/observability"

	"github.com/gin-gonic/gin"
)

var logger = observability.NewLogger()

// Error codes returned to API clients
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeUpstreamError   = "UPSTREAM_ERROR"
	CodeNotConfigured   = "NOT_CONFIGURED"
	CodeInternalError   = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON structure returned to API clients
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// respond writes the error response and logs correlation info
func respond(c *gin.Context, statusCode int, code, message string) {
	ctx := c.Request.Context()
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status_code", Value: statusCode},
		observability.Field{Key: "error_code", Value: code},
		observability.Field{Key: "error_message", Value: message},
	)
	logger.Info(ctx, "API error response")

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, CodeNotFound, message)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, code, message string) {
	respond(c, http.StatusBadRequest, code, message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// PayloadTooLarge sends a 413 response
func PayloadTooLarge(c *gin.Context, message string) {
	respond(c, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, message)
}

// UpstreamError reports a failed call to an external service. statusCode is
// the status the vendor answered with; anything outside 4xx/5xx becomes 502.
func UpstreamError(c *gin.Context, statusCode int, message string, internalErr error) {
	ctx := c.Request.Context()
	logger.Error(ctx, "upstream error", internalErr)
	if statusCode < 400 || statusCode > 599 {
		statusCode = http.StatusBadGateway
	}
	respond(c, statusCode, CodeUpstreamError, message)
}

// NotConfigured sends a 500 response for a missing credential or setting
func NotConfigured(c *gin.Context, message string) {
	respond(c, http.StatusInternalServerError, CodeNotConfigured, message)
}

// InternalError sends a sanitized 500 response - never exposes internal details
func InternalError(c *gin.Context, internalErr error) {
	ctx := c.Request.Context()
	logger.Error(ctx, "internal error", internalErr)
	respond(c, http.StatusInternalServerError, CodeInternalError, "An internal error occurred. Please try again later.")
}
