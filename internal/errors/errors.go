package errors

import (
	"errors"
	"fmt"
	"net/http"

	"codeberg.org/showcase/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.FromContext(ctx).Warn() only for non-critical errors where processing continues
//   - Never log and call errors.InternalError() for the same error
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Best-effort paths (pinning, query log) log a warning and carry on

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	// add details if error provided
	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for binding and validation failures.
// validator errors are reported per field; anything else (malformed JSON) as details.
func ValidationError(c *gin.Context, err error) {
	response := ErrorResponse{
		Error:   CodeValidationError,
		Message: "request validation failed",
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			response.Fields[fe.Field()] = fmt.Sprintf("failed on '%s' tag", fe.Tag())
		}
	} else if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.FromContext(c.Request.Context()).Error(message,
		"error", err,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	// return sanitized error to client
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 503 when a dependency is down
func ServiceUnavailable(c *gin.Context, message string, err error) {
	if message == "" {
		message = "service unavailable"
	}

	c.JSON(http.StatusServiceUnavailable, ErrorResponse{
		Error:   CodeServiceUnavailable,
		Message: message,
		Details: sanitizeError(err),
	})
}

// responds to a failed dependency call: 502 when the embedding provider failed,
// 504 on timeouts, 503 when a backing store is unreachable, 500 otherwise
func DependencyError(c *gin.Context, message string, err error) {
	info := classifyError(err)

	var status int
	var code string

	switch info.category {
	case CategoryUpstream:
		status, code = http.StatusBadGateway, CodeUpstreamError
	case CategoryTimeout:
		status, code = http.StatusGatewayTimeout, CodeTimeout
	case CategoryNetwork:
		logger.FromContext(c.Request.Context()).Warn(message, "error", err)
		ServiceUnavailable(c, message, err)
		return
	default:
		InternalError(c, message, err)
		return
	}

	logger.FromContext(c.Request.Context()).Warn(message,
		"error", err,
		"category", info.category,
	)

	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: message,
		Details: info.sanitized,
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeTooManyRequests,
		Message: message,
	})
}

// validates a UUID parameter from the request path
func ValidatePathUUID(c *gin.Context, paramName string) (string, bool) {
	id := c.Param(paramName)

	if id == "" {
		BadRequest(c, "missing "+paramName, nil)
		return "", false
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		BadRequest(c, "invalid "+paramName, err)
		return "", false
	}

	return parsed.String(), true
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	return classifyError(err).sanitized
}
