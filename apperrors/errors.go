package apperrors

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Error is a classified application error that maps to an HTTP response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, "NOT_FOUND", message)
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func RateLimited(message string) *Error {
	return New(http.StatusTooManyRequests, "RATE_LIMIT", message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, "INTERNAL_ERROR", message)
}

// Respond writes the structured error body. Anything that is not an *Error
// is reported as a 500 INTERNAL_ERROR.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err.Error())
	}
	c.JSON(appErr.Status, gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    appErr.Status,
		"error":     appErr.Code,
		"message":   appErr.Message,
	})
}

// Abort is Respond plus aborting the handler chain, for middleware use.
func Abort(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}
