package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the API error type carried from the service layer to the
// response writer. Status maps directly to the HTTP status code.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func New(message string, status int) *Error {
	return &Error{Message: message, Status: status}
}

var (
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrInvalidPassword     = New("invalid password", http.StatusUnauthorized)
	InActiveUserError      = errors.New("user inactive")
)

// Messaging-core validation failures. All recoverable by the caller.
var (
	ErrInvalidParticipants  = New("conversation participants must be two distinct users", http.StatusBadRequest)
	ErrInvalidParticipant   = New("sender is not a participant of this conversation", http.StatusForbidden)
	ErrEmptyContent         = New("message content must not be empty", http.StatusBadRequest)
	ErrConversationNotFound = New("conversation not found", http.StatusNotFound)
)

// GetUniqueContraintError converts a postgres unique-violation into a 4xx the
// client can act on.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "duplicate key value") || strings.Contains(err.Error(), "already exists") {
		return New("record already exists", http.StatusConflict)
	}
	return ErrInternalServerError
}

// ErrorHandler is handed to the gin rate limiter for throttled requests.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message": "too many requests, try again later",
		"errors":  []string{"rate limit exceeded"},
	})
}
