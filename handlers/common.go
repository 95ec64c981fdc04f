package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// actor pulls the resolved acting identity set by the identity middleware.
func actor(c *gin.Context) (id, name string) {
	if v, ok := c.Get("actorID"); ok {
		id, _ = v.(string)
	}
	if v, ok := c.Get("actorName"); ok {
		name, _ = v.(string)
	}
	return id, name
}

// codedError is satisfied by the per-service typed errors.
type codedError interface {
	ErrCode() string
	Error() string
}

// statusForCode maps stable service error codes onto HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "ALREADY_RESOLVED", "INVALID_TRANSITION":
		return http.StatusConflict
	case "NOT_EDITABLE":
		return http.StatusUnprocessableEntity
	case "INVALID_SLOT", "INVALID_PATTERN", "INVALID_ARGUMENT", "UNKNOWN_PRESET":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders a service failure as a structured JSON error.
func respondError(c *gin.Context, err error) {
	var coded codedError
	if errors.As(err, &coded) {
		c.JSON(statusForCode(coded.ErrCode()), gin.H{
			"error":   coded.ErrCode(),
			"message": coded.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL", "message": err.Error()})
}

// isPartialWrite reports whether err is the week-save partial failure, which
// gets a multi-status response carrying the batch result.
func isPartialWrite(err error) bool {
	var coded codedError
	return errors.As(err, &coded) && coded.ErrCode() == "PARTIAL_WRITE"
}
