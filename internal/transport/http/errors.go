package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"calendars/backend/internal/domain"
	"calendars/backend/internal/store"
)

var conflictMessages = map[string]string{
	"Appointment": "Time slot already booked",
	"WorkingSlot": "Working slot already exists",
	"Calendar":    "Calendar already exists",
}

// respondError translates service errors into the HTTP taxonomy: validation
// failures return every detected violation in one 400 response, conflicts
// return 409 naming the resource, unknown ids return 404. Anything else is
// logged and hidden behind a 500.
func respondError(c *gin.Context, log *slog.Logger, err error, resource string) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "BAD_REQUEST",
			"message": "Validation error",
			"errors":  vErr.Violations,
		})
	case errors.Is(err, store.ErrConflict):
		msg, ok := conflictMessages[resource]
		if !ok {
			msg = "Resource already exists"
		}
		c.JSON(http.StatusConflict, gin.H{
			"code":     "CONFLICT",
			"resource": resource,
			"message":  msg,
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":     "NOT_FOUND",
			"resource": resource,
			"message":  resource + " not found",
		})
	default:
		log.Error("request failed", slog.Any("err", err), slog.String("resource", resource))
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL",
			"message": "internal error",
		})
	}
}

func respondInvalidID(c *gin.Context, field string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    "BAD_REQUEST",
		"message": "Validation error",
		"errors":  []domain.Violation{{Field: field, Message: field + " must be a UUID"}},
	})
}
