// Package http is the HTTP/JSON transport for the calendars service.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Calendars    *CalendarsHandler
	WorkingSlots *WorkingSlotsHandler
	Appointments *AppointmentsHandler
}

// NewRouter wires the REST routes. Appointments and working slots are always
// addressed under their calendar.
func NewRouter(h Handlers, log *slog.Logger, requestTimeout time.Duration) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(requestTimeoutMiddleware(requestTimeout))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/calendars", h.Calendars.Create)
	api.GET("/calendars/:id", h.Calendars.Get)
	api.PATCH("/calendars/:id", h.Calendars.Update)
	api.DELETE("/calendars/:id", h.Calendars.Remove)
	api.GET("/providers/:id/calendars", h.Calendars.ListByProvider)

	api.GET("/calendars/:id/workingslots", h.WorkingSlots.List)
	api.POST("/calendars/:id/workingslots", h.WorkingSlots.Create)
	api.GET("/calendars/:id/workingslots/:slot_id", h.WorkingSlots.Get)
	api.PATCH("/calendars/:id/workingslots/:slot_id", h.WorkingSlots.Update)
	api.DELETE("/calendars/:id/workingslots/:slot_id", h.WorkingSlots.Remove)

	api.GET("/calendars/:id/appointments", h.Appointments.List)
	api.POST("/calendars/:id/appointments", h.Appointments.Create)
	api.GET("/calendars/:id/appointments/:appointment_id", h.Appointments.Get)
	api.PATCH("/calendars/:id/appointments/:appointment_id", h.Appointments.Update)
	api.DELETE("/calendars/:id/appointments/:appointment_id", h.Appointments.Remove)

	return r
}

func requestTimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// requestLogger logs one line per request, after the handler ran.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}
