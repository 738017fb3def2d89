package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"calendars/backend/internal/domain"
	"calendars/backend/internal/service/calendars"
)

type calendarsService interface {
	Create(ctx context.Context, in calendars.CreateInput) (domain.Calendar, error)
	Update(ctx context.Context, in calendars.UpdateInput) (domain.Calendar, error)
	Get(ctx context.Context, calendarID uuid.UUID) (domain.Calendar, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]domain.Calendar, error)
	Remove(ctx context.Context, calendarID uuid.UUID) error
}

type CalendarsHandler struct {
	svc calendarsService
	log *slog.Logger
}

func NewCalendarsHandler(svc calendarsService, log *slog.Logger) *CalendarsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CalendarsHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.calendars")),
	}
}

type createCalendarRequest struct {
	ProviderID  string `json:"provider_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Timezone    string `json:"timezone"`
	Duration    string `json:"duration"`
	Color       string `json:"color"`
	Slug        string `json:"slug"`
}

type updateCalendarRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Timezone    *string `json:"timezone"`
	Duration    *string `json:"duration"`
	Color       *string `json:"color"`
	Slug        *string `json:"slug"`
}

type calendarResponse struct {
	ID          string    `json:"id"`
	ProviderID  string    `json:"provider_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Timezone    string    `json:"timezone,omitempty"`
	Duration    string    `json:"duration"`
	Color       string    `json:"color,omitempty"`
	Slug        string    `json:"slug,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCalendarResponse(cal domain.Calendar) calendarResponse {
	return calendarResponse{
		ID:          cal.ID.String(),
		ProviderID:  cal.ProviderID.String(),
		Name:        cal.Name,
		Description: cal.Description,
		Timezone:    cal.Timezone,
		Duration:    cal.Duration.String(),
		Color:       cal.Color,
		Slug:        cal.Slug,
		CreatedAt:   cal.CreatedAt,
		UpdatedAt:   cal.UpdatedAt,
	}
}

func (h *CalendarsHandler) Create(c *gin.Context) {
	var req createCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "BAD_REQUEST",
			"message": "Validation error",
			"errors":  []domain.Violation{{Field: "body", Message: "request body must be valid JSON"}},
		})
		return
	}

	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		respondInvalidID(c, "provider_id")
		return
	}

	cal, err := h.svc.Create(c.Request.Context(), calendars.CreateInput{
		ProviderID:  providerID,
		Name:        req.Name,
		Description: req.Description,
		Timezone:    req.Timezone,
		Duration:    req.Duration,
		Color:       req.Color,
		Slug:        req.Slug,
	})
	if err != nil {
		respondError(c, h.log, err, "Calendar")
		return
	}

	h.log.Info("calendar created",
		slog.String("calendar_id", cal.ID.String()),
		slog.String("provider_id", providerID.String()),
	)
	c.JSON(http.StatusCreated, gin.H{"data": toCalendarResponse(cal)})
}

func (h *CalendarsHandler) Update(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}

	var req updateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "BAD_REQUEST",
			"message": "Validation error",
			"errors":  []domain.Violation{{Field: "body", Message: "request body must be valid JSON"}},
		})
		return
	}

	cal, err := h.svc.Update(c.Request.Context(), calendars.UpdateInput{
		CalendarID:  calendarID,
		Name:        req.Name,
		Description: req.Description,
		Timezone:    req.Timezone,
		Duration:    req.Duration,
		Color:       req.Color,
		Slug:        req.Slug,
	})
	if err != nil {
		respondError(c, h.log, err, "Calendar")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toCalendarResponse(cal)})
}

func (h *CalendarsHandler) Get(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}

	cal, err := h.svc.Get(c.Request.Context(), calendarID)
	if err != nil {
		respondError(c, h.log, err, "Calendar")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toCalendarResponse(cal)})
}

func (h *CalendarsHandler) ListByProvider(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "provider_id")
		return
	}

	cals, err := h.svc.ListByProvider(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, h.log, err, "Calendar")
		return
	}

	out := make([]calendarResponse, 0, len(cals))
	for _, cal := range cals {
		out = append(out, toCalendarResponse(cal))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *CalendarsHandler) Remove(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}

	if err := h.svc.Remove(c.Request.Context(), calendarID); err != nil {
		respondError(c, h.log, err, "Calendar")
		return
	}

	h.log.Info("calendar removed", slog.String("calendar_id", calendarID.String()))
	c.Status(http.StatusNoContent)
}
