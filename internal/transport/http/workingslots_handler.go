package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"calendars/backend/internal/domain"
	"calendars/backend/internal/service/workingslots"
)

type workingSlotsService interface {
	Create(ctx context.Context, in workingslots.CreateInput) (domain.WorkingSlot, error)
	Update(ctx context.Context, in workingslots.UpdateInput) (domain.WorkingSlot, error)
	Get(ctx context.Context, calendarID, slotID uuid.UUID) (domain.WorkingSlot, error)
	List(ctx context.Context, calendarID uuid.UUID) ([]domain.WorkingSlot, error)
	Remove(ctx context.Context, calendarID, slotID uuid.UUID) error
}

type WorkingSlotsHandler struct {
	svc workingSlotsService
	log *slog.Logger
}

func NewWorkingSlotsHandler(svc workingSlotsService, log *slog.Logger) *WorkingSlotsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WorkingSlotsHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.workingslots")),
	}
}

type createWorkingSlotRequest struct {
	DayOfWeek    string `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Duration     string `json:"duration"`
	CreationDate string `json:"creation_date"`
}

type updateWorkingSlotRequest struct {
	DayOfWeek    *string `json:"day_of_week"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	Duration     *string `json:"duration"`
	CreationDate *string `json:"creation_date"`
}

type workingSlotResponse struct {
	ID           string    `json:"id"`
	CalendarID   string    `json:"calendar_id"`
	DayOfWeek    string    `json:"day_of_week"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Duration     string    `json:"duration,omitempty"`
	CreationDate string    `json:"creation_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toWorkingSlotResponse(s domain.WorkingSlot) workingSlotResponse {
	return workingSlotResponse{
		ID:           s.ID.String(),
		CalendarID:   s.CalendarID.String(),
		DayOfWeek:    s.DayOfWeek,
		StartTime:    s.StartTime.String(),
		EndTime:      s.EndTime.String(),
		Duration:     s.Duration.String(),
		CreationDate: s.CreationDate.String(),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (h *WorkingSlotsHandler) Create(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}

	var req createWorkingSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "BAD_REQUEST",
			"message": "Validation error",
			"errors":  []domain.Violation{{Field: "body", Message: "request body must be valid JSON"}},
		})
		return
	}

	slot, err := h.svc.Create(c.Request.Context(), workingslots.CreateInput{
		CalendarID:   calendarID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Duration:     req.Duration,
		CreationDate: req.CreationDate,
	})
	if err != nil {
		respondError(c, h.log, err, "WorkingSlot")
		return
	}

	h.log.Info("working slot created",
		slog.String("slot_id", slot.ID.String()),
		slog.String("calendar_id", calendarID.String()),
		slog.String("day_of_week", slot.DayOfWeek),
	)
	c.JSON(http.StatusCreated, gin.H{"data": toWorkingSlotResponse(slot)})
}

func (h *WorkingSlotsHandler) Update(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}
	slotID, err := uuid.Parse(c.Param("slot_id"))
	if err != nil {
		respondInvalidID(c, "slot_id")
		return
	}

	var req updateWorkingSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "BAD_REQUEST",
			"message": "Validation error",
			"errors":  []domain.Violation{{Field: "body", Message: "request body must be valid JSON"}},
		})
		return
	}

	slot, err := h.svc.Update(c.Request.Context(), workingslots.UpdateInput{
		CalendarID:   calendarID,
		SlotID:       slotID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Duration:     req.Duration,
		CreationDate: req.CreationDate,
	})
	if err != nil {
		respondError(c, h.log, err, "WorkingSlot")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toWorkingSlotResponse(slot)})
}

func (h *WorkingSlotsHandler) Get(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}
	slotID, err := uuid.Parse(c.Param("slot_id"))
	if err != nil {
		respondInvalidID(c, "slot_id")
		return
	}

	slot, err := h.svc.Get(c.Request.Context(), calendarID, slotID)
	if err != nil {
		respondError(c, h.log, err, "WorkingSlot")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toWorkingSlotResponse(slot)})
}

func (h *WorkingSlotsHandler) List(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}

	slots, err := h.svc.List(c.Request.Context(), calendarID)
	if err != nil {
		respondError(c, h.log, err, "WorkingSlot")
		return
	}

	out := make([]workingSlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, toWorkingSlotResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *WorkingSlotsHandler) Remove(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}
	slotID, err := uuid.Parse(c.Param("slot_id"))
	if err != nil {
		respondInvalidID(c, "slot_id")
		return
	}

	if err := h.svc.Remove(c.Request.Context(), calendarID, slotID); err != nil {
		respondError(c, h.log, err, "WorkingSlot")
		return
	}
	c.Status(http.StatusNoContent)
}
