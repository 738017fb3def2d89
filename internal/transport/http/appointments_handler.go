package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"calendars/backend/internal/domain"
	"calendars/backend/internal/service/appointments"
)

type appointmentsService interface {
	Create(ctx context.Context, in appointments.CreateInput) (appointments.Result, error)
	Update(ctx context.Context, in appointments.UpdateInput) (appointments.Result, error)
	Remove(ctx context.Context, calendarID, appointmentID uuid.UUID) error
	Get(ctx context.Context, calendarID, appointmentID uuid.UUID) (domain.Appointment, error)
	List(ctx context.Context, calendarID uuid.UUID, date string) ([]domain.Appointment, error)
}

type AppointmentsHandler struct {
	svc appointmentsService
	log *slog.Logger
}

func NewAppointmentsHandler(svc appointmentsService, log *slog.Logger) *AppointmentsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AppointmentsHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.appointments")),
	}
}

type attendeePayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type createAppointmentRequest struct {
	Date        string            `json:"date"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	Status      string            `json:"status"`
	MeetingLink string            `json:"meeting_link"`
	Attendees   []attendeePayload `json:"attendees"`
}

type updateAppointmentRequest struct {
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Status      *string `json:"status"`
	MeetingLink *string `json:"meeting_link"`
}

type appointmentResponse struct {
	ID          string            `json:"id"`
	CalendarID  string            `json:"calendar_id"`
	Date        string            `json:"date"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	Status      string            `json:"status"`
	MeetingLink string            `json:"meeting_link,omitempty"`
	Attendees   []attendeePayload `json:"attendees,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func toAppointmentResponse(a domain.Appointment) appointmentResponse {
	out := appointmentResponse{
		ID:          a.ID.String(),
		CalendarID:  a.CalendarID.String(),
		Date:        a.Date.String(),
		StartTime:   a.StartTime.String(),
		EndTime:     a.EndTime.String(),
		Status:      string(a.Status),
		MeetingLink: a.MeetingLink,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	for _, at := range a.Attendees {
		out.Attendees = append(out.Attendees, attendeePayload{
			FirstName: at.FirstName,
			LastName:  at.LastName,
			Email:     at.Email,
			Phone:     at.Phone,
		})
	}
	return out
}

func resultMeta(res appointments.Result) gin.H {
	meta := gin.H{}
	if len(res.Notices) > 0 {
		meta["notices"] = res.Notices
	}
	if len(res.Warnings) > 0 {
		meta["warnings"] = res.Warnings
	}
	return meta
}

func (h *AppointmentsHandler) Create(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}

	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "BAD_REQUEST",
			"message": "Validation error",
			"errors":  []domain.Violation{{Field: "body", Message: "request body must be valid JSON"}},
		})
		return
	}

	in := appointments.CreateInput{
		CalendarID:  calendarID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      req.Status,
		MeetingLink: req.MeetingLink,
	}
	for _, a := range req.Attendees {
		in.Attendees = append(in.Attendees, appointments.AttendeeInput(a))
	}

	res, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err, "Appointment")
		return
	}

	h.log.Info("appointment created",
		slog.String("appointment_id", res.Appointment.ID.String()),
		slog.String("calendar_id", calendarID.String()),
		slog.String("date", res.Appointment.Date.String()),
	)

	body := gin.H{"data": toAppointmentResponse(res.Appointment)}
	if meta := resultMeta(res); len(meta) > 0 {
		body["meta"] = meta
	}
	c.JSON(http.StatusCreated, body)
}

func (h *AppointmentsHandler) Update(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}
	appointmentID, err := uuid.Parse(c.Param("appointment_id"))
	if err != nil {
		respondInvalidID(c, "appointment_id")
		return
	}

	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "BAD_REQUEST",
			"message": "Validation error",
			"errors":  []domain.Violation{{Field: "body", Message: "request body must be valid JSON"}},
		})
		return
	}

	res, err := h.svc.Update(c.Request.Context(), appointments.UpdateInput{
		CalendarID:    calendarID,
		AppointmentID: appointmentID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        req.Status,
		MeetingLink:   req.MeetingLink,
	})
	if err != nil {
		respondError(c, h.log, err, "Appointment")
		return
	}

	body := gin.H{"data": toAppointmentResponse(res.Appointment)}
	if meta := resultMeta(res); len(meta) > 0 {
		body["meta"] = meta
	}
	c.JSON(http.StatusOK, body)
}

func (h *AppointmentsHandler) Get(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}
	appointmentID, err := uuid.Parse(c.Param("appointment_id"))
	if err != nil {
		respondInvalidID(c, "appointment_id")
		return
	}

	appt, err := h.svc.Get(c.Request.Context(), calendarID, appointmentID)
	if err != nil {
		respondError(c, h.log, err, "Appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toAppointmentResponse(appt)})
}

func (h *AppointmentsHandler) List(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}

	appts, err := h.svc.List(c.Request.Context(), calendarID, c.Query("date"))
	if err != nil {
		respondError(c, h.log, err, "Appointment")
		return
	}

	out := make([]appointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointmentResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *AppointmentsHandler) Remove(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, "calendar_id")
		return
	}
	appointmentID, err := uuid.Parse(c.Param("appointment_id"))
	if err != nil {
		respondInvalidID(c, "appointment_id")
		return
	}

	if err := h.svc.Remove(c.Request.Context(), calendarID, appointmentID); err != nil {
		respondError(c, h.log, err, "Appointment")
		return
	}

	h.log.Info("appointment removed",
		slog.String("appointment_id", appointmentID.String()),
		slog.String("calendar_id", calendarID.String()),
	)
	c.Status(http.StatusNoContent)
}
