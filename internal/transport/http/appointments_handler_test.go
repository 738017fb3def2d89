package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"calendars/backend/internal/domain"
	"calendars/backend/internal/service/appointments"
	"calendars/backend/internal/store"
)

var (
	testCalendarID    = uuid.MustParse("0192f7a1-0000-7000-8000-000000000030")
	testAppointmentID = uuid.MustParse("0192f7a1-0000-7000-8000-000000000031")
)

type fakeAppointmentsService struct {
	createFn func(ctx context.Context, in appointments.CreateInput) (appointments.Result, error)
	updateFn func(ctx context.Context, in appointments.UpdateInput) (appointments.Result, error)
	removeFn func(ctx context.Context, calendarID, appointmentID uuid.UUID) error
	getFn    func(ctx context.Context, calendarID, appointmentID uuid.UUID) (domain.Appointment, error)
	listFn   func(ctx context.Context, calendarID uuid.UUID, date string) ([]domain.Appointment, error)
}

func (f *fakeAppointmentsService) Create(ctx context.Context, in appointments.CreateInput) (appointments.Result, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, in)
}

func (f *fakeAppointmentsService) Update(ctx context.Context, in appointments.UpdateInput) (appointments.Result, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, in)
}

func (f *fakeAppointmentsService) Remove(ctx context.Context, calendarID, appointmentID uuid.UUID) error {
	if f.removeFn == nil {
		panic("Remove not configured")
	}
	return f.removeFn(ctx, calendarID, appointmentID)
}

func (f *fakeAppointmentsService) Get(ctx context.Context, calendarID, appointmentID uuid.UUID) (domain.Appointment, error) {
	if f.getFn == nil {
		panic("Get not configured")
	}
	return f.getFn(ctx, calendarID, appointmentID)
}

func (f *fakeAppointmentsService) List(ctx context.Context, calendarID uuid.UUID, date string) ([]domain.Appointment, error) {
	if f.listFn == nil {
		panic("List not configured")
	}
	return f.listFn(ctx, calendarID, date)
}

func appointmentsRouter(svc appointmentsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAppointmentsHandler(svc, nil)
	r := gin.New()
	r.POST("/api/calendars/:id/appointments", h.Create)
	r.GET("/api/calendars/:id/appointments", h.List)
	r.GET("/api/calendars/:id/appointments/:appointment_id", h.Get)
	r.PATCH("/api/calendars/:id/appointments/:appointment_id", h.Update)
	r.DELETE("/api/calendars/:id/appointments/:appointment_id", h.Remove)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
	}
	return body
}

func TestCreateAppointment_Created(t *testing.T) {
	r := appointmentsRouter(&fakeAppointmentsService{
		createFn: func(ctx context.Context, in appointments.CreateInput) (appointments.Result, error) {
			if in.CalendarID != testCalendarID {
				t.Fatalf("calendar ID = %s, want path param", in.CalendarID)
			}
			if len(in.Attendees) != 1 || in.Attendees[0].Email != "ada@example.com" {
				t.Fatalf("attendees = %+v", in.Attendees)
			}
			return appointments.Result{
				Appointment: domain.Appointment{
					ID:         testAppointmentID,
					CalendarID: in.CalendarID,
					Date:       domain.Date(in.Date),
					StartTime:  domain.TimeOfDay(in.StartTime),
					EndTime:    domain.TimeOfDay(in.EndTime),
					Status:     domain.AppointmentStatusPending,
				},
				Notices: []string{"Notification recorded for 1 attendee(s)."},
			}, nil
		},
	})

	w := doJSON(t, r, http.MethodPost, "/api/calendars/"+testCalendarID.String()+"/appointments", `{
		"date": "2026-01-05",
		"start_time": "10:00:00",
		"end_time": "10:30:00",
		"attendees": [{"first_name": "Ada", "email": "ada@example.com"}]
	}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201\n%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("body = %v, want data object", body)
	}
	if data["id"] != testAppointmentID.String() {
		t.Fatalf("data.id = %v, want %s", data["id"], testAppointmentID)
	}
	meta, ok := body["meta"].(map[string]any)
	if !ok {
		t.Fatalf("body = %v, want meta with notices", body)
	}
	if _, ok := meta["notices"]; !ok {
		t.Fatalf("meta = %v, want notices", meta)
	}
}

func TestCreateAppointment_ValidationError(t *testing.T) {
	r := appointmentsRouter(&fakeAppointmentsService{
		createFn: func(ctx context.Context, in appointments.CreateInput) (appointments.Result, error) {
			return appointments.Result{}, domain.NewValidationError(
				domain.Violation{Field: "date", Message: `invalid date "junk": want YYYY-MM-DD`},
				domain.Violation{Field: "attendees", Message: "at least one attendee is required"},
			)
		},
	})

	w := doJSON(t, r, http.MethodPost, "/api/calendars/"+testCalendarID.String()+"/appointments", `{"date": "junk"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	if body["code"] != "BAD_REQUEST" {
		t.Fatalf("code = %v, want BAD_REQUEST", body["code"])
	}
	errs, ok := body["errors"].([]any)
	if !ok || len(errs) != 2 {
		t.Fatalf("errors = %v, want both violations", body["errors"])
	}
}

func TestCreateAppointment_Conflict(t *testing.T) {
	r := appointmentsRouter(&fakeAppointmentsService{
		createFn: func(ctx context.Context, in appointments.CreateInput) (appointments.Result, error) {
			return appointments.Result{}, store.ErrConflict
		},
	})

	w := doJSON(t, r, http.MethodPost, "/api/calendars/"+testCalendarID.String()+"/appointments", `{}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Time slot already booked" {
		t.Fatalf("message = %v, want %q", body["message"], "Time slot already booked")
	}
}

func TestCreateAppointment_InvalidCalendarID(t *testing.T) {
	r := appointmentsRouter(&fakeAppointmentsService{})

	w := doJSON(t, r, http.MethodPost, "/api/calendars/not-a-uuid/appointments", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateAppointment_NotificationWarningInMeta(t *testing.T) {
	r := appointmentsRouter(&fakeAppointmentsService{
		createFn: func(ctx context.Context, in appointments.CreateInput) (appointments.Result, error) {
			return appointments.Result{
				Appointment: domain.Appointment{ID: testAppointmentID, CalendarID: testCalendarID},
				Warnings:    []string{"Attendee notifications could not be sent. The appointment was booked."},
			}, nil
		},
	})

	w := doJSON(t, r, http.MethodPost, "/api/calendars/"+testCalendarID.String()+"/appointments", `{}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 despite notification warning", w.Code)
	}
	body := decodeBody(t, w)
	meta, ok := body["meta"].(map[string]any)
	if !ok {
		t.Fatalf("body = %v, want meta with warnings", body)
	}
	warnings, ok := meta["warnings"].([]any)
	if !ok || len(warnings) != 1 {
		t.Fatalf("meta = %v, want one warning", meta)
	}
}

func TestGetAppointment_NotFound(t *testing.T) {
	r := appointmentsRouter(&fakeAppointmentsService{
		getFn: func(ctx context.Context, calendarID, appointmentID uuid.UUID) (domain.Appointment, error) {
			return domain.Appointment{}, store.ErrNotFound
		},
	})

	w := doJSON(t, r, http.MethodGet, "/api/calendars/"+testCalendarID.String()+"/appointments/"+testAppointmentID.String(), "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	body := decodeBody(t, w)
	if body["code"] != "NOT_FOUND" || body["resource"] != "Appointment" {
		t.Fatalf("body = %v, want NOT_FOUND Appointment", body)
	}
}

func TestUpdateAppointment_PartialBody(t *testing.T) {
	r := appointmentsRouter(&fakeAppointmentsService{
		updateFn: func(ctx context.Context, in appointments.UpdateInput) (appointments.Result, error) {
			if in.Date != nil || in.StartTime != nil || in.EndTime != nil || in.MeetingLink != nil {
				t.Fatalf("absent fields must stay nil: %+v", in)
			}
			if in.Status == nil || *in.Status != "confirmed" {
				t.Fatalf("status = %v, want confirmed", in.Status)
			}
			appt := domain.Appointment{
				ID:         in.AppointmentID,
				CalendarID: in.CalendarID,
				Status:     domain.AppointmentStatusConfirmed,
			}
			return appointments.Result{Appointment: appt}, nil
		},
	})

	w := doJSON(t, r, http.MethodPatch,
		"/api/calendars/"+testCalendarID.String()+"/appointments/"+testAppointmentID.String(),
		`{"status": "confirmed"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", w.Code, w.Body.String())
	}
}

func TestRemoveAppointment_NoContent(t *testing.T) {
	r := appointmentsRouter(&fakeAppointmentsService{
		removeFn: func(ctx context.Context, calendarID, appointmentID uuid.UUID) error {
			return nil
		},
	})

	w := doJSON(t, r, http.MethodDelete,
		"/api/calendars/"+testCalendarID.String()+"/appointments/"+testAppointmentID.String(), "")

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
}

func TestListAppointments_PassesDateFilter(t *testing.T) {
	r := appointmentsRouter(&fakeAppointmentsService{
		listFn: func(ctx context.Context, calendarID uuid.UUID, date string) ([]domain.Appointment, error) {
			if date != "2026-01-05" {
				t.Fatalf("date = %q, want query param", date)
			}
			return []domain.Appointment{{ID: testAppointmentID, CalendarID: calendarID}}, nil
		},
	})

	w := doJSON(t, r, http.MethodGet,
		"/api/calendars/"+testCalendarID.String()+"/appointments?date=2026-01-05", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	data, ok := body["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("data = %v, want one appointment", body["data"])
	}
}
