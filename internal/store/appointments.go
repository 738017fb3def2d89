package store

import (
	"context"

	"github.com/google/uuid"

	"calendars/backend/internal/domain"
)

// ScheduleTx exposes the reads and writes the appointment lifecycle needs
// inside one transaction. Every method sees the same snapshot, and the
// transaction holds the calendar's advisory lock, so a validate-then-insert
// sequence cannot race a concurrent booking on the same calendar.
type ScheduleTx interface {
	GetCalendar(ctx context.Context, calendarID uuid.UUID) (domain.Calendar, error)
	ListEligibleWorkingSlots(ctx context.Context, calendarID uuid.UUID, dayOfWeek string, date domain.Date) ([]domain.WorkingSlot, error)

	// HasActiveOverlap reports whether any pending or confirmed appointment
	// on the calendar and date overlaps [start, end), excluding
	// excludeID when it is non-nil (so an update never conflicts with the
	// appointment's own prior state).
	HasActiveOverlap(ctx context.Context, calendarID uuid.UUID, date domain.Date, start, end domain.TimeOfDay, excludeID uuid.UUID) (bool, error)

	GetAppointment(ctx context.Context, calendarID, appointmentID uuid.UUID) (domain.Appointment, error)
	CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
}

type AppointmentRepository interface {
	// InCalendarTransaction runs fn inside a transaction that holds the
	// calendar's advisory lock for its duration.
	InCalendarTransaction(ctx context.Context, calendarID uuid.UUID, fn func(ctx context.Context, tx ScheduleTx) error) error

	Get(ctx context.Context, calendarID, appointmentID uuid.UUID) (domain.Appointment, error)
	List(ctx context.Context, calendarID uuid.UUID, date domain.Date) ([]domain.Appointment, error)
	SoftDelete(ctx context.Context, calendarID, appointmentID uuid.UUID) error
}
