package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCanceled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// Active reports whether the appointment occupies its time window for
// conflict purposes. Canceled and completed appointments never block new
// bookings.
func (s AppointmentStatus) Active() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID          uuid.UUID         `bun:"id,pk,type:uuid"`
	CalendarID  uuid.UUID         `bun:"calendar_id,notnull,type:uuid"`
	Date        Date              `bun:"date,notnull"`
	StartTime   TimeOfDay         `bun:"start_time,notnull"`
	EndTime     TimeOfDay         `bun:"end_time,notnull"`
	Status      AppointmentStatus `bun:"status,notnull"`
	MeetingLink string            `bun:"meeting_link"`
	CreatedAt   time.Time         `bun:"created_at,notnull"`
	UpdatedAt   time.Time         `bun:"updated_at,notnull"`
	DeletedAt   time.Time         `bun:"deleted_at,soft_delete,nullzero"`

	Attendees []*Attendee `bun:"rel:has-many,join:id=appointment_id"`
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.Status == "" {
			a.Status = AppointmentStatusPending
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}

type Attendee struct {
	bun.BaseModel `bun:"table:attendees"`

	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	AppointmentID uuid.UUID `bun:"appointment_id,notnull,type:uuid"`
	FirstName     string    `bun:"first_name"`
	LastName      string    `bun:"last_name"`
	Email         string    `bun:"email,notnull"`
	Phone         string    `bun:"phone"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
	DeletedAt     time.Time `bun:"deleted_at,soft_delete,nullzero"`
}

func (a *Attendee) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
