package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"calendars/backend/internal/domain"
	"calendars/backend/internal/store"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

type scheduleTx struct {
	tx bun.Tx
}

func (r *AppointmentRepo) InCalendarTransaction(ctx context.Context, calendarID uuid.UUID, fn func(ctx context.Context, tx store.ScheduleTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockCalendar(ctx, tx, calendarID); err != nil {
			return err
		}
		return fn(ctx, scheduleTx{tx: tx})
	})
}

// lockCalendar serializes bookings per calendar for the rest of the
// transaction, so validate-then-insert sequences on the same calendar cannot
// interleave.
func lockCalendar(ctx context.Context, tx bun.Tx, calendarID uuid.UUID) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", calendarID.String()).Exec(ctx)
	return err
}

func (r *AppointmentRepo) Get(ctx context.Context, calendarID, appointmentID uuid.UUID) (domain.Appointment, error) {
	var appt domain.Appointment
	err := r.db.NewSelect().
		Model(&appt).
		Relation("Attendees").
		Where("appointment.id = ?", appointmentID).
		Where("appointment.calendar_id = ?", calendarID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return appt, nil
}

func (r *AppointmentRepo) List(ctx context.Context, calendarID uuid.UUID, date domain.Date) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	q := r.db.NewSelect().
		Model(&rows).
		Relation("Attendees").
		Where("appointment.calendar_id = ?", calendarID)
	if !date.IsZero() {
		q = q.Where("appointment.date = ?", date)
	}
	err := q.
		OrderExpr("appointment.date ASC, appointment.start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentRepo) SoftDelete(ctx context.Context, calendarID, appointmentID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.Appointment)(nil)).
		Where("id = ?", appointmentID).
		Where("calendar_id = ?", calendarID).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r scheduleTx) GetCalendar(ctx context.Context, calendarID uuid.UUID) (domain.Calendar, error) {
	var cal domain.Calendar
	err := r.tx.NewSelect().
		Model(&cal).
		Where("id = ?", calendarID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Calendar{}, store.ErrNotFound
		}
		return domain.Calendar{}, err
	}
	return cal, nil
}

func (r scheduleTx) ListEligibleWorkingSlots(ctx context.Context, calendarID uuid.UUID, dayOfWeek string, date domain.Date) ([]domain.WorkingSlot, error) {
	var rows []domain.WorkingSlot
	err := r.tx.NewSelect().
		Model(&rows).
		Where("calendar_id = ?", calendarID).
		Where("day_of_week = ?", dayOfWeek).
		Where("creation_date IS NULL OR creation_date = ?", date).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r scheduleTx) HasActiveOverlap(ctx context.Context, calendarID uuid.UUID, date domain.Date, start, end domain.TimeOfDay, excludeID uuid.UUID) (bool, error) {
	q := r.tx.NewSelect().
		Model((*domain.Appointment)(nil)).
		Where("calendar_id = ?", calendarID).
		Where("date = ?", date).
		Where("status IN (?)", bun.In([]domain.AppointmentStatus{
			domain.AppointmentStatusPending,
			domain.AppointmentStatusConfirmed,
		})).
		Where("start_time < ?", end).
		Where("end_time > ?", start)
	if excludeID != uuid.Nil {
		q = q.Where("id != ?", excludeID)
	}
	return q.Exists(ctx)
}

func (r scheduleTx) GetAppointment(ctx context.Context, calendarID, appointmentID uuid.UUID) (domain.Appointment, error) {
	var appt domain.Appointment
	err := r.tx.NewSelect().
		Model(&appt).
		Relation("Attendees").
		Where("appointment.id = ?", appointmentID).
		Where("appointment.calendar_id = ?", calendarID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return appt, nil
}

func (r scheduleTx) CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	attendees := appt.Attendees
	appt.Attendees = nil

	if _, err := r.tx.NewInsert().Model(&appt).Exec(ctx); err != nil {
		return domain.Appointment{}, mapAppointmentError(err)
	}

	for _, a := range attendees {
		a.AppointmentID = appt.ID
	}
	if len(attendees) > 0 {
		if _, err := r.tx.NewInsert().Model(&attendees).Exec(ctx); err != nil {
			return domain.Appointment{}, err
		}
	}

	appt.Attendees = attendees
	return appt, nil
}

func (r scheduleTx) UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	res, err := r.tx.NewUpdate().
		Model(&appt).
		Column("date", "start_time", "end_time", "status", "meeting_link", "updated_at").
		Where("id = ?", appt.ID).
		Where("calendar_id = ?", appt.CalendarID).
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, mapAppointmentError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	return appt, nil
}

func mapAppointmentError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23P01" && pgErr.ConstraintName == "appointments_no_overlap" {
			return store.ErrConflict
		}
		if pgErr.Code == "23505" {
			return store.ErrConflict
		}
		if pgErr.Code == "23503" {
			return store.ErrNotFound
		}
	}
	return err
}
