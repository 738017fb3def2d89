package appointments

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"calendars/backend/internal/domain"
	"calendars/backend/internal/notify"
	"calendars/backend/internal/store"
)

// Service orchestrates the appointment lifecycle: availability validation,
// conflict detection, transactional persistence, and non-fatal notification
// side effects, in that order. Validation and conflict failures abort before
// any write; notification failures never do.
type Service struct {
	repo     store.AppointmentRepository
	notifier notify.Notifier
	log      *slog.Logger
}

func NewService(repo store.AppointmentRepository, notifier notify.Notifier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log.With(slog.String("component", "appointments")),
	}
}

type AttendeeInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type CreateInput struct {
	CalendarID  uuid.UUID
	Date        string
	StartTime   string
	EndTime     string
	Status      string
	MeetingLink string
	Attendees   []AttendeeInput
}

// Result carries the persisted appointment plus any non-fatal notices and
// warnings from the notification side channel.
type Result struct {
	Appointment domain.Appointment
	Notices     []string
	Warnings    []string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Result, error) {
	var violations []domain.Violation

	if in.CalendarID == uuid.Nil {
		violations = append(violations, domain.Violation{Field: "calendar_id", Message: "calendar_id is required"})
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		violations = append(violations, domain.Violation{Field: "date", Message: err.Error()})
	}
	start, err := domain.ParseTimeOfDay(in.StartTime)
	if err != nil {
		violations = append(violations, domain.Violation{Field: "start_time", Message: err.Error()})
	}
	end, err := domain.ParseTimeOfDay(in.EndTime)
	if err != nil {
		violations = append(violations, domain.Violation{Field: "end_time", Message: err.Error()})
	}

	status := domain.AppointmentStatus(strings.TrimSpace(in.Status))
	if status == "" {
		status = domain.AppointmentStatusPending
	}
	if !status.Valid() {
		violations = append(violations, domain.Violation{Field: "status", Message: "status must be one of pending, confirmed, canceled, completed"})
	}

	violations = append(violations, validateAttendees(in.Attendees)...)

	if len(violations) > 0 {
		return Result{}, domain.NewValidationError(violations...)
	}

	attendees := make([]*domain.Attendee, 0, len(in.Attendees))
	for _, a := range in.Attendees {
		attendees = append(attendees, &domain.Attendee{
			FirstName: strings.TrimSpace(a.FirstName),
			LastName:  strings.TrimSpace(a.LastName),
			Email:     strings.TrimSpace(a.Email),
			Phone:     strings.TrimSpace(a.Phone),
		})
	}

	var created domain.Appointment
	err = s.repo.InCalendarTransaction(ctx, in.CalendarID, func(ctx context.Context, tx store.ScheduleTx) error {
		if _, err := tx.GetCalendar(ctx, in.CalendarID); err != nil {
			return err
		}

		if err := checkSchedule(ctx, tx, in.CalendarID, date, start, end, uuid.Nil); err != nil {
			return err
		}

		appt, err := tx.CreateAppointment(ctx, domain.Appointment{
			CalendarID:  in.CalendarID,
			Date:        date,
			StartTime:   start,
			EndTime:     end,
			Status:      status,
			MeetingLink: strings.TrimSpace(in.MeetingLink),
			Attendees:   attendees,
		})
		if err != nil {
			return err
		}
		created = appt
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{Appointment: created}
	notice, err := s.notifier.AppointmentCreated(ctx, created)
	if err != nil {
		s.log.Warn("attendee notification failed",
			slog.Any("err", err),
			slog.String("appointment_id", created.ID.String()),
		)
		result.Warnings = append(result.Warnings, "Attendee notifications could not be sent. The appointment was booked.")
	} else if notice != "" {
		result.Notices = append(result.Notices, notice)
	}
	return result, nil
}

type UpdateInput struct {
	CalendarID    uuid.UUID
	AppointmentID uuid.UUID

	// Nil fields keep the existing value.
	Date        *string
	StartTime   *string
	EndTime     *string
	Status      *string
	MeetingLink *string
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (Result, error) {
	if in.CalendarID == uuid.Nil {
		return Result{}, domain.NewValidationError(domain.Violation{Field: "calendar_id", Message: "calendar_id is required"})
	}
	if in.AppointmentID == uuid.Nil {
		return Result{}, domain.NewValidationError(domain.Violation{Field: "id", Message: "appointment id is required"})
	}

	var updated domain.Appointment
	err := s.repo.InCalendarTransaction(ctx, in.CalendarID, func(ctx context.Context, tx store.ScheduleTx) error {
		existing, err := tx.GetAppointment(ctx, in.CalendarID, in.AppointmentID)
		if err != nil {
			return err
		}

		var violations []domain.Violation

		date := existing.Date
		if in.Date != nil {
			if date, err = domain.ParseDate(*in.Date); err != nil {
				violations = append(violations, domain.Violation{Field: "date", Message: err.Error()})
			}
		}
		start := existing.StartTime
		if in.StartTime != nil {
			if start, err = domain.ParseTimeOfDay(*in.StartTime); err != nil {
				violations = append(violations, domain.Violation{Field: "start_time", Message: err.Error()})
			}
		}
		end := existing.EndTime
		if in.EndTime != nil {
			if end, err = domain.ParseTimeOfDay(*in.EndTime); err != nil {
				violations = append(violations, domain.Violation{Field: "end_time", Message: err.Error()})
			}
		}

		status := existing.Status
		if in.Status != nil {
			// Any enum value may be set directly; there are no transition
			// guards on status.
			status = domain.AppointmentStatus(strings.TrimSpace(*in.Status))
			if !status.Valid() {
				violations = append(violations, domain.Violation{Field: "status", Message: "status must be one of pending, confirmed, canceled, completed"})
			}
		}

		if len(violations) > 0 {
			return domain.NewValidationError(violations...)
		}

		// When the window is unchanged the conflict check is skipped
		// entirely; availability is still re-verified against the current
		// slot configuration.
		timeChanged := in.Date != nil || in.StartTime != nil || in.EndTime != nil

		slots, err := eligibleSlots(ctx, tx, in.CalendarID, date)
		if err != nil {
			return err
		}
		if violations := domain.CheckAvailability(slots, date, start, end); len(violations) > 0 {
			return domain.NewValidationError(violations...)
		}

		if timeChanged {
			conflict, err := tx.HasActiveOverlap(ctx, in.CalendarID, date, start, end, in.AppointmentID)
			if err != nil {
				return err
			}
			if conflict {
				return store.ErrConflict
			}
		}

		existing.Date = date
		existing.StartTime = start
		existing.EndTime = end
		existing.Status = status
		if in.MeetingLink != nil {
			existing.MeetingLink = strings.TrimSpace(*in.MeetingLink)
		}

		appt, err := tx.UpdateAppointment(ctx, existing)
		if err != nil {
			return err
		}
		updated = appt
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{Appointment: updated}
	notice, err := s.notifier.AppointmentUpdated(ctx, updated)
	if err != nil {
		s.log.Warn("attendee notification failed",
			slog.Any("err", err),
			slog.String("appointment_id", updated.ID.String()),
		)
		result.Warnings = append(result.Warnings, "Attendee notifications could not be sent. The appointment was updated.")
	} else if notice != "" {
		result.Notices = append(result.Notices, notice)
	}
	return result, nil
}

// Remove soft-deletes the appointment. No scheduling re-validation runs; an
// associated external meeting link is logged, never acted on.
func (s *Service) Remove(ctx context.Context, calendarID, appointmentID uuid.UUID) error {
	appt, err := s.repo.Get(ctx, calendarID, appointmentID)
	if err != nil {
		return err
	}

	if strings.Contains(appt.MeetingLink, "meet.google.com") {
		s.log.Info("removing appointment with external meeting link",
			slog.String("appointment_id", appointmentID.String()),
			slog.String("meeting_link", appt.MeetingLink),
		)
	}

	return s.repo.SoftDelete(ctx, calendarID, appointmentID)
}

func (s *Service) Get(ctx context.Context, calendarID, appointmentID uuid.UUID) (domain.Appointment, error) {
	return s.repo.Get(ctx, calendarID, appointmentID)
}

func (s *Service) List(ctx context.Context, calendarID uuid.UUID, date string) ([]domain.Appointment, error) {
	var d domain.Date
	if strings.TrimSpace(date) != "" {
		parsed, err := domain.ParseDate(date)
		if err != nil {
			return nil, domain.NewValidationError(domain.Violation{Field: "date", Message: err.Error()})
		}
		d = parsed
	}
	return s.repo.List(ctx, calendarID, d)
}

// checkSchedule runs the availability validator and then the conflict
// detector against the transaction's snapshot.
func checkSchedule(ctx context.Context, tx store.ScheduleTx, calendarID uuid.UUID, date domain.Date, start, end domain.TimeOfDay, excludeID uuid.UUID) error {
	slots, err := eligibleSlots(ctx, tx, calendarID, date)
	if err != nil {
		return err
	}
	if violations := domain.CheckAvailability(slots, date, start, end); len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}

	conflict, err := tx.HasActiveOverlap(ctx, calendarID, date, start, end, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return store.ErrConflict
	}
	return nil
}

func eligibleSlots(ctx context.Context, tx store.ScheduleTx, calendarID uuid.UUID, date domain.Date) ([]domain.WorkingSlot, error) {
	weekday, err := date.Weekday()
	if err != nil {
		return nil, domain.NewValidationError(domain.Violation{Field: "date", Message: err.Error()})
	}
	return tx.ListEligibleWorkingSlots(ctx, calendarID, weekday, date)
}

func validateAttendees(attendees []AttendeeInput) []domain.Violation {
	if len(attendees) == 0 {
		return []domain.Violation{{Field: "attendees", Message: "at least one attendee is required"}}
	}
	var violations []domain.Violation
	for _, a := range attendees {
		if strings.TrimSpace(a.Email) == "" {
			violations = append(violations, domain.Violation{Field: "attendees", Message: "attendee email is required"})
			break
		}
	}
	return violations
}
