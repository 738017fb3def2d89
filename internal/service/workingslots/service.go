// Package workingslots manages the availability windows a calendar accepts
// appointments in.
package workingslots

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"calendars/backend/internal/domain"
	"calendars/backend/internal/store"
)

type Service struct {
	slots     store.WorkingSlotRepository
	calendars store.CalendarRepository
}

func NewService(slots store.WorkingSlotRepository, calendars store.CalendarRepository) *Service {
	return &Service{slots: slots, calendars: calendars}
}

type CreateInput struct {
	CalendarID   uuid.UUID
	DayOfWeek    string
	StartTime    string
	EndTime      string
	Duration     string
	CreationDate string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.WorkingSlot, error) {
	slot, err := s.buildSlot(in)
	if err != nil {
		return domain.WorkingSlot{}, err
	}

	// A slot without its own duration inherits the calendar's default. This
	// also confirms the calendar exists before anything is written.
	cal, err := s.calendars.Get(ctx, in.CalendarID)
	if err != nil {
		return domain.WorkingSlot{}, err
	}
	if slot.Duration.IsZero() {
		slot.Duration = cal.Duration
	}

	duplicate, err := s.slots.HasDuplicate(ctx, slot, uuid.Nil)
	if err != nil {
		return domain.WorkingSlot{}, err
	}
	if duplicate {
		return domain.WorkingSlot{}, store.ErrConflict
	}

	return s.slots.Create(ctx, slot)
}

type UpdateInput struct {
	CalendarID uuid.UUID
	SlotID     uuid.UUID

	// Nil fields keep the existing value.
	DayOfWeek    *string
	StartTime    *string
	EndTime      *string
	Duration     *string
	CreationDate *string
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (domain.WorkingSlot, error) {
	existing, err := s.slots.Get(ctx, in.CalendarID, in.SlotID)
	if err != nil {
		return domain.WorkingSlot{}, err
	}

	var violations []domain.Violation

	if in.DayOfWeek != nil {
		if !domain.IsWeekdayName(*in.DayOfWeek) {
			violations = append(violations, domain.Violation{Field: "day_of_week", Message: "day_of_week must be a weekday name (Sunday through Saturday)"})
		} else {
			existing.DayOfWeek = *in.DayOfWeek
		}
	}
	if in.StartTime != nil {
		if t, err := domain.ParseTimeOfDay(*in.StartTime); err != nil {
			violations = append(violations, domain.Violation{Field: "start_time", Message: err.Error()})
		} else {
			existing.StartTime = t
		}
	}
	if in.EndTime != nil {
		if t, err := domain.ParseTimeOfDay(*in.EndTime); err != nil {
			violations = append(violations, domain.Violation{Field: "end_time", Message: err.Error()})
		} else {
			existing.EndTime = t
		}
	}
	if in.Duration != nil {
		if *in.Duration == "" {
			existing.Duration = ""
		} else if t, err := domain.ParseTimeOfDay(*in.Duration); err != nil {
			violations = append(violations, domain.Violation{Field: "duration", Message: err.Error()})
		} else {
			existing.Duration = t
		}
	}
	if in.CreationDate != nil {
		if *in.CreationDate == "" {
			existing.CreationDate = ""
		} else if d, err := domain.ParseDate(*in.CreationDate); err != nil {
			violations = append(violations, domain.Violation{Field: "creation_date", Message: err.Error()})
		} else {
			existing.CreationDate = d
		}
	}

	if len(violations) == 0 && existing.EndTime <= existing.StartTime {
		violations = append(violations, domain.Violation{Field: "end_time", Message: "end_time must be after start_time"})
	}
	violations = append(violations, domain.ValidateSlotDate(existing.DayOfWeek, existing.CreationDate)...)
	if len(violations) > 0 {
		return domain.WorkingSlot{}, domain.NewValidationError(violations...)
	}

	duplicate, err := s.slots.HasDuplicate(ctx, existing, existing.ID)
	if err != nil {
		return domain.WorkingSlot{}, err
	}
	if duplicate {
		return domain.WorkingSlot{}, store.ErrConflict
	}

	return s.slots.Update(ctx, existing)
}

func (s *Service) Get(ctx context.Context, calendarID, slotID uuid.UUID) (domain.WorkingSlot, error) {
	return s.slots.Get(ctx, calendarID, slotID)
}

func (s *Service) List(ctx context.Context, calendarID uuid.UUID) ([]domain.WorkingSlot, error) {
	return s.slots.List(ctx, calendarID)
}

func (s *Service) Remove(ctx context.Context, calendarID, slotID uuid.UUID) error {
	return s.slots.SoftDelete(ctx, calendarID, slotID)
}

func (s *Service) buildSlot(in CreateInput) (domain.WorkingSlot, error) {
	var violations []domain.Violation

	if in.CalendarID == uuid.Nil {
		violations = append(violations, domain.Violation{Field: "calendar_id", Message: "calendar_id is required"})
	}
	if !domain.IsWeekdayName(in.DayOfWeek) {
		violations = append(violations, domain.Violation{Field: "day_of_week", Message: "day_of_week must be a weekday name (Sunday through Saturday)"})
	}

	start, err := domain.ParseTimeOfDay(in.StartTime)
	if err != nil {
		violations = append(violations, domain.Violation{Field: "start_time", Message: err.Error()})
	}
	end, err := domain.ParseTimeOfDay(in.EndTime)
	if err != nil {
		violations = append(violations, domain.Violation{Field: "end_time", Message: err.Error()})
	}
	if len(violations) == 0 && end <= start {
		violations = append(violations, domain.Violation{Field: "end_time", Message: "end_time must be after start_time"})
	}

	var duration domain.TimeOfDay
	if strings.TrimSpace(in.Duration) != "" {
		if duration, err = domain.ParseTimeOfDay(in.Duration); err != nil {
			violations = append(violations, domain.Violation{Field: "duration", Message: err.Error()})
		}
	}

	var creationDate domain.Date
	if strings.TrimSpace(in.CreationDate) != "" {
		if creationDate, err = domain.ParseDate(in.CreationDate); err != nil {
			violations = append(violations, domain.Violation{Field: "creation_date", Message: err.Error()})
		}
	}
	if len(violations) == 0 {
		violations = append(violations, domain.ValidateSlotDate(in.DayOfWeek, creationDate)...)
	}

	if len(violations) > 0 {
		return domain.WorkingSlot{}, domain.NewValidationError(violations...)
	}

	return domain.WorkingSlot{
		CalendarID:   in.CalendarID,
		DayOfWeek:    in.DayOfWeek,
		StartTime:    start,
		EndTime:      end,
		Duration:     duration,
		CreationDate: creationDate,
	}, nil
}
