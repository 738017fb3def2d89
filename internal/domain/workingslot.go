package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// WorkingSlot declares a window of time during which a calendar accepts
// appointments. A slot with an empty CreationDate is a standing weekly rule
// for its DayOfWeek; a slot with CreationDate set applies only to that
// specific date.
type WorkingSlot struct {
	bun.BaseModel `bun:"table:working_slots"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	CalendarID   uuid.UUID `bun:"calendar_id,notnull,type:uuid"`
	DayOfWeek    string    `bun:"day_of_week,notnull"`
	StartTime    TimeOfDay `bun:"start_time,notnull"`
	EndTime      TimeOfDay `bun:"end_time,notnull"`
	Duration     TimeOfDay `bun:"duration,nullzero"`
	CreationDate Date      `bun:"creation_date,nullzero"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
	UpdatedAt    time.Time `bun:"updated_at,notnull"`
	DeletedAt    time.Time `bun:"deleted_at,soft_delete,nullzero"`
}

func (s *WorkingSlot) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if s.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			s.ID = id
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		s.UpdatedAt = now
	}
	return nil
}

var weekdayNames = map[string]struct{}{
	"Sunday":    {},
	"Monday":    {},
	"Tuesday":   {},
	"Wednesday": {},
	"Thursday":  {},
	"Friday":    {},
	"Saturday":  {},
}

func IsWeekdayName(s string) bool {
	_, ok := weekdayNames[s]
	return ok
}

// AppliesTo reports whether the slot is eligible for the given date: a
// standing weekly rule applies to every date on its weekday, a date-specific
// slot only to its own date. Either kind can satisfy coverage; neither blocks
// the other.
func (s WorkingSlot) AppliesTo(date Date) bool {
	if s.CreationDate.IsZero() {
		return true
	}
	return s.CreationDate == date
}

// Covers reports whether the window [start, end] lies within the slot.
func (s WorkingSlot) Covers(start, end TimeOfDay) bool {
	return s.StartTime <= start && s.EndTime >= end
}

// ValidateSlotDate checks that a date-specific slot's CreationDate falls on
// its declared DayOfWeek. A mismatch is a validation error, never silently
// corrected. Slots without a CreationDate always pass.
func ValidateSlotDate(dayOfWeek string, creationDate Date) []Violation {
	if creationDate.IsZero() {
		return nil
	}
	actual, err := creationDate.Weekday()
	if err != nil {
		return []Violation{{Field: "creation_date", Message: err.Error()}}
	}
	if actual != dayOfWeek {
		return []Violation{{
			Field:   "creation_date",
			Message: "working slot date (" + creationDate.String() + ") is a " + actual + ", but the working slot is for " + dayOfWeek,
		}}
	}
	return nil
}
