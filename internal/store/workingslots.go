package store

import (
	"context"

	"github.com/google/uuid"

	"calendars/backend/internal/domain"
)

type WorkingSlotRepository interface {
	Create(ctx context.Context, slot domain.WorkingSlot) (domain.WorkingSlot, error)
	Update(ctx context.Context, slot domain.WorkingSlot) (domain.WorkingSlot, error)
	Get(ctx context.Context, calendarID, slotID uuid.UUID) (domain.WorkingSlot, error)
	List(ctx context.Context, calendarID uuid.UUID) ([]domain.WorkingSlot, error)
	SoftDelete(ctx context.Context, calendarID, slotID uuid.UUID) error

	// HasDuplicate reports whether a slot with the same
	// (calendar_id, day_of_week, start_time, end_time, creation_date)
	// already exists, excluding excludeID when non-nil.
	HasDuplicate(ctx context.Context, slot domain.WorkingSlot, excludeID uuid.UUID) (bool, error)
}
