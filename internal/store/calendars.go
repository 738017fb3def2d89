package store

import (
	"context"

	"github.com/google/uuid"

	"calendars/backend/internal/domain"
)

type CalendarRepository interface {
	Create(ctx context.Context, cal domain.Calendar) (domain.Calendar, error)
	Update(ctx context.Context, cal domain.Calendar) (domain.Calendar, error)
	Get(ctx context.Context, calendarID uuid.UUID) (domain.Calendar, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]domain.Calendar, error)

	// Delete soft-deletes the calendar together with its working slots and
	// appointments.
	Delete(ctx context.Context, calendarID uuid.UUID) error
}
