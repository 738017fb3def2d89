package calendars

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"calendars/backend/internal/domain"
	"calendars/backend/internal/store"
)

type Service struct {
	repo store.CalendarRepository
}

func NewService(repo store.CalendarRepository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	ProviderID  uuid.UUID
	Name        string
	Description string
	Timezone    string
	Duration    string
	Color       string
	Slug        string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Calendar, error) {
	var violations []domain.Violation

	if in.ProviderID == uuid.Nil {
		violations = append(violations, domain.Violation{Field: "provider_id", Message: "provider_id is required"})
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		violations = append(violations, domain.Violation{Field: "name", Message: "name is required"})
	}

	duration := domain.DefaultAppointmentDuration
	if strings.TrimSpace(in.Duration) != "" {
		parsed, err := domain.ParseTimeOfDay(in.Duration)
		if err != nil {
			violations = append(violations, domain.Violation{Field: "duration", Message: err.Error()})
		} else {
			duration = parsed
		}
	}

	if len(violations) > 0 {
		return domain.Calendar{}, domain.NewValidationError(violations...)
	}

	return s.repo.Create(ctx, domain.Calendar{
		ProviderID:  in.ProviderID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Timezone:    strings.TrimSpace(in.Timezone),
		Duration:    duration,
		Color:       strings.TrimSpace(in.Color),
		Slug:        strings.TrimSpace(in.Slug),
	})
}

type UpdateInput struct {
	CalendarID uuid.UUID

	// Nil fields keep the existing value.
	Name        *string
	Description *string
	Timezone    *string
	Duration    *string
	Color       *string
	Slug        *string
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (domain.Calendar, error) {
	existing, err := s.repo.Get(ctx, in.CalendarID)
	if err != nil {
		return domain.Calendar{}, err
	}

	var violations []domain.Violation

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			violations = append(violations, domain.Violation{Field: "name", Message: "name is required"})
		} else {
			existing.Name = name
		}
	}
	if in.Description != nil {
		existing.Description = strings.TrimSpace(*in.Description)
	}
	if in.Timezone != nil {
		existing.Timezone = strings.TrimSpace(*in.Timezone)
	}
	if in.Duration != nil {
		parsed, err := domain.ParseTimeOfDay(*in.Duration)
		if err != nil {
			violations = append(violations, domain.Violation{Field: "duration", Message: err.Error()})
		} else {
			existing.Duration = parsed
		}
	}
	if in.Color != nil {
		existing.Color = strings.TrimSpace(*in.Color)
	}
	if in.Slug != nil {
		existing.Slug = strings.TrimSpace(*in.Slug)
	}

	if len(violations) > 0 {
		return domain.Calendar{}, domain.NewValidationError(violations...)
	}

	return s.repo.Update(ctx, existing)
}

func (s *Service) Get(ctx context.Context, calendarID uuid.UUID) (domain.Calendar, error) {
	return s.repo.Get(ctx, calendarID)
}

func (s *Service) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]domain.Calendar, error) {
	return s.repo.ListByProvider(ctx, providerID)
}

func (s *Service) Remove(ctx context.Context, calendarID uuid.UUID) error {
	return s.repo.Delete(ctx, calendarID)
}
