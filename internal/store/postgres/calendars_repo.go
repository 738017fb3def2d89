package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"calendars/backend/internal/domain"
	"calendars/backend/internal/store"
)

type CalendarRepo struct {
	db *bun.DB
}

func NewCalendarRepo(db *bun.DB) *CalendarRepo {
	return &CalendarRepo{db: db}
}

func (r *CalendarRepo) Create(ctx context.Context, cal domain.Calendar) (domain.Calendar, error) {
	if _, err := r.db.NewInsert().Model(&cal).Exec(ctx); err != nil {
		return domain.Calendar{}, mapConstraintError(err)
	}
	return cal, nil
}

func (r *CalendarRepo) Update(ctx context.Context, cal domain.Calendar) (domain.Calendar, error) {
	res, err := r.db.NewUpdate().
		Model(&cal).
		Column("name", "description", "timezone", "duration", "color", "slug", "updated_at").
		Where("id = ?", cal.ID).
		Exec(ctx)
	if err != nil {
		return domain.Calendar{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Calendar{}, err
	}
	if affected == 0 {
		return domain.Calendar{}, store.ErrNotFound
	}
	return cal, nil
}

func (r *CalendarRepo) Get(ctx context.Context, calendarID uuid.UUID) (domain.Calendar, error) {
	var cal domain.Calendar
	err := r.db.NewSelect().
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

func (r *CalendarRepo) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]domain.Calendar, error) {
	var rows []domain.Calendar
	err := r.db.NewSelect().
		Model(&rows).
		Where("provider_id = ?", providerID).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete soft-deletes the calendar and everything scheduled on it in one
// transaction, preserving audit history.
func (r *CalendarRepo) Delete(ctx context.Context, calendarID uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*domain.Calendar)(nil)).
			Where("id = ?", calendarID).
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

		if _, err := tx.NewDelete().
			Model((*domain.Attendee)(nil)).
			Where("appointment_id IN (SELECT id FROM appointments WHERE calendar_id = ?)", calendarID).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().
			Model((*domain.Appointment)(nil)).
			Where("calendar_id = ?", calendarID).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().
			Model((*domain.WorkingSlot)(nil)).
			Where("calendar_id = ?", calendarID).
			Exec(ctx); err != nil {
			return err
		}
		return nil
	})
}
