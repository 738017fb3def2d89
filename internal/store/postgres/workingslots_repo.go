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

type WorkingSlotRepo struct {
	db *bun.DB
}

func NewWorkingSlotRepo(db *bun.DB) *WorkingSlotRepo {
	return &WorkingSlotRepo{db: db}
}

func (r *WorkingSlotRepo) Create(ctx context.Context, slot domain.WorkingSlot) (domain.WorkingSlot, error) {
	if _, err := r.db.NewInsert().Model(&slot).Exec(ctx); err != nil {
		return domain.WorkingSlot{}, mapConstraintError(err)
	}
	return slot, nil
}

func (r *WorkingSlotRepo) Update(ctx context.Context, slot domain.WorkingSlot) (domain.WorkingSlot, error) {
	res, err := r.db.NewUpdate().
		Model(&slot).
		Column("day_of_week", "start_time", "end_time", "duration", "creation_date", "updated_at").
		Where("id = ?", slot.ID).
		Where("calendar_id = ?", slot.CalendarID).
		Exec(ctx)
	if err != nil {
		return domain.WorkingSlot{}, mapConstraintError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.WorkingSlot{}, err
	}
	if affected == 0 {
		return domain.WorkingSlot{}, store.ErrNotFound
	}
	return slot, nil
}

func (r *WorkingSlotRepo) Get(ctx context.Context, calendarID, slotID uuid.UUID) (domain.WorkingSlot, error) {
	var slot domain.WorkingSlot
	err := r.db.NewSelect().
		Model(&slot).
		Where("id = ?", slotID).
		Where("calendar_id = ?", calendarID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WorkingSlot{}, store.ErrNotFound
		}
		return domain.WorkingSlot{}, err
	}
	return slot, nil
}

func (r *WorkingSlotRepo) List(ctx context.Context, calendarID uuid.UUID) ([]domain.WorkingSlot, error) {
	var rows []domain.WorkingSlot
	err := r.db.NewSelect().
		Model(&rows).
		Where("calendar_id = ?", calendarID).
		OrderExpr("day_of_week ASC, start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *WorkingSlotRepo) SoftDelete(ctx context.Context, calendarID, slotID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.WorkingSlot)(nil)).
		Where("id = ?", slotID).
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

func (r *WorkingSlotRepo) HasDuplicate(ctx context.Context, slot domain.WorkingSlot, excludeID uuid.UUID) (bool, error) {
	q := r.db.NewSelect().
		Model((*domain.WorkingSlot)(nil)).
		Where("calendar_id = ?", slot.CalendarID).
		Where("day_of_week = ?", slot.DayOfWeek).
		Where("start_time = ?", slot.StartTime).
		Where("end_time = ?", slot.EndTime)
	if slot.CreationDate.IsZero() {
		q = q.Where("creation_date IS NULL")
	} else {
		q = q.Where("creation_date = ?", slot.CreationDate)
	}
	if excludeID != uuid.Nil {
		q = q.Where("id != ?", excludeID)
	}
	return q.Exists(ctx)
}

func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return store.ErrConflict
		}
		if pgErr.Code == "23503" {
			return store.ErrNotFound
		}
	}
	return err
}
