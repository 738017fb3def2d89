package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Calendar struct {
	bun.BaseModel `bun:"table:calendars"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	ProviderID  uuid.UUID `bun:"provider_id,notnull,type:uuid"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description"`
	Timezone    string    `bun:"timezone"`
	Duration    TimeOfDay `bun:"duration,notnull"`
	Color       string    `bun:"color"`
	Slug        string    `bun:"slug"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
	DeletedAt   time.Time `bun:"deleted_at,soft_delete,nullzero"`
}

// DefaultAppointmentDuration is applied to calendars created without an
// explicit duration and to working slots that do not override it.
const DefaultAppointmentDuration TimeOfDay = "00:30:00"

func (c *Calendar) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if c.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			c.ID = id
		}
		if c.Duration.IsZero() {
			c.Duration = DefaultAppointmentDuration
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		c.UpdatedAt = now
	}
	return nil
}
