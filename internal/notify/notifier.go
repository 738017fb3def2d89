// Package notify models the external side channel (attendee email, third
// party calendar sync) as an injected collaborator with an explicit
// lifecycle. Delivery failures degrade to warnings on an otherwise
// successful booking; they never fail the request.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"calendars/backend/internal/domain"
)

type Notifier interface {
	// AppointmentCreated and AppointmentUpdated return a human-readable
	// notice for the response metadata, or an error the caller downgrades
	// to a warning.
	AppointmentCreated(ctx context.Context, appt domain.Appointment) (string, error)
	AppointmentUpdated(ctx context.Context, appt domain.Appointment) (string, error)

	Close() error
}

// LogNotifier records notification intents in the service log without
// calling out anywhere. It stands in for the mail transport and calendar
// sync integrations in environments where those are not configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log.With(slog.String("component", "notify"))}
}

func (n *LogNotifier) AppointmentCreated(ctx context.Context, appt domain.Appointment) (string, error) {
	n.log.Info("appointment created notification",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("calendar_id", appt.CalendarID.String()),
		slog.Int("attendees", len(appt.Attendees)),
	)
	return fmt.Sprintf("Notification recorded for %d attendee(s).", len(appt.Attendees)), nil
}

func (n *LogNotifier) AppointmentUpdated(ctx context.Context, appt domain.Appointment) (string, error) {
	n.log.Info("appointment updated notification",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("calendar_id", appt.CalendarID.String()),
	)
	return "Attendees will be notified of the new details.", nil
}

func (n *LogNotifier) Close() error {
	return nil
}
