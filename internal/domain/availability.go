package domain

import (
	"fmt"
	"strings"
)

// Violation is one user-correctable reason a request was rejected.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violation detected for a single request,
// not just the first.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return strings.Join(msgs, "; ")
}

func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

// CheckAvailability decides whether the window [start, end) on date is
// bookable against the calendar's working slots. It returns every distinct
// violation class it can detect; an empty result means the window is
// available.
//
// A standing weekly slot and a date-specific slot are both eligible matches
// for their weekday: either can satisfy coverage, neither blocks the other.
func CheckAvailability(slots []WorkingSlot, date Date, start, end TimeOfDay) []Violation {
	var violations []Violation

	if _, err := ParseTimeOfDay(start.String()); err != nil {
		violations = append(violations, Violation{Field: "start_time", Message: err.Error()})
	}
	if _, err := ParseTimeOfDay(end.String()); err != nil {
		violations = append(violations, Violation{Field: "end_time", Message: err.Error()})
	}
	if len(violations) > 0 {
		return violations
	}
	if end <= start {
		return []Violation{{Field: "end_time", Message: "end_time must be after start_time"}}
	}

	weekday, err := date.Weekday()
	if err != nil {
		return []Violation{{Field: "date", Message: err.Error()}}
	}

	var eligible []WorkingSlot
	for _, s := range slots {
		if s.DayOfWeek == weekday && s.AppliesTo(date) {
			eligible = append(eligible, s)
		}
	}

	if len(eligible) == 0 {
		return []Violation{{
			Field:   "date",
			Message: fmt.Sprintf("No working slot available for %s at %s-%s", weekday, start, end),
		}}
	}

	var covering []WorkingSlot
	for _, s := range eligible {
		if s.Covers(start, end) {
			covering = append(covering, s)
		}
	}

	if len(covering) == 0 {
		nearest := nearestSlot(eligible, start, end)
		frame := fmt.Sprintf("Appointment must be within working slot time frame (%s - %s)", nearest.StartTime, nearest.EndTime)
		return []Violation{
			{Field: "start_time", Message: frame},
			{Field: "end_time", Message: frame},
		}
	}

	requested := end.Minutes() - start.Minutes()
	allowed := -1
	for _, s := range covering {
		if s.Duration.IsZero() {
			return nil
		}
		if limit := s.Duration.Minutes(); requested <= limit {
			return nil
		} else if limit > allowed {
			allowed = limit
		}
	}

	return []Violation{{
		Field:   "duration",
		Message: fmt.Sprintf("Appointment duration (%d minutes) exceeds the allowed duration (%d minutes)", requested, allowed),
	}}
}

// nearestSlot picks the eligible slot whose window overlaps the requested
// one the most, preferring date-specific slots on a tie. Its bounds are
// reported back to the caller as the available range.
func nearestSlot(eligible []WorkingSlot, start, end TimeOfDay) WorkingSlot {
	best := eligible[0]
	bestScore := overlapMinutes(best, start, end)
	for _, s := range eligible[1:] {
		score := overlapMinutes(s, start, end)
		if score > bestScore || (score == bestScore && !s.CreationDate.IsZero() && best.CreationDate.IsZero()) {
			best = s
			bestScore = score
		}
	}
	return best
}

func overlapMinutes(s WorkingSlot, start, end TimeOfDay) int {
	lo := s.StartTime
	if start > lo {
		lo = start
	}
	hi := s.EndTime
	if end < hi {
		hi = end
	}
	if hi <= lo {
		return 0
	}
	return hi.Minutes() - lo.Minutes()
}
