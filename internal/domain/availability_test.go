package domain

import (
	"strings"
	"testing"
)

// 2026-01-05 is a Monday.
const monday = Date("2026-01-05")

func weeklySlot(day string, start, end, duration TimeOfDay) WorkingSlot {
	return WorkingSlot{DayOfWeek: day, StartTime: start, EndTime: end, Duration: duration}
}

func dateSlot(day string, date Date, start, end, duration TimeOfDay) WorkingSlot {
	s := weeklySlot(day, start, end, duration)
	s.CreationDate = date
	return s
}

func TestCheckAvailability_NoSlots(t *testing.T) {
	violations := CheckAvailability(nil, monday, "10:00:00", "10:30:00")
	if len(violations) != 1 {
		t.Fatalf("violations = %v, want exactly one", violations)
	}
	if violations[0].Field != "date" {
		t.Fatalf("field = %q, want %q", violations[0].Field, "date")
	}
	want := "No working slot available for Monday at 10:00:00-10:30:00"
	if violations[0].Message != want {
		t.Fatalf("message = %q, want %q", violations[0].Message, want)
	}
}

func TestCheckAvailability_WithinSlot(t *testing.T) {
	slots := []WorkingSlot{weeklySlot("Monday", "09:00:00", "17:00:00", "")}

	for _, tc := range []struct {
		name       string
		start, end TimeOfDay
	}{
		{"contained", "10:00:00", "10:30:00"},
		{"at slot start", "09:00:00", "09:30:00"},
		{"at slot end", "16:30:00", "17:00:00"},
		{"exact slot window", "09:00:00", "17:00:00"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if v := CheckAvailability(slots, monday, tc.start, tc.end); len(v) != 0 {
				t.Fatalf("violations = %v, want none", v)
			}
		})
	}
}

func TestCheckAvailability_OutsideSlot(t *testing.T) {
	slots := []WorkingSlot{weeklySlot("Monday", "09:00:00", "17:00:00", "")}

	for _, tc := range []struct {
		name       string
		start, end TimeOfDay
	}{
		{"before opening", "08:00:00", "09:00:00"},
		{"straddles opening", "08:30:00", "09:30:00"},
		{"straddles closing", "16:30:00", "17:30:00"},
		{"after closing", "17:00:00", "18:00:00"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			violations := CheckAvailability(slots, monday, tc.start, tc.end)
			if len(violations) != 2 {
				t.Fatalf("violations = %v, want two", violations)
			}
			want := "Appointment must be within working slot time frame (09:00:00 - 17:00:00)"
			if violations[0].Field != "start_time" || violations[0].Message != want {
				t.Fatalf("violation[0] = %+v, want start_time %q", violations[0], want)
			}
			if violations[1].Field != "end_time" || violations[1].Message != want {
				t.Fatalf("violation[1] = %+v, want end_time %q", violations[1], want)
			}
		})
	}
}

func TestCheckAvailability_WrongWeekday(t *testing.T) {
	slots := []WorkingSlot{weeklySlot("Tuesday", "09:00:00", "17:00:00", "")}

	violations := CheckAvailability(slots, monday, "10:00:00", "10:30:00")
	if len(violations) != 1 || violations[0].Field != "date" {
		t.Fatalf("violations = %v, want single date violation", violations)
	}
}

func TestCheckAvailability_DurationLimit(t *testing.T) {
	slots := []WorkingSlot{weeklySlot("Monday", "09:00:00", "17:00:00", "00:30:00")}

	if v := CheckAvailability(slots, monday, "10:00:00", "10:30:00"); len(v) != 0 {
		t.Fatalf("30 minute booking: violations = %v, want none", v)
	}

	violations := CheckAvailability(slots, monday, "10:00:00", "10:45:00")
	if len(violations) != 1 {
		t.Fatalf("violations = %v, want exactly one", violations)
	}
	if violations[0].Field != "duration" {
		t.Fatalf("field = %q, want %q", violations[0].Field, "duration")
	}
	want := "Appointment duration (45 minutes) exceeds the allowed duration (30 minutes)"
	if violations[0].Message != want {
		t.Fatalf("message = %q, want %q", violations[0].Message, want)
	}
}

func TestCheckAvailability_NoDurationLimit(t *testing.T) {
	slots := []WorkingSlot{weeklySlot("Monday", "09:00:00", "17:00:00", "")}
	if v := CheckAvailability(slots, monday, "09:00:00", "17:00:00"); len(v) != 0 {
		t.Fatalf("violations = %v, want none when the slot has no duration limit", v)
	}
}

func TestCheckAvailability_MostPermissiveCoveringSlotWins(t *testing.T) {
	slots := []WorkingSlot{
		weeklySlot("Monday", "09:00:00", "17:00:00", "00:30:00"),
		weeklySlot("Monday", "08:00:00", "18:00:00", "02:00:00"),
	}
	if v := CheckAvailability(slots, monday, "10:00:00", "11:00:00"); len(v) != 0 {
		t.Fatalf("violations = %v, want none when any covering slot admits the duration", v)
	}
}

func TestCheckAvailability_DateSpecificSlot(t *testing.T) {
	slots := []WorkingSlot{dateSlot("Monday", monday, "09:00:00", "12:00:00", "")}

	if v := CheckAvailability(slots, monday, "10:00:00", "10:30:00"); len(v) != 0 {
		t.Fatalf("on its own date: violations = %v, want none", v)
	}

	// 2026-01-12 is the following Monday; the slot is pinned to the 5th.
	violations := CheckAvailability(slots, "2026-01-12", "10:00:00", "10:30:00")
	if len(violations) != 1 || violations[0].Field != "date" {
		t.Fatalf("on another Monday: violations = %v, want single date violation", violations)
	}
}

func TestCheckAvailability_EitherSlotKindSatisfies(t *testing.T) {
	slots := []WorkingSlot{
		weeklySlot("Monday", "09:00:00", "12:00:00", ""),
		dateSlot("Monday", monday, "14:00:00", "18:00:00", ""),
	}

	if v := CheckAvailability(slots, monday, "10:00:00", "10:30:00"); len(v) != 0 {
		t.Fatalf("standing slot: violations = %v, want none", v)
	}
	if v := CheckAvailability(slots, monday, "15:00:00", "15:30:00"); len(v) != 0 {
		t.Fatalf("date-specific slot: violations = %v, want none", v)
	}
}

func TestCheckAvailability_InvertedWindow(t *testing.T) {
	slots := []WorkingSlot{weeklySlot("Monday", "09:00:00", "17:00:00", "")}

	violations := CheckAvailability(slots, monday, "11:00:00", "10:00:00")
	if len(violations) != 1 || violations[0].Field != "end_time" {
		t.Fatalf("violations = %v, want single end_time violation", violations)
	}

	violations = CheckAvailability(slots, monday, "10:00:00", "10:00:00")
	if len(violations) != 1 || violations[0].Field != "end_time" {
		t.Fatalf("zero-length window: violations = %v, want single end_time violation", violations)
	}
}

func TestCheckAvailability_MalformedInput(t *testing.T) {
	slots := []WorkingSlot{weeklySlot("Monday", "09:00:00", "17:00:00", "")}

	violations := CheckAvailability(slots, monday, "25:00:00", "junk")
	if len(violations) != 2 {
		t.Fatalf("violations = %v, want one per malformed time", violations)
	}

	violations = CheckAvailability(slots, "not-a-date", "10:00:00", "10:30:00")
	if len(violations) != 1 || violations[0].Field != "date" {
		t.Fatalf("violations = %v, want single date violation", violations)
	}
}

func TestValidationError_JoinsViolations(t *testing.T) {
	err := NewValidationError(
		Violation{Field: "start_time", Message: "a"},
		Violation{Field: "end_time", Message: "b"},
	)
	if got := err.Error(); !strings.Contains(got, "start_time: a") || !strings.Contains(got, "end_time: b") {
		t.Fatalf("Error() = %q, want both violations", got)
	}
}
