package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time with second precision, stored as a
// zero-padded "HH:MM:SS" string. Zero-padded fixed-width strings order
// lexicographically exactly like the times they encode, so values can be
// compared with < and > directly.
type TimeOfDay string

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if _, err := time.Parse("15:04:05", s); err != nil {
		return "", fmt.Errorf("invalid time of day %q: want HH:MM:SS", s)
	}
	return TimeOfDay(s), nil
}

func (t TimeOfDay) IsZero() bool {
	return t == ""
}

// Minutes returns the number of minutes since midnight, ignoring seconds.
func (t TimeOfDay) Minutes() int {
	parsed, err := time.Parse("15:04:05", string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

func (t TimeOfDay) String() string {
	return string(t)
}

func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = TimeOfDay(v)
		return nil
	case []byte:
		*t = TimeOfDay(v)
		return nil
	case time.Time:
		*t = TimeOfDay(v.Format("15:04:05"))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

func (t TimeOfDay) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	return string(t), nil
}

// Date is a calendar date stored as a "YYYY-MM-DD" string.
type Date string

func ParseDate(s string) (Date, error) {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return Date(s), nil
}

func (d Date) IsZero() bool {
	return d == ""
}

// Weekday returns the weekday name ("Sunday" through "Saturday") of the date.
func (d Date) Weekday() (string, error) {
	parsed, err := time.Parse("2006-01-02", string(d))
	if err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", d)
	}
	return parsed.Weekday().String(), nil
}

func (d Date) String() string {
	return string(d)
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case string:
		*d = Date(v)
		return nil
	case []byte:
		*d = Date(v)
		return nil
	case time.Time:
		*d = Date(v.Format("2006-01-02"))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) on the same date intersect. Back-to-back windows do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}
