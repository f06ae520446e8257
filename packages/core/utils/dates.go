package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of every calendar date exchanged by the API.
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight UTC of its calendar date.
// The zero time stays zero.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateOnlyPtr is DateOnly for optional dates.
func DateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := DateOnly(*t)
	return &d
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// ParseOptionalDate parses value when present.
func ParseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
