package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a date string is not a valid calendar date.
var ErrInvalidDate = errors.New("invalid calendar date")

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component, in ISO form (YYYY-MM-DD).
// It scopes daily task lists and streak lookups.
type Date struct {
	value string
}

// NewDate creates a Date from a string, validating the ISO form.
func NewDate(value string) (Date, error) {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return Date{value: value}, nil
}

// DateOf returns the calendar date of a wall-clock instant.
func DateOf(t time.Time) Date {
	return Date{value: t.Format(dateLayout)}
}

// EffectiveDate returns the calendar date an instant belongs to after
// shifting the day boundary by the user's reset time. With resetTime "03:00"
// an instant at 02:30 still counts toward the previous day. An unparseable
// reset time or timezone falls back to midnight UTC.
func EffectiveDate(now time.Time, resetTime string, timezone string) Date {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)

	reset, err := time.Parse("15:04", resetTime)
	if err != nil {
		return DateOf(local)
	}

	boundary := time.Date(local.Year(), local.Month(), local.Day(),
		reset.Hour(), reset.Minute(), 0, 0, loc)
	if local.Before(boundary) {
		return DateOf(local.AddDate(0, 0, -1))
	}
	return DateOf(local)
}

// String returns the ISO form of the date.
func (d Date) String() string { return d.value }

// IsZero returns true for the zero Date.
func (d Date) IsZero() bool { return d.value == "" }

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, d.value)
	return t
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return DateOf(d.Time().AddDate(0, 0, days))
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.value < other.value
}

// Equals checks if two Dates are equal.
func (d Date) Equals(other ValueObject) bool {
	if o, ok := other.(Date); ok {
		return d.value == o.value
	}
	return false
}
