// Package calendar provides an immutable civil date value type.
//
// All roster arithmetic goes through Date so that month rollovers and
// day-of-week queries have one well-defined implementation, instead of
// ad hoc string formatting scattered through the engine.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the canonical string form of a Date.
const Layout = "2006-01-02"

// Date is a calendar date with no time component and no timezone.
// The zero value is the zero date and reports IsZero() == true.
// Date is comparable and can be used as a map key.
type Date struct {
	t time.Time
}

// NewDate creates a Date from year, month and day. Out-of-range values
// are normalized the way time.Date normalizes them (e.g. Feb 30 becomes
// Mar 1 or 2).
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a time.Time to its calendar date, interpreted in
// the time's own location.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a date in the canonical "2006-01-02" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return FromTime(t), nil
}

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Sub returns the number of whole days from o to d.
func (d Date) Sub(o Date) int {
	return int(d.t.Sub(o.t).Hours() / 24)
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) IsZero() bool       { return d.t.IsZero() }

// String returns the date in "2006-01-02" form.
func (d Date) String() string { return d.t.Format(Layout) }

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDates returns every date of the given month in chronological order.
func MonthDates(year int, month time.Month) []Date {
	days := DaysInMonth(year, month)
	dates := make([]Date, days)
	for i := 0; i < days; i++ {
		dates[i] = NewDate(year, month, i+1)
	}
	return dates
}
