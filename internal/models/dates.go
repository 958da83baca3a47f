package models

import (
	"time"

	"gorm.io/datatypes"
)

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the current calendar date.
func Today() time.Time {
	return DateOf(time.Now())
}

func NewDate(t time.Time) datatypes.Date {
	return datatypes.Date(DateOf(t))
}

func NewDatePtr(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

// TimeOf converts a stored date back to UTC midnight.
func TimeOf(d datatypes.Date) time.Time {
	return DateOf(time.Time(d))
}

func TimePtrOf(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := TimeOf(*d)
	return &t
}

// AddMonths behaves like calendar month arithmetic: the day is clamped to the
// last day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// period returns the whole months and leftover days between start and end,
// end exclusive.
func period(start, end time.Time) (months, days int) {
	start, end = DateOf(start), DateOf(end)
	months = (end.Year()*12 + int(end.Month())) - (start.Year()*12 + int(start.Month()))
	days = end.Day() - start.Day()

	switch {
	case months > 0 && days < 0:
		months--
		anchor := AddMonths(start, months)
		days = int(end.Sub(anchor).Hours() / 24)
	case months < 0 && days > 0:
		months++
		days -= daysIn(end.Year(), end.Month())
	}
	return months, days
}
