// Package week maps calendar dates to review week buckets.
//
// A week spans Monday through Sunday inclusive, and a date belongs to the
// week whose span contains it. Week 1 starts on the first Monday of the
// anchor year; numbering continues past year boundaries without resetting.
// This is the single source of truth for week arithmetic — every caller
// (save, migration, export) goes through here.
package week

import (
	"errors"
	"fmt"
	"time"
)

const anchorYear = 2025

// DateLayout is the wire/storage format for all dates in the system.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidWeek = errors.New("invalid week number")
)

// epochMonday is the first Monday on/after Jan 1 of the anchor year
// (2025-01-06). Computed rather than hardcoded so the anchor can move
// in one place.
var epochMonday = func() time.Time {
	d := time.Date(anchorYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}()

// mondayOf truncates t to the Monday of its Monday..Sunday span.
// Go's Weekday puts Sunday at 0, so a Sunday belongs to the span that
// started six days earlier, not the one starting the next day.
func mondayOf(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// NumberOf returns the week bucket containing t.
func NumberOf(t time.Time) (int, error) {
	if t.IsZero() {
		return 0, ErrInvalidDate
	}
	monday := mondayOf(t)
	days := int(monday.Sub(epochMonday).Hours() / 24)
	n := days/7 + 1
	if n < 1 {
		return 0, fmt.Errorf("%w: %s predates epoch %s",
			ErrInvalidDate, t.Format(DateLayout), epochMonday.Format(DateLayout))
	}
	return n, nil
}

// RangeOf returns the Monday and Sunday of week n.
func RangeOf(n int) (start, end time.Time, err error) {
	if n < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d", ErrInvalidWeek, n)
	}
	start = epochMonday.AddDate(0, 0, (n-1)*7)
	end = start.AddDate(0, 0, 6)
	return start, end, nil
}

// YearOf returns the calendar year a week is attributed to, taken from
// its start date.
func YearOf(n int) (int, error) {
	start, _, err := RangeOf(n)
	if err != nil {
		return 0, err
	}
	return start.Year(), nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}
